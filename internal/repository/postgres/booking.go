package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/utils"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, property_id, tenant_id, guest_name, COALESCE(guest_email, ''), guest_phone, number_of_guests,
	check_in_date, check_out_date, actual_check_in, actual_check_out, number_of_nights,
	base_price, total_base_amount, cleaning_fee, extra_fees, discount, total_amount, paid_amount, remaining_amount,
	status, payment_status, COALESCE(booking_source, ''), COALESCE(external_booking_id, ''),
	COALESCE(special_requests, ''), COALESCE(guest_notes, ''), COALESCE(internal_notes, ''), created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var (
		tenantID             uuid.NullUUID
		actualIn, actualOut  sql.NullTime
	)
	err := row.Scan(&b.ID, &b.PropertyID, &tenantID, &b.GuestName, &b.GuestEmail, &b.GuestPhone, &b.NumberOfGuests,
		&b.CheckInDate, &b.CheckOutDate, &actualIn, &actualOut, &b.NumberOfNights,
		&b.BasePrice, &b.TotalBaseAmount, &b.CleaningFee, &b.ExtraFees, &b.Discount, &b.TotalAmount, &b.PaidAmount, &b.RemainingAmount,
		&b.Status, &b.PaymentStatus, &b.BookingSource, &b.ExternalBookingID,
		&b.SpecialRequests, &b.GuestNotes, &b.InternalNotes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tenantID.Valid {
		b.TenantID = &tenantID.UUID
	}
	if actualIn.Valid {
		b.ActualCheckIn = &actualIn.Time
	}
	if actualOut.Valid {
		b.ActualCheckOut = &actualOut.Time
	}
	return b, nil
}

// isAvailabilityConflict recognises the failure modes of a lost
// availability race: the exclusion constraint on blocking bookings, and a
// serialization failure forcing a retry that the caller surfaces as a
// conflict.
func isAvailabilityConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "40001"
	}
	return false
}

const overlapCondition = `property_id = $1 AND status = ANY($2) AND check_in_date < $4 AND $3 < check_out_date`

func blockingStatusArray() pq.StringArray {
	arr := make(pq.StringArray, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		arr[i] = string(s)
	}
	return arr
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + overlapCondition
	args := []interface{}{propertyID, blockingStatusArray(), checkIn, checkOut}
	if excludeID != nil {
		query += ` AND id <> $5`
		args = append(args, *excludeID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

const insertBooking = `INSERT INTO bookings (id, property_id, tenant_id, guest_name, guest_email, guest_phone, number_of_guests,
	check_in_date, check_out_date, number_of_nights,
	base_price, total_base_amount, cleaning_fee, extra_fees, discount, total_amount, paid_amount, remaining_amount,
	status, payment_status, booking_source, external_booking_id, special_requests, guest_notes, internal_notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE `+overlapCondition,
		b.PropertyID, blockingStatusArray(), b.CheckInDate, b.CheckOutDate).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.ErrDatesUnavailable
	}

	_, err = tx.ExecContext(ctx, insertBooking,
		b.ID, b.PropertyID, b.TenantID, b.GuestName, b.GuestEmail, b.GuestPhone, b.NumberOfGuests,
		b.CheckInDate, b.CheckOutDate, b.NumberOfNights,
		b.BasePrice, b.TotalBaseAmount, b.CleaningFee, b.ExtraFees, b.Discount, b.TotalAmount, b.PaidAmount, b.RemainingAmount,
		b.Status, b.PaymentStatus, b.BookingSource, b.ExternalBookingID, b.SpecialRequests, b.GuestNotes, b.InternalNotes,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isAvailabilityConflict(err) {
			return domain.ErrDatesUnavailable
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isAvailabilityConflict(err) {
			return domain.ErrDatesUnavailable
		}
		return err
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

const updateBooking = `UPDATE bookings SET tenant_id=$1, guest_name=$2, guest_email=$3, guest_phone=$4, number_of_guests=$5,
	check_in_date=$6, check_out_date=$7, actual_check_in=$8, actual_check_out=$9, number_of_nights=$10,
	base_price=$11, total_base_amount=$12, cleaning_fee=$13, extra_fees=$14, discount=$15, total_amount=$16, paid_amount=$17, remaining_amount=$18,
	status=$19, payment_status=$20, booking_source=$21, external_booking_id=$22, special_requests=$23, guest_notes=$24, internal_notes=$25, updated_at=$26
	WHERE id=$27`

func bookingUpdateArgs(b *domain.Booking) []interface{} {
	return []interface{}{
		b.TenantID, b.GuestName, b.GuestEmail, b.GuestPhone, b.NumberOfGuests,
		b.CheckInDate, b.CheckOutDate, b.ActualCheckIn, b.ActualCheckOut, b.NumberOfNights,
		b.BasePrice, b.TotalBaseAmount, b.CleaningFee, b.ExtraFees, b.Discount, b.TotalAmount, b.PaidAmount, b.RemainingAmount,
		b.Status, b.PaymentStatus, b.BookingSource, b.ExternalBookingID, b.SpecialRequests, b.GuestNotes, b.InternalNotes,
		b.UpdatedAt, b.ID,
	}
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	b.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, updateBooking, bookingUpdateArgs(b)...)
	return err
}

func (r *bookingRepository) UpdateIfAvailable(ctx context.Context, b *domain.Booking) error {
	b.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE `+overlapCondition+` AND id <> $5`,
		b.PropertyID, blockingStatusArray(), b.CheckInDate, b.CheckOutDate, b.ID).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.ErrDatesUnavailable
	}

	if _, err := tx.ExecContext(ctx, updateBooking, bookingUpdateArgs(b)...); err != nil {
		if isAvailabilityConflict(err) {
			return domain.ErrDatesUnavailable
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isAvailabilityConflict(err) {
			return domain.ErrDatesUnavailable
		}
		return err
	}
	return nil
}

// RecordPayment applies amount to the booking's paid total and inserts the
// payment row atomically. The row lock serialises concurrent payments against
// the same booking so the remaining balance can never go negative.
func (r *bookingRepository) RecordPayment(ctx context.Context, bookingID uuid.UUID, p *domain.Payment) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		return nil, err
	}

	if err := utils.ApplyPayment(b, p.Amount); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET paid_amount=$1, remaining_amount=$2, payment_status=$3, updated_at=$4 WHERE id=$5`,
		b.PaidAmount, b.RemainingAmount, b.PaymentStatus, b.UpdatedAt, b.ID)
	if err != nil {
		return nil, err
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.BookingID = &b.ID
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err = tx.ExecContext(ctx, insertPayment, paymentInsertArgs(p)...)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) List(ctx context.Context, filter repository.BookingFilter, page, pageSize int) ([]domain.Booking, int, error) {
	query, args, argIdx := bookingFilterQuery(filter)

	var count int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY check_in_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	bookings, err := r.queryBookings(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListAll(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	query, args, _ := bookingFilterQuery(filter)
	query += " ORDER BY check_in_date DESC"
	return r.queryBookings(ctx, query, args)
}

func bookingFilterQuery(filter repository.BookingFilter) (string, []interface{}, int) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.PropertyID != nil {
		query += fmt.Sprintf(" AND property_id = $%d", argIdx)
		args = append(args, *filter.PropertyID)
		argIdx++
	}
	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND property_id IN (SELECT id FROM properties WHERE owner_id = $%d)", argIdx)
		args = append(args, *filter.OwnerID)
		argIdx++
	}
	if filter.TenantID != nil {
		query += fmt.Sprintf(" AND tenant_id = $%d", argIdx)
		args = append(args, *filter.TenantID)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.PaymentStatus != "" {
		query += fmt.Sprintf(" AND payment_status = $%d", argIdx)
		args = append(args, filter.PaymentStatus)
		argIdx++
	}
	if filter.CheckInFrom != nil {
		query += fmt.Sprintf(" AND check_in_date >= $%d", argIdx)
		args = append(args, *filter.CheckInFrom)
		argIdx++
	}
	if filter.CheckInTo != nil {
		query += fmt.Sprintf(" AND check_in_date <= $%d", argIdx)
		args = append(args, *filter.CheckInTo)
		argIdx++
	}
	return query, args, argIdx
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args []interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListOverdueCheckIns(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = ANY($1) AND check_in_date < $2 AND actual_check_in IS NULL`
	statuses := pq.StringArray{string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)}
	return r.queryBookings(ctx, query, []interface{}{statuses, asOf})
}

func (r *bookingRepository) ListCheckInsOn(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = $1 AND check_in_date = $2`
	return r.queryBookings(ctx, query, []interface{}{domain.BookingStatusConfirmed, day})
}

func (r *bookingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings`).Scan(&count)
	return count, err
}
