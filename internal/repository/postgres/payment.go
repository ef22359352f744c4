package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, amount, payment_date, payment_method, payment_type, status,
	booking_id, property_id, payer_id, receiver_id,
	COALESCE(description, ''), COALESCE(reference_number, ''), COALESCE(category, ''),
	is_for_renovation, is_commission, commission_rate, created_by, created_at, updated_at`

const insertPayment = `INSERT INTO payments (id, amount, payment_date, payment_method, payment_type, status,
	booking_id, property_id, payer_id, receiver_id, description, reference_number, category,
	is_for_renovation, is_commission, commission_rate, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

func paymentInsertArgs(p *domain.Payment) []interface{} {
	return []interface{}{
		p.ID, p.Amount, p.PaymentDate, p.Method, p.Type, p.Status,
		p.BookingID, p.PropertyID, p.PayerID, p.ReceiverID, p.Description, p.ReferenceNumber, p.Category,
		p.IsForRenovation, p.IsCommission, p.CommissionRate, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	}
}

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	var (
		bookingID, propertyID, payerID, receiverID, createdBy uuid.NullUUID
		commissionRate                                        decimal.NullDecimal
	)
	err := row.Scan(&p.ID, &p.Amount, &p.PaymentDate, &p.Method, &p.Type, &p.Status,
		&bookingID, &propertyID, &payerID, &receiverID,
		&p.Description, &p.ReferenceNumber, &p.Category,
		&p.IsForRenovation, &p.IsCommission, &commissionRate, &createdBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if bookingID.Valid {
		p.BookingID = &bookingID.UUID
	}
	if propertyID.Valid {
		p.PropertyID = &propertyID.UUID
	}
	if payerID.Valid {
		p.PayerID = &payerID.UUID
	}
	if receiverID.Valid {
		p.ReceiverID = &receiverID.UUID
	}
	if createdBy.Valid {
		p.CreatedBy = &createdBy.UUID
	}
	if commissionRate.Valid {
		p.CommissionRate = &commissionRate.Decimal
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, insertPayment, paymentInsertArgs(p)...)
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	p.UpdatedAt = time.Now().UTC()
	query := `UPDATE payments SET amount=$1, payment_date=$2, payment_method=$3, payment_type=$4, status=$5,
	            booking_id=$6, property_id=$7, payer_id=$8, receiver_id=$9, description=$10, reference_number=$11,
	            category=$12, is_for_renovation=$13, is_commission=$14, commission_rate=$15, updated_at=$16 WHERE id=$17`
	_, err := r.db.ExecContext(ctx, query, p.Amount, p.PaymentDate, p.Method, p.Type, p.Status,
		p.BookingID, p.PropertyID, p.PayerID, p.ReceiverID, p.Description, p.ReferenceNumber,
		p.Category, p.IsForRenovation, p.IsCommission, p.CommissionRate, p.UpdatedAt, p.ID)
	return err
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func paymentFilterQuery(filter repository.PaymentFilter) (string, []interface{}, int) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	add := func(cond string, val interface{}) {
		query += fmt.Sprintf(" AND "+cond, argIdx)
		args = append(args, val)
		argIdx++
	}

	if filter.BookingID != nil {
		add("booking_id = $%d", *filter.BookingID)
	}
	if filter.PropertyID != nil {
		add("property_id = $%d", *filter.PropertyID)
	}
	if len(filter.PropertyIDs) > 0 {
		ids := make(pq.StringArray, len(filter.PropertyIDs))
		for i, id := range filter.PropertyIDs {
			ids[i] = id.String()
		}
		add("property_id = ANY($%d::uuid[])", ids)
	}
	if filter.PayerID != nil {
		add("payer_id = $%d", *filter.PayerID)
	}
	if filter.ReceiverID != nil {
		add("receiver_id = $%d", *filter.ReceiverID)
	}
	if filter.InvolvesID != nil {
		query += fmt.Sprintf(" AND (payer_id = $%d OR receiver_id = $%d)", argIdx, argIdx)
		args = append(args, *filter.InvolvesID)
		argIdx++
	}
	if filter.OwnerScope != nil {
		ids := make(pq.StringArray, len(filter.OwnerScope.PropertyIDs))
		for i, id := range filter.OwnerScope.PropertyIDs {
			ids[i] = id.String()
		}
		query += fmt.Sprintf(" AND (property_id = ANY($%d::uuid[]) OR payer_id = $%d OR receiver_id = $%d)", argIdx, argIdx+1, argIdx+1)
		args = append(args, ids, filter.OwnerScope.UserID)
		argIdx += 2
	}
	if filter.Type != "" {
		add("payment_type = $%d", filter.Type)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.From != nil {
		add("payment_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("payment_date <= $%d", *filter.To)
	}
	return query, args, argIdx
}

func (r *paymentRepository) List(ctx context.Context, filter repository.PaymentFilter, page, pageSize int) ([]domain.Payment, int, error) {
	query, args, argIdx := paymentFilterQuery(filter)

	var count int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY payment_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	payments, err := r.queryPayments(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return payments, count, nil
}

func (r *paymentRepository) ListAll(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	query, args, _ := paymentFilterQuery(filter)
	query += " ORDER BY payment_date DESC"
	return r.queryPayments(ctx, query, args)
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args []interface{}) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments`).Scan(&count)
	return count, err
}
