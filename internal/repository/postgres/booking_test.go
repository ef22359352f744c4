package postgres_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository/postgres"
)

var bookingCols = []string{
	"id", "property_id", "tenant_id", "guest_name", "guest_email", "guest_phone", "number_of_guests",
	"check_in_date", "check_out_date", "actual_check_in", "actual_check_out", "number_of_nights",
	"base_price", "total_base_amount", "cleaning_fee", "extra_fees", "discount", "total_amount", "paid_amount", "remaining_amount",
	"status", "payment_status", "booking_source", "external_booking_id",
	"special_requests", "guest_notes", "internal_notes", "created_at", "updated_at",
}

func bookingRow(id, propertyID uuid.UUID, status domain.BookingStatus, total, paid string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), propertyID.String(), nil, "Guest", "guest@example.com", "0501234567", 2,
		now, now.AddDate(0, 0, 4), nil, nil, 4,
		"300", "1200", "150", "0", "0", total, paid, remaining(total, paid),
		string(status), "unpaid", "", "",
		"", "", "", now, now,
	}
}

func remaining(total, paid string) string {
	t := decimal.RequireFromString(total)
	p := decimal.RequireFromString(paid)
	return t.Sub(p).String()
}

func TestBookingRepository_FindOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	propertyID := uuid.New()
	checkIn := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	t.Run("ReturnsConflicts", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(uuid.New(), propertyID, domain.BookingStatusConfirmed, "1350", "0")...)

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE property_id = \$1 AND status = ANY\(\$2\)`).
			WithArgs(propertyID, sqlmock.AnyArg(), checkIn, checkOut).
			WillReturnRows(rows)

		bookings, err := repo.FindOverlapping(ctx, propertyID, checkIn, checkOut, nil)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, domain.BookingStatusConfirmed, bookings[0].Status)
	})

	t.Run("NoConflicts", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE property_id = \$1`).
			WithArgs(propertyID, sqlmock.AnyArg(), checkIn, checkOut).
			WillReturnRows(sqlmock.NewRows(bookingCols))

		bookings, err := repo.FindOverlapping(ctx, propertyID, checkIn, checkOut, nil)
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})
}

func TestBookingRepository_CreateIfAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	newBooking := func() *domain.Booking {
		return &domain.Booking{
			PropertyID:   uuid.New(),
			GuestName:    "Guest",
			GuestPhone:   "0501234567",
			CheckInDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			Status:       domain.BookingStatusPending,
		}
	}

	t.Run("Success", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM bookings WHERE property_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateIfAvailable(ctx, b)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, b.ID)
	})

	t.Run("DatesTaken", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM bookings WHERE property_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.CreateIfAvailable(ctx, b)
		assert.ErrorIs(t, err, domain.ErrDatesUnavailable)
	})
}

func TestBookingRepository_RecordPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	bookingID := uuid.New()
	propertyID := uuid.New()

	payment := func(amount string) *domain.Payment {
		return &domain.Payment{
			Amount: decimal.RequireFromString(amount),
			Type:   domain.PaymentTypeBooking,
			Status: domain.PaymentStateCompleted,
			Method: domain.PaymentMethodCash,
		}
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(bookingID, propertyID, domain.BookingStatusConfirmed, "1350", "0")...)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1 FOR UPDATE`).
			WithArgs(bookingID).
			WillReturnRows(rows)
		mock.ExpectExec(`UPDATE bookings SET paid_amount=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO payments").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		b, err := repo.RecordPayment(ctx, bookingID, payment("500"))
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPartial, b.PaymentStatus)
		assert.Equal(t, "850", b.RemainingAmount.String())
	})

	t.Run("Overpayment", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(bookingID, propertyID, domain.BookingStatusConfirmed, "1350", "1000")...)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1 FOR UPDATE`).
			WithArgs(bookingID).
			WillReturnRows(rows)
		mock.ExpectRollback()

		_, err := repo.RecordPayment(ctx, bookingID, payment("500"))
		assert.ErrorIs(t, err, domain.ErrAmountExceedsTotal)
	})
}
