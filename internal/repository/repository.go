package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"propertydesk-backend/internal/domain"
)

// UserFilter narrows List. Zero values mean no filtering on that column.
type UserFilter struct {
	Role     domain.Role
	IsActive *bool
	Search   string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter UserFilter, page, pageSize int) ([]domain.User, int, error)
	Count(ctx context.Context) (int, error)
}

type PropertyFilter struct {
	OwnerID  *uuid.UUID
	TenantID *uuid.UUID
	Type     domain.PropertyType
	IsActive *bool
	Search   string
}

type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PropertyFilter, page, pageSize int) ([]domain.Property, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error)
	Count(ctx context.Context) (int, error)
}

type BookingFilter struct {
	PropertyID    *uuid.UUID
	OwnerID       *uuid.UUID
	TenantID      *uuid.UUID
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	CheckInFrom   *time.Time
	CheckInTo     *time.Time
}

type BookingRepository interface {
	// CreateIfAvailable inserts the booking inside a serializable transaction
	// after re-checking that no booking in a blocking status overlaps the
	// half-open date range. Returns domain.ErrDatesUnavailable on conflict.
	CreateIfAvailable(ctx context.Context, booking *domain.Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error

	// UpdateIfAvailable persists a date or status change with the same
	// overlap re-check as CreateIfAvailable, excluding the booking itself.
	UpdateIfAvailable(ctx context.Context, booking *domain.Booking) error

	// RecordPayment locks the booking row, applies the completed payment
	// amount to its paid total, re-derives payment status, and inserts the
	// payment row in the same transaction.
	RecordPayment(ctx context.Context, bookingID uuid.UUID, payment *domain.Payment) (*domain.Booking, error)

	FindOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]domain.Booking, error)
	List(ctx context.Context, filter BookingFilter, page, pageSize int) ([]domain.Booking, int, error)
	ListAll(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)

	// ListOverdueCheckIns returns confirmed bookings whose check-in date has
	// passed without an actual check-in, for the no-show job.
	ListOverdueCheckIns(ctx context.Context, asOf time.Time) ([]domain.Booking, error)
	// ListCheckInsOn returns confirmed bookings checking in on the given
	// date, for the reminder job.
	ListCheckInsOn(ctx context.Context, day time.Time) ([]domain.Booking, error)

	Count(ctx context.Context) (int, error)
}

type PaymentFilter struct {
	BookingID   *uuid.UUID
	PropertyID  *uuid.UUID
	PropertyIDs []uuid.UUID
	PayerID     *uuid.UUID
	ReceiverID  *uuid.UUID
	InvolvesID  *uuid.UUID
	OwnerScope  *OwnerPaymentScope
	Type        domain.PaymentType
	Status      domain.PaymentState
	From        *time.Time
	To          *time.Time
}

// OwnerPaymentScope restricts rows to an owner's view of the ledger: any row
// touching one of their properties OR naming them as payer or receiver. The
// two legs combine with OR so deposits and commissions without a property
// still show up.
type OwnerPaymentScope struct {
	UserID      uuid.UUID
	PropertyIDs []uuid.UUID
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PaymentFilter, page, pageSize int) ([]domain.Payment, int, error)
	ListAll(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
	Count(ctx context.Context) (int, error)
}
