package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type UpdateProfileInput struct {
	FullName *string
	Phone    *string
	Password *string
}

type UserService interface {
	GetUser(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context, scope domain.Scope, filter repository.UserFilter, page, pageSize int) ([]domain.User, int, error)
	UpdateProfile(ctx context.Context, scope domain.Scope, id uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	SetActive(ctx context.Context, scope domain.Scope, id uuid.UUID, active bool) error
}

type PropertyInput struct {
	Name        string
	Address     string
	Type        domain.PropertyType
	OwnerID     uuid.UUID
	Description string

	BasePrice   *decimal.Decimal
	CleaningFee *decimal.Decimal
	MaxGuests   *int
	MinStayDays *int
	MaxStayDays *int

	MonthlyRent *decimal.Decimal
	TenantID    *uuid.UUID
	IsRented    *bool
}

type PropertyService interface {
	CreateProperty(ctx context.Context, scope domain.Scope, input PropertyInput) (*domain.Property, error)
	GetProperty(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Property, error)
	UpdateProperty(ctx context.Context, scope domain.Scope, id uuid.UUID, input PropertyInput) (*domain.Property, error)
	DeleteProperty(ctx context.Context, scope domain.Scope, id uuid.UUID) error
	ListProperties(ctx context.Context, scope domain.Scope, filter repository.PropertyFilter, page, pageSize int) ([]domain.Property, int, error)
}

type CreateBookingInput struct {
	PropertyID     uuid.UUID
	GuestName      string
	GuestEmail     string
	GuestPhone     string
	NumberOfGuests int
	CheckInDate    time.Time
	CheckOutDate   time.Time

	ExtraFees decimal.Decimal
	Discount  decimal.Decimal

	BookingSource     string
	ExternalBookingID string
	SpecialRequests   string
	GuestNotes        string
	InternalNotes     string
}

type UpdateBookingInput struct {
	GuestName      *string
	GuestEmail     *string
	GuestPhone     *string
	NumberOfGuests *int
	CheckInDate    *time.Time
	CheckOutDate   *time.Time
	ExtraFees      *decimal.Decimal
	Discount       *decimal.Decimal

	SpecialRequests *string
	GuestNotes      *string
	InternalNotes   *string
}

type RecordBookingPaymentInput struct {
	Amount          decimal.Decimal
	Method          domain.PaymentMethod
	PaymentDate     time.Time
	Description     string
	ReferenceNumber string
}

// Availability is the answer to a date range probe.
type Availability struct {
	Available bool             `json:"available"`
	Conflicts []domain.Booking `json:"conflicts,omitempty"`
}

type BookingService interface {
	CheckAvailability(ctx context.Context, scope domain.Scope, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (*Availability, error)
	CreateBooking(ctx context.Context, scope domain.Scope, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, scope domain.Scope, id uuid.UUID, input UpdateBookingInput) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error)
	CancelBooking(ctx context.Context, scope domain.Scope, id uuid.UUID, reason string) (*domain.Booking, error)
	CheckInBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error)
	CheckOutBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error)
	MarkNoShow(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error)
	RecordPayment(ctx context.Context, scope domain.Scope, id uuid.UUID, input RecordBookingPaymentInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, scope domain.Scope, filter repository.BookingFilter, page, pageSize int) ([]domain.Booking, int, error)
	GetBookingStats(ctx context.Context, scope domain.Scope, from, to *time.Time) (*domain.BookingStats, error)
}

type PaymentInput struct {
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      domain.PaymentMethod
	Type        domain.PaymentType
	Status      domain.PaymentState

	BookingID  *uuid.UUID
	PropertyID *uuid.UUID
	PayerID    *uuid.UUID
	ReceiverID *uuid.UUID

	Description     string
	ReferenceNumber string
	Category        string

	IsForRenovation bool
	IsCommission    bool
	CommissionRate  *decimal.Decimal
}

type PaymentService interface {
	CreatePayment(ctx context.Context, scope domain.Scope, input PaymentInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, scope domain.Scope, id uuid.UUID, input PaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, scope domain.Scope, id uuid.UUID) error
	ListPayments(ctx context.Context, scope domain.Scope, filter repository.PaymentFilter, page, pageSize int) ([]domain.Payment, int, error)
	GetPaymentStats(ctx context.Context, scope domain.Scope, from, to *time.Time) (*domain.PaymentStats, error)
}

type ReportService interface {
	GetOwnerBalance(ctx context.Context, scope domain.Scope, ownerID uuid.UUID) (*domain.OwnerBalance, error)
	GetOwnerFinancialReport(ctx context.Context, scope domain.Scope, ownerID uuid.UUID, period domain.DateRange) (*domain.OwnerFinancialReport, error)
	GetPropertyPerformanceReport(ctx context.Context, scope domain.Scope, propertyID uuid.UUID, period domain.DateRange) (*domain.PropertyPerformanceReport, error)
	GetSystemSummaryReport(ctx context.Context, scope domain.Scope, period domain.DateRange) (*domain.SystemSummaryReport, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking, property *domain.Property) error
	SendBookingCancellation(ctx context.Context, booking *domain.Booking, property *domain.Property) error
	SendCheckInReminder(ctx context.Context, booking *domain.Booking, property *domain.Property) error
	SendPaymentReceipt(ctx context.Context, booking *domain.Booking, amount decimal.Decimal) error
}
