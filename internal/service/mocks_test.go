package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, filter repository.UserFilter, page, pageSize int) ([]domain.User, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}
func (m *MockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Update(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPropertyRepo) List(ctx context.Context, filter repository.PropertyFilter, page, pageSize int) ([]domain.Property, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Property), args.Int(1), args.Error(2)
}
func (m *MockPropertyRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateIfAvailable(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateIfAvailable(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) RecordPayment(ctx context.Context, bookingID uuid.UUID, payment *domain.Payment) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) FindOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID, checkIn, checkOut, excludeID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) List(ctx context.Context, filter repository.BookingFilter, page, pageSize int) ([]domain.Booking, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Int(1), args.Error(2)
}
func (m *MockBookingRepo) ListAll(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListOverdueCheckIns(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListCheckInsOn(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) List(ctx context.Context, filter repository.PaymentFilter, page, pageSize int) ([]domain.Payment, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Int(1), args.Error(2)
}
func (m *MockPaymentRepo) ListAll(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, booking *domain.Booking, property *domain.Property) error {
	args := m.Called(ctx, booking, property)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancellation(ctx context.Context, booking *domain.Booking, property *domain.Property) error {
	args := m.Called(ctx, booking, property)
	return args.Error(0)
}
func (m *MockEmailService) SendCheckInReminder(ctx context.Context, booking *domain.Booking, property *domain.Property) error {
	args := m.Called(ctx, booking, property)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, booking *domain.Booking, amount decimal.Decimal) error {
	args := m.Called(ctx, booking, amount)
	return args.Error(0)
}
