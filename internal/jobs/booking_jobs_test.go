package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"propertydesk-backend/internal/config"
	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/jobs"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/utils"
)

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

func overdueBooking(status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:           uuid.New(),
		PropertyID:   uuid.New(),
		GuestName:    "Late Guest",
		CheckInDate:  utils.Today().AddDate(0, 0, -2),
		CheckOutDate: utils.Today().AddDate(0, 0, 3),
		Status:       status,
	}
}

func TestMarkNoShowBookings(t *testing.T) {
	t.Run("MarksConfirmedBookings", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		first := overdueBooking(domain.BookingStatusConfirmed)
		second := overdueBooking(domain.BookingStatusConfirmed)

		bookingRepo.On("ListOverdueCheckIns", mock.Anything, mock.Anything).
			Return([]domain.Booking{first, second}, nil)
		bookingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		runner := jobs.NewJobRunner(bookingRepo, new(MockPropertyRepo), nil, &config.Config{})
		runner.MarkNoShowBookings()

		bookingRepo.AssertNumberOfCalls(t, "Update", 2)
		for _, call := range bookingRepo.Calls {
			if call.Method != "Update" {
				continue
			}
			updated := call.Arguments.Get(1).(*domain.Booking)
			assert.Equal(t, domain.BookingStatusNoShow, updated.Status)
		}
	})

	t.Run("SkipsBookingsThatCannotTransition", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		checkedIn := overdueBooking(domain.BookingStatusCheckedIn)

		bookingRepo.On("ListOverdueCheckIns", mock.Anything, mock.Anything).
			Return([]domain.Booking{checkedIn}, nil)

		runner := jobs.NewJobRunner(bookingRepo, new(MockPropertyRepo), nil, &config.Config{})
		runner.MarkNoShowBookings()

		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestSendCheckInReminders(t *testing.T) {
	t.Run("SendsToGuestsWithEmail", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		propertyRepo := new(MockPropertyRepo)
		email := new(MockEmailService)

		withEmail := overdueBooking(domain.BookingStatusConfirmed)
		withEmail.GuestEmail = "guest@example.com"
		withoutEmail := overdueBooking(domain.BookingStatusConfirmed)

		tomorrow := utils.Today().AddDate(0, 0, 1)
		bookingRepo.On("ListCheckInsOn", mock.Anything, tomorrow).
			Return([]domain.Booking{withEmail, withoutEmail}, nil)
		propertyRepo.On("GetByID", mock.Anything, withEmail.PropertyID).
			Return(&domain.Property{ID: withEmail.PropertyID, Name: "Sea View Flat"}, nil)
		email.On("SendCheckInReminder", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		runner := jobs.NewJobRunner(bookingRepo, propertyRepo, email, &config.Config{})
		runner.SendCheckInReminders()

		email.AssertNumberOfCalls(t, "SendCheckInReminder", 1)
		propertyRepo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("NilEmailServiceIsNoop", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)

		runner := jobs.NewJobRunner(bookingRepo, new(MockPropertyRepo), nil, &config.Config{})
		runner.SendCheckInReminders()

		bookingRepo.AssertNotCalled(t, "ListCheckInsOn", mock.Anything, mock.Anything)
	})
}
