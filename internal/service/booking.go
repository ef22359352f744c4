package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/logger"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/utils"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	email        EmailService
}

// NewBookingService wires the booking workflow. email may be nil; all mail is
// best effort and never fails the operation.
func NewBookingService(bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository, email EmailService) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		email:        email,
	}
}

// loadScoped fetches the booking and its property and enforces visibility.
// A tenant linked directly to the booking may see it even when they are not
// the property's long-term tenant.
func (s *bookingService) loadScoped(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, *domain.Property, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundIfNoRows(err)
	}
	property, err := s.propertyRepo.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, nil, notFoundIfNoRows(err)
	}
	if !canSeeProperty(scope, property) {
		if booking.TenantID == nil || *booking.TenantID != scope.UserID {
			return nil, nil, domain.ErrAccessDenied
		}
	}
	return booking, property, nil
}

// canManageBooking limits state changes and edits to admins and the owner of
// the booked property.
func canManageBooking(scope domain.Scope, property *domain.Property) bool {
	return scope.IsAdmin() || (scope.IsOwner() && property.OwnerID == scope.UserID)
}

func (s *bookingService) CheckAvailability(ctx context.Context, scope domain.Scope, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (*Availability, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	if !canSeeProperty(scope, property) {
		return nil, domain.ErrAccessDenied
	}
	if !utils.DateOnly(checkOut).After(utils.DateOnly(checkIn)) {
		return nil, domain.ErrInvalidDateRange
	}

	conflicts, err := s.bookingRepo.FindOverlapping(ctx, propertyID, utils.DateOnly(checkIn), utils.DateOnly(checkOut), excludeBookingID)
	if err != nil {
		return nil, err
	}
	return &Availability{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, scope domain.Scope, input CreateBookingInput) (*domain.Booking, error) {
	property, err := s.propertyRepo.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	if !canManageBooking(scope, property) {
		return nil, domain.ErrAccessDenied
	}

	quote, err := utils.QuoteStay(property, input.CheckInDate, input.CheckOutDate, input.NumberOfGuests, utils.Today())
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PropertyID:     property.ID,
		GuestName:      input.GuestName,
		GuestEmail:     input.GuestEmail,
		GuestPhone:     input.GuestPhone,
		NumberOfGuests: input.NumberOfGuests,
		CheckInDate:    utils.DateOnly(input.CheckInDate),
		CheckOutDate:   utils.DateOnly(input.CheckOutDate),

		BasePrice:   quote.BasePrice,
		CleaningFee: quote.CleaningFee,
		ExtraFees:   input.ExtraFees,
		Discount:    input.Discount,

		Status: domain.BookingStatusPending,

		BookingSource:     input.BookingSource,
		ExternalBookingID: input.ExternalBookingID,
		SpecialRequests:   input.SpecialRequests,
		GuestNotes:        input.GuestNotes,
		InternalNotes:     input.InternalNotes,
	}
	utils.RecomputeBookingTotals(booking)

	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "booking created",
		"booking_id", booking.ID, "property_id", property.ID,
		"check_in", booking.CheckInDate, "check_out", booking.CheckOutDate,
		"total", booking.TotalAmount)

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
	booking, _, err := s.loadScoped(ctx, scope, id)
	return booking, err
}

func (s *bookingService) UpdateBooking(ctx context.Context, scope domain.Scope, id uuid.UUID, input UpdateBookingInput) (*domain.Booking, error) {
	booking, property, err := s.loadScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !canManageBooking(scope, property) {
		return nil, domain.ErrAccessDenied
	}
	if !booking.Editable() {
		return nil, domain.ErrBookingNotEditable
	}

	if input.GuestName != nil {
		booking.GuestName = *input.GuestName
	}
	if input.GuestEmail != nil {
		booking.GuestEmail = *input.GuestEmail
	}
	if input.GuestPhone != nil {
		booking.GuestPhone = *input.GuestPhone
	}
	if input.SpecialRequests != nil {
		booking.SpecialRequests = *input.SpecialRequests
	}
	if input.GuestNotes != nil {
		booking.GuestNotes = *input.GuestNotes
	}
	if input.InternalNotes != nil {
		booking.InternalNotes = *input.InternalNotes
	}
	if input.ExtraFees != nil {
		booking.ExtraFees = *input.ExtraFees
	}
	if input.Discount != nil {
		booking.Discount = *input.Discount
	}

	datesChanged := input.CheckInDate != nil || input.CheckOutDate != nil
	guestsChanged := input.NumberOfGuests != nil
	if datesChanged || guestsChanged {
		checkIn := booking.CheckInDate
		checkOut := booking.CheckOutDate
		guests := booking.NumberOfGuests
		if input.CheckInDate != nil {
			checkIn = utils.DateOnly(*input.CheckInDate)
		}
		if input.CheckOutDate != nil {
			checkOut = utils.DateOnly(*input.CheckOutDate)
		}
		if input.NumberOfGuests != nil {
			guests = *input.NumberOfGuests
		}

		// An edit keeps the nightly rate the booking was sold at; totals are
		// re-derived from the stored price below. The past-date rule does not
		// apply here, only to new bookings: a checked-in guest may extend a
		// stay whose check-in has already passed.
		if err := utils.ValidateStayChange(property, checkIn, checkOut, guests); err != nil {
			return nil, err
		}
		booking.CheckInDate = checkIn
		booking.CheckOutDate = checkOut
		booking.NumberOfGuests = guests
	}

	utils.RecomputeBookingTotals(booking)

	if datesChanged {
		if err := s.bookingRepo.UpdateIfAvailable(ctx, booking); err != nil {
			return nil, err
		}
	} else {
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return nil, err
		}
	}
	return booking, nil
}

// transition moves the booking to target after the status machine allows it.
func (s *bookingService) transition(ctx context.Context, scope domain.Scope, id uuid.UUID, target domain.BookingStatus) (*domain.Booking, *domain.Property, error) {
	booking, property, err := s.loadScoped(ctx, scope, id)
	if err != nil {
		return nil, nil, err
	}
	if !canManageBooking(scope, property) {
		return nil, nil, domain.ErrAccessDenied
	}
	if !booking.CanTransitionTo(target) {
		return nil, nil, domain.ErrInvalidStateTransition
	}
	booking.Status = target
	return booking, property, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
	booking, property, err := s.transition(ctx, scope, id, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}

	// Confirmation is the moment the booking starts blocking dates, so the
	// overlap check runs again.
	if err := s.bookingRepo.UpdateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	if s.email != nil && booking.GuestEmail != "" {
		if err := s.email.SendBookingConfirmation(ctx, booking, property); err != nil {
			logger.ErrorContext(ctx, "confirmation email failed", "booking_id", booking.ID, "error", err)
		}
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, scope domain.Scope, id uuid.UUID, reason string) (*domain.Booking, error) {
	booking, property, err := s.transition(ctx, scope, id, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		if booking.InternalNotes != "" {
			booking.InternalNotes += "\n"
		}
		booking.InternalNotes += "Cancelled: " + reason
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "booking cancelled", "booking_id", booking.ID, "reason", reason)

	if s.email != nil && booking.GuestEmail != "" {
		if err := s.email.SendBookingCancellation(ctx, booking, property); err != nil {
			logger.ErrorContext(ctx, "cancellation email failed", "booking_id", booking.ID, "error", err)
		}
	}
	return booking, nil
}

func (s *bookingService) CheckInBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
	booking, _, err := s.transition(ctx, scope, id, domain.BookingStatusCheckedIn)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	booking.ActualCheckIn = &now
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CheckOutBooking(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
	booking, _, err := s.transition(ctx, scope, id, domain.BookingStatusCheckedOut)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	booking.ActualCheckOut = &now
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) MarkNoShow(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
	booking, _, err := s.transition(ctx, scope, id, domain.BookingStatusNoShow)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) RecordPayment(ctx context.Context, scope domain.Scope, id uuid.UUID, input RecordBookingPaymentInput) (*domain.Booking, error) {
	booking, property, err := s.loadScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !canManageBooking(scope, property) {
		return nil, domain.ErrAccessDenied
	}
	if booking.Status == domain.BookingStatusCancelled || booking.Status == domain.BookingStatusNoShow {
		return nil, domain.ErrBookingNotEditable
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	createdBy := scope.UserID
	ownerID := property.OwnerID
	propertyID := property.ID
	payment := &domain.Payment{
		Amount:          input.Amount,
		PaymentDate:     paymentDate,
		Method:          input.Method,
		Type:            domain.PaymentTypeBooking,
		Status:          domain.PaymentStateCompleted,
		PropertyID:      &propertyID,
		ReceiverID:      &ownerID,
		Description:     input.Description,
		ReferenceNumber: input.ReferenceNumber,
		CreatedBy:       &createdBy,
	}

	updated, err := s.bookingRepo.RecordPayment(ctx, id, payment)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "booking payment recorded",
		"booking_id", id, "amount", input.Amount, "payment_status", updated.PaymentStatus)

	if s.email != nil && updated.GuestEmail != "" {
		if err := s.email.SendPaymentReceipt(ctx, updated, input.Amount); err != nil {
			logger.ErrorContext(ctx, "payment receipt email failed", "booking_id", id, "error", err)
		}
	}
	return updated, nil
}

func (s *bookingService) ListBookings(ctx context.Context, scope domain.Scope, filter repository.BookingFilter, page, pageSize int) ([]domain.Booking, int, error) {
	scopeBookingFilter(scope, &filter)
	return s.bookingRepo.List(ctx, filter, page, pageSize)
}

func scopeBookingFilter(scope domain.Scope, filter *repository.BookingFilter) {
	switch {
	case scope.IsOwner():
		id := scope.UserID
		filter.OwnerID = &id
	case scope.IsTenant():
		id := scope.UserID
		filter.TenantID = &id
	}
}

func (s *bookingService) GetBookingStats(ctx context.Context, scope domain.Scope, from, to *time.Time) (*domain.BookingStats, error) {
	filter := repository.BookingFilter{CheckInFrom: from, CheckInTo: to}
	scopeBookingFilter(scope, &filter)

	bookings, err := s.bookingRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &domain.BookingStats{
		TotalRevenue:     decimal.Zero,
		CollectedRevenue: decimal.Zero,
		PendingRevenue:   decimal.Zero,
	}
	for _, b := range bookings {
		stats.Total++
		switch b.Status {
		case domain.BookingStatusPending:
			stats.Pending++
		case domain.BookingStatusConfirmed:
			stats.Confirmed++
			stats.Active++
		case domain.BookingStatusCheckedIn:
			stats.Active++
		case domain.BookingStatusCheckedOut:
			stats.Completed++
		case domain.BookingStatusCancelled, domain.BookingStatusNoShow:
			stats.Cancelled++
		}

		if b.Status == domain.BookingStatusCancelled || b.Status == domain.BookingStatusNoShow {
			continue
		}

		switch b.PaymentStatus {
		case domain.PaymentStatusUnpaid:
			stats.Unpaid++
		case domain.PaymentStatusPartial:
			stats.PartiallyPaid++
		case domain.PaymentStatusPaid:
			stats.Paid++
		}

		stats.TotalRevenue = stats.TotalRevenue.Add(b.TotalAmount)
		stats.CollectedRevenue = stats.CollectedRevenue.Add(b.PaidAmount)
		stats.PendingRevenue = stats.PendingRevenue.Add(b.RemainingAmount)
	}
	return stats, nil
}
