package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Booking is a short-term stay on a property. CheckInDate/CheckOutDate form a
// half-open range: checkout day is free for the next guest's check-in.
// The monetary fields below BasePrice are derived, never entered directly.
type Booking struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	TenantID   *uuid.UUID `json:"tenant_id,omitempty"`

	GuestName      string `json:"guest_name"`
	GuestEmail     string `json:"guest_email,omitempty"`
	GuestPhone     string `json:"guest_phone"`
	NumberOfGuests int    `json:"number_of_guests"`

	CheckInDate    time.Time  `json:"check_in_date"`
	CheckOutDate   time.Time  `json:"check_out_date"`
	ActualCheckIn  *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `json:"actual_check_out,omitempty"`
	NumberOfNights int        `json:"number_of_nights"`

	BasePrice       decimal.Decimal `json:"base_price"`
	TotalBaseAmount decimal.Decimal `json:"total_base_amount"`
	CleaningFee     decimal.Decimal `json:"cleaning_fee"`
	ExtraFees       decimal.Decimal `json:"extra_fees"`
	Discount        decimal.Decimal `json:"discount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	BookingSource     string `json:"booking_source,omitempty"`
	ExternalBookingID string `json:"external_booking_id,omitempty"`
	SpecialRequests   string `json:"special_requests,omitempty"`
	GuestNotes        string `json:"guest_notes,omitempty"`
	InternalNotes     string `json:"internal_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// bookingTransitions is the full status machine. checked_out and cancelled
// are terminal; no_show is entered from pending or confirmed only.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusConfirmed: {BookingStatusCheckedIn, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusCheckedIn: {BookingStatusCheckedOut},
}

// CanTransitionTo reports whether the status machine permits moving from the
// booking's current status to target.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, next := range bookingTransitions[b.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the booking reached a final status.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// Editable reports whether core booking fields may still change.
func (b *Booking) Editable() bool {
	return b.Status != BookingStatusCheckedOut && b.Status != BookingStatusCancelled
}

// BlockingStatuses are the statuses that make a booking occupy its date range
// for overlap purposes. Pending, cancelled, no_show and checked_out never
// block new bookings.
var BlockingStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusCheckedIn}
