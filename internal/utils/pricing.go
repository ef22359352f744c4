package utils

import (
	"time"

	"propertydesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// StayQuote is the priced result of a valid stay request. It carries no side
// effects; the service copies it onto a booking before persisting.
type StayQuote struct {
	Nights          int
	BasePrice       decimal.Decimal
	TotalBaseAmount decimal.Decimal
	CleaningFee     decimal.Decimal
	TotalAmount     decimal.Decimal
}

// DateOnly strips the time component, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// NightsBetween counts the nights in the half-open range [checkIn, checkOut).
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// QuoteStay validates a stay request against the property rules and prices
// it. today must be a calendar date (see Today); it is a parameter so the
// past-date rule stays deterministic under test.
//
// Validation order matches the booking flow: property type, date sanity,
// past date, guest limit, then stay-length limits. Pricing fails fast when a
// short-term property has no base price instead of quoting zero.
func QuoteStay(p *domain.Property, checkIn, checkOut time.Time, guests int, today time.Time) (StayQuote, error) {
	if p.Type != domain.PropertyTypeShortTerm {
		return StayQuote{}, domain.ErrInvalidPropertyType
	}

	in := DateOnly(checkIn)
	out := DateOnly(checkOut)
	if !out.After(in) {
		return StayQuote{}, domain.ErrInvalidDateRange
	}
	if in.Before(today) {
		return StayQuote{}, domain.ErrPastDate
	}

	if p.MaxGuests != nil && guests > *p.MaxGuests {
		return StayQuote{}, domain.ErrGuestLimitExceeded
	}

	nights := NightsBetween(in, out)
	if p.MinStayDays != nil && nights < *p.MinStayDays {
		return StayQuote{}, domain.ErrMinStayViolation
	}
	if p.MaxStayDays != nil && nights > *p.MaxStayDays {
		return StayQuote{}, domain.ErrMaxStayViolation
	}

	if p.BasePrice == nil || p.BasePrice.LessThanOrEqual(decimal.Zero) {
		return StayQuote{}, domain.ErrMissingPricing
	}

	cleaningFee := decimal.Zero
	if p.CleaningFee != nil {
		cleaningFee = *p.CleaningFee
	}

	totalBase := p.BasePrice.Mul(decimal.NewFromInt(int64(nights)))
	return StayQuote{
		Nights:          nights,
		BasePrice:       *p.BasePrice,
		TotalBaseAmount: totalBase,
		CleaningFee:     cleaningFee,
		TotalAmount:     totalBase.Add(cleaningFee),
	}, nil
}

// ValidateStayChange checks an edit to an existing booking's dates or guest
// count against the property rules. Unlike QuoteStay it never applies the
// past-date rule and never reprices: a guest already checked in may have
// their stay extended, and the booking keeps the rate it was sold at.
func ValidateStayChange(p *domain.Property, checkIn, checkOut time.Time, guests int) error {
	if p.Type != domain.PropertyTypeShortTerm {
		return domain.ErrInvalidPropertyType
	}

	in := DateOnly(checkIn)
	out := DateOnly(checkOut)
	if !out.After(in) {
		return domain.ErrInvalidDateRange
	}

	if p.MaxGuests != nil && guests > *p.MaxGuests {
		return domain.ErrGuestLimitExceeded
	}

	nights := NightsBetween(in, out)
	if p.MinStayDays != nil && nights < *p.MinStayDays {
		return domain.ErrMinStayViolation
	}
	if p.MaxStayDays != nil && nights > *p.MaxStayDays {
		return domain.ErrMaxStayViolation
	}
	return nil
}

// RangesOverlap reports whether two half-open date ranges [inA, outA) and
// [inB, outB) share at least one night. A checkout on day X does not conflict
// with a check-in on day X.
func RangesOverlap(inA, outA, inB, outB time.Time) bool {
	return DateOnly(inA).Before(DateOnly(outB)) && DateOnly(inB).Before(DateOnly(outA))
}

// DerivePaymentStatus is the pure derivation of a booking's payment status
// from its paid and total amounts.
func DerivePaymentStatus(paid, total decimal.Decimal) domain.PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return domain.PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return domain.PaymentStatusPaid
	default:
		return domain.PaymentStatusPartial
	}
}

// RecomputeBookingTotals re-derives every calculated monetary field from the
// booking's inputs. It replaces the save-time hook of the previous system:
// services call it explicitly before each persistence write.
func RecomputeBookingTotals(b *domain.Booking) {
	b.NumberOfNights = NightsBetween(b.CheckInDate, b.CheckOutDate)
	b.TotalBaseAmount = b.BasePrice.Mul(decimal.NewFromInt(int64(b.NumberOfNights)))
	b.TotalAmount = b.TotalBaseAmount.Add(b.CleaningFee).Add(b.ExtraFees).Sub(b.Discount)
	b.RemainingAmount = b.TotalAmount.Sub(b.PaidAmount)
	b.PaymentStatus = DerivePaymentStatus(b.PaidAmount, b.TotalAmount)
}

// ApplyPayment increases the booking's paid amount and re-derives the
// dependent fields. The amount must be positive and must not exceed the
// remaining balance; paidAmount only ever grows through this path.
func ApplyPayment(b *domain.Booking, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(b.RemainingAmount) {
		return domain.ErrAmountExceedsTotal
	}
	b.PaidAmount = b.PaidAmount.Add(amount)
	b.RemainingAmount = b.TotalAmount.Sub(b.PaidAmount)
	b.PaymentStatus = DerivePaymentStatus(b.PaidAmount, b.TotalAmount)
	return nil
}

// YearMonth identifies one calendar month of a report breakdown.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthsBetween lists the calendar months touched by the inclusive range
// [start, end], oldest first.
func MonthsBetween(start, end time.Time) []YearMonth {
	start = DateOnly(start)
	end = DateOnly(end)

	var months []YearMonth
	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !current.After(end) {
		months = append(months, YearMonth{Year: current.Year(), Month: current.Month()})
		current = current.AddDate(0, 1, 0)
	}
	return months
}

// Bounds returns the first and last calendar day of the month.
func (ym YearMonth) Bounds() (time.Time, time.Time) {
	first := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
