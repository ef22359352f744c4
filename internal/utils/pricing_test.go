package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertydesk-backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int { return &i }

func shortTermProperty() *domain.Property {
	return &domain.Property{
		Type:        domain.PropertyTypeShortTerm,
		BasePrice:   decPtr("300"),
		CleaningFee: decPtr("150"),
		MaxGuests:   intPtr(4),
		MinStayDays: intPtr(2),
		MaxStayDays: intPtr(30),
	}
}

func TestQuoteStay(t *testing.T) {
	today := date(2025, 6, 1)

	t.Run("Success", func(t *testing.T) {
		q, err := QuoteStay(shortTermProperty(), date(2025, 6, 10), date(2025, 6, 14), 2, today)
		require.NoError(t, err)
		assert.Equal(t, 4, q.Nights)
		assert.True(t, q.TotalBaseAmount.Equal(dec("1200")))
		assert.True(t, q.CleaningFee.Equal(dec("150")))
		assert.True(t, q.TotalAmount.Equal(dec("1350")))
	})

	t.Run("SameDayCheckout", func(t *testing.T) {
		_, err := QuoteStay(shortTermProperty(), date(2025, 6, 10), date(2025, 6, 10), 2, today)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("CheckoutBeforeCheckin", func(t *testing.T) {
		_, err := QuoteStay(shortTermProperty(), date(2025, 6, 14), date(2025, 6, 10), 2, today)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("PastCheckin", func(t *testing.T) {
		_, err := QuoteStay(shortTermProperty(), date(2025, 5, 20), date(2025, 5, 25), 2, today)
		assert.ErrorIs(t, err, domain.ErrPastDate)
	})

	t.Run("CheckinToday", func(t *testing.T) {
		_, err := QuoteStay(shortTermProperty(), today, today.AddDate(0, 0, 3), 2, today)
		assert.NoError(t, err)
	})

	t.Run("TooManyGuests", func(t *testing.T) {
		_, err := QuoteStay(shortTermProperty(), date(2025, 6, 10), date(2025, 6, 14), 5, today)
		assert.ErrorIs(t, err, domain.ErrGuestLimitExceeded)
	})

	t.Run("BelowMinStay", func(t *testing.T) {
		_, err := QuoteStay(shortTermProperty(), date(2025, 6, 10), date(2025, 6, 11), 2, today)
		assert.ErrorIs(t, err, domain.ErrMinStayViolation)
	})

	t.Run("AboveMaxStay", func(t *testing.T) {
		_, err := QuoteStay(shortTermProperty(), date(2025, 6, 10), date(2025, 8, 10), 2, today)
		assert.ErrorIs(t, err, domain.ErrMaxStayViolation)
	})

	t.Run("LongTermProperty", func(t *testing.T) {
		p := shortTermProperty()
		p.Type = domain.PropertyTypeLongTerm
		_, err := QuoteStay(p, date(2025, 6, 10), date(2025, 6, 14), 2, today)
		assert.ErrorIs(t, err, domain.ErrInvalidPropertyType)
	})

	t.Run("NoBasePrice", func(t *testing.T) {
		p := shortTermProperty()
		p.BasePrice = nil
		_, err := QuoteStay(p, date(2025, 6, 10), date(2025, 6, 14), 2, today)
		assert.ErrorIs(t, err, domain.ErrMissingPricing)
	})

	t.Run("ZeroBasePrice", func(t *testing.T) {
		p := shortTermProperty()
		p.BasePrice = decPtr("0")
		_, err := QuoteStay(p, date(2025, 6, 10), date(2025, 6, 14), 2, today)
		assert.ErrorIs(t, err, domain.ErrMissingPricing)
	})

	t.Run("NoCleaningFee", func(t *testing.T) {
		p := shortTermProperty()
		p.CleaningFee = nil
		q, err := QuoteStay(p, date(2025, 6, 10), date(2025, 6, 14), 2, today)
		require.NoError(t, err)
		assert.True(t, q.TotalAmount.Equal(dec("1200")))
	})

	t.Run("NoLimitsConfigured", func(t *testing.T) {
		p := shortTermProperty()
		p.MaxGuests = nil
		p.MinStayDays = nil
		p.MaxStayDays = nil
		_, err := QuoteStay(p, date(2025, 6, 10), date(2025, 6, 11), 20, today)
		assert.NoError(t, err)
	})
}

func TestValidateStayChange(t *testing.T) {
	t.Run("PastCheckinAllowed", func(t *testing.T) {
		// Edits never hit the past-date rule; an in-progress stay may be
		// extended after its check-in.
		err := ValidateStayChange(shortTermProperty(), date(2025, 5, 20), date(2025, 5, 25), 2)
		assert.NoError(t, err)
	})

	t.Run("CheckoutBeforeCheckin", func(t *testing.T) {
		err := ValidateStayChange(shortTermProperty(), date(2025, 6, 14), date(2025, 6, 10), 2)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("TooManyGuests", func(t *testing.T) {
		err := ValidateStayChange(shortTermProperty(), date(2025, 6, 10), date(2025, 6, 14), 5)
		assert.ErrorIs(t, err, domain.ErrGuestLimitExceeded)
	})

	t.Run("BelowMinStay", func(t *testing.T) {
		err := ValidateStayChange(shortTermProperty(), date(2025, 6, 10), date(2025, 6, 11), 2)
		assert.ErrorIs(t, err, domain.ErrMinStayViolation)
	})

	t.Run("AboveMaxStay", func(t *testing.T) {
		err := ValidateStayChange(shortTermProperty(), date(2025, 6, 10), date(2025, 8, 10), 2)
		assert.ErrorIs(t, err, domain.ErrMaxStayViolation)
	})

	t.Run("NoBasePriceRequired", func(t *testing.T) {
		// Validation never touches pricing; the booking keeps its stored rate.
		p := shortTermProperty()
		p.BasePrice = nil
		err := ValidateStayChange(p, date(2025, 6, 10), date(2025, 6, 14), 2)
		assert.NoError(t, err)
	})
}

func TestRangesOverlap(t *testing.T) {
	in := date(2025, 6, 10)
	out := date(2025, 6, 14)

	t.Run("TouchingAtCheckout", func(t *testing.T) {
		// Checkout day equals the other booking's check-in day: no conflict.
		assert.False(t, RangesOverlap(in, out, out, date(2025, 6, 18)))
		assert.False(t, RangesOverlap(out, date(2025, 6, 18), in, out))
	})

	t.Run("Contained", func(t *testing.T) {
		assert.True(t, RangesOverlap(in, out, date(2025, 6, 11), date(2025, 6, 12)))
	})

	t.Run("PartialOverlap", func(t *testing.T) {
		assert.True(t, RangesOverlap(in, out, date(2025, 6, 13), date(2025, 6, 20)))
		assert.True(t, RangesOverlap(in, out, date(2025, 6, 5), date(2025, 6, 11)))
	})

	t.Run("Disjoint", func(t *testing.T) {
		assert.False(t, RangesOverlap(in, out, date(2025, 6, 20), date(2025, 6, 25)))
	})

	t.Run("Identical", func(t *testing.T) {
		assert.True(t, RangesOverlap(in, out, in, out))
	})
}

func TestDerivePaymentStatus(t *testing.T) {
	total := dec("1000")

	assert.Equal(t, domain.PaymentStatusUnpaid, DerivePaymentStatus(decimal.Zero, total))
	assert.Equal(t, domain.PaymentStatusPartial, DerivePaymentStatus(dec("500"), total))
	assert.Equal(t, domain.PaymentStatusPaid, DerivePaymentStatus(total, total))
	assert.Equal(t, domain.PaymentStatusPaid, DerivePaymentStatus(dec("1200"), total))
}

func TestRecomputeBookingTotals(t *testing.T) {
	b := &domain.Booking{
		CheckInDate:  date(2025, 6, 10),
		CheckOutDate: date(2025, 6, 14),
		BasePrice:    dec("300"),
		CleaningFee:  dec("150"),
		ExtraFees:    dec("50"),
		Discount:     dec("100"),
		PaidAmount:   dec("400"),
	}

	RecomputeBookingTotals(b)

	assert.Equal(t, 4, b.NumberOfNights)
	assert.True(t, b.TotalBaseAmount.Equal(dec("1200")))
	assert.True(t, b.TotalAmount.Equal(dec("1300")))
	assert.True(t, b.RemainingAmount.Equal(dec("900")))
	assert.Equal(t, domain.PaymentStatusPartial, b.PaymentStatus)
}

func TestApplyPayment(t *testing.T) {
	newBooking := func() *domain.Booking {
		b := &domain.Booking{
			CheckInDate:  date(2025, 6, 10),
			CheckOutDate: date(2025, 6, 14),
			BasePrice:    dec("300"),
			CleaningFee:  dec("150"),
		}
		RecomputeBookingTotals(b)
		return b
	}

	t.Run("PartialThenFull", func(t *testing.T) {
		b := newBooking()
		require.NoError(t, ApplyPayment(b, dec("350")))
		assert.Equal(t, domain.PaymentStatusPartial, b.PaymentStatus)
		assert.True(t, b.RemainingAmount.Equal(dec("1000")))

		require.NoError(t, ApplyPayment(b, dec("1000")))
		assert.Equal(t, domain.PaymentStatusPaid, b.PaymentStatus)
		assert.True(t, b.RemainingAmount.IsZero())
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		b := newBooking()
		assert.ErrorIs(t, ApplyPayment(b, decimal.Zero), domain.ErrInvalidAmount)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		b := newBooking()
		assert.ErrorIs(t, ApplyPayment(b, dec("-50")), domain.ErrInvalidAmount)
	})

	t.Run("ExceedsRemaining", func(t *testing.T) {
		b := newBooking()
		require.NoError(t, ApplyPayment(b, dec("1000")))
		err := ApplyPayment(b, dec("400"))
		assert.ErrorIs(t, err, domain.ErrAmountExceedsTotal)
		// Paid amount is untouched on rejection.
		assert.True(t, b.PaidAmount.Equal(dec("1000")))
	})
}

func TestMonthsBetween(t *testing.T) {
	t.Run("AcrossYearBoundary", func(t *testing.T) {
		months := MonthsBetween(date(2024, 11, 15), date(2025, 2, 3))
		require.Len(t, months, 4)
		assert.Equal(t, YearMonth{2024, time.November}, months[0])
		assert.Equal(t, YearMonth{2025, time.February}, months[3])
	})

	t.Run("SingleMonth", func(t *testing.T) {
		months := MonthsBetween(date(2025, 6, 1), date(2025, 6, 30))
		require.Len(t, months, 1)

		first, last := months[0].Bounds()
		assert.Equal(t, date(2025, 6, 1), first)
		assert.Equal(t, date(2025, 6, 30), last)
	})
}
