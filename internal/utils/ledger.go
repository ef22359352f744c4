package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
)

// completed filters the slice down to completed payments. Every aggregation
// below only ever counts completed money.
func completed(payments []domain.Payment) []domain.Payment {
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Status == domain.PaymentStateCompleted {
			out = append(out, p)
		}
	}
	return out
}

// CalculateOwnerBalance computes the owner's net position from a payment set.
// income: booking payments received by the owner; deposits: money the owner
// put into the system; expenses: costs paid out for the owner; commissions:
// fees charged to the owner. balance = income + deposits - expenses -
// commissions. Positive means the system owes the owner.
func CalculateOwnerBalance(ownerID uuid.UUID, payments []domain.Payment) domain.OwnerBalance {
	bal := domain.OwnerBalance{
		Income:      decimal.Zero,
		Deposits:    decimal.Zero,
		Expenses:    decimal.Zero,
		Commissions: decimal.Zero,
	}

	for _, p := range completed(payments) {
		switch p.Type {
		case domain.PaymentTypeBooking:
			if p.ReceiverID != nil && *p.ReceiverID == ownerID {
				bal.Income = bal.Income.Add(p.Amount)
			}
		case domain.PaymentTypeOwnerDeposit:
			if p.PayerID != nil && *p.PayerID == ownerID {
				bal.Deposits = bal.Deposits.Add(p.Amount)
			}
		case domain.PaymentTypeExpense:
			if p.ReceiverID != nil && *p.ReceiverID == ownerID {
				bal.Expenses = bal.Expenses.Add(p.Amount)
			}
		case domain.PaymentTypeCommission:
			if p.PayerID != nil && *p.PayerID == ownerID {
				bal.Commissions = bal.Commissions.Add(p.Amount)
			}
		}
	}

	bal.Balance = bal.Income.Add(bal.Deposits).Sub(bal.Expenses).Sub(bal.Commissions)
	return bal
}

// BuildOwnerFinancialReport assembles the owner's financial report from a
// pre-fetched payment set. Payments are kept when they belong to one of the
// owner's properties, or the owner is payer or receiver, and their date falls
// inside the period (inclusive bounds). An owner with no properties gets a
// well-formed empty report, not an error.
func BuildOwnerFinancialReport(owner *domain.User, properties []domain.Property, payments []domain.Payment, period domain.DateRange) *domain.OwnerFinancialReport {
	report := &domain.OwnerFinancialReport{
		Owner:      owner,
		Period:     period,
		Properties: properties,
		Summary: domain.OwnerReportSummary{
			TotalIncome:      decimal.Zero,
			TotalDeposits:    decimal.Zero,
			TotalExpenses:    decimal.Zero,
			TotalCommissions: decimal.Zero,
			RenovationFunds:  decimal.Zero,
			NetIncome:        decimal.Zero,
		},
		CurrentBalance: decimal.Zero,
		ByType:         make(map[domain.PaymentType][]domain.Payment),
		ByProperty:     []domain.PropertyBreakdown{},
	}
	if len(properties) == 0 {
		return report
	}

	propSet := make(map[uuid.UUID]*domain.Property, len(properties))
	for i := range properties {
		propSet[properties[i].ID] = &properties[i]
	}

	byProperty := make(map[uuid.UUID]*domain.PropertyBreakdown)
	ownerID := owner.ID

	for _, p := range completed(payments) {
		if !period.Contains(p.PaymentDate) {
			continue
		}

		inPropSet := p.PropertyID != nil && propSet[*p.PropertyID] != nil
		involvesOwner := (p.PayerID != nil && *p.PayerID == ownerID) ||
			(p.ReceiverID != nil && *p.ReceiverID == ownerID)
		if !inPropSet && !involvesOwner {
			continue
		}

		report.TotalPayments++
		report.ByType[p.Type] = append(report.ByType[p.Type], p)

		if inPropSet {
			bd := byProperty[*p.PropertyID]
			if bd == nil {
				bd = &domain.PropertyBreakdown{
					Property: propSet[*p.PropertyID],
					Income:   decimal.Zero,
					Expenses: decimal.Zero,
				}
				byProperty[*p.PropertyID] = bd
			}
			bd.Payments = append(bd.Payments, p)
		}

		switch p.Type {
		case domain.PaymentTypeBooking:
			if (p.ReceiverID != nil && *p.ReceiverID == ownerID) || inPropSet {
				report.Summary.TotalIncome = report.Summary.TotalIncome.Add(p.Amount)
				if inPropSet {
					byProperty[*p.PropertyID].Income = byProperty[*p.PropertyID].Income.Add(p.Amount)
				}
			}
		case domain.PaymentTypeOwnerDeposit:
			if p.PayerID != nil && *p.PayerID == ownerID {
				report.Summary.TotalDeposits = report.Summary.TotalDeposits.Add(p.Amount)
			}
		case domain.PaymentTypeExpense:
			if inPropSet {
				report.Summary.TotalExpenses = report.Summary.TotalExpenses.Add(p.Amount)
				byProperty[*p.PropertyID].Expenses = byProperty[*p.PropertyID].Expenses.Add(p.Amount)
			}
		case domain.PaymentTypeCommission:
			if p.PayerID != nil && *p.PayerID == ownerID {
				report.Summary.TotalCommissions = report.Summary.TotalCommissions.Add(p.Amount)
			}
		}

		if p.IsForRenovation {
			report.Summary.RenovationFunds = report.Summary.RenovationFunds.Add(p.Amount)
		}
	}

	for _, bd := range byProperty {
		bd.Net = bd.Income.Sub(bd.Expenses)
		report.ByProperty = append(report.ByProperty, *bd)
	}

	report.Summary.NetIncome = report.Summary.TotalIncome.
		Add(report.Summary.TotalDeposits).
		Sub(report.Summary.TotalExpenses).
		Sub(report.Summary.TotalCommissions)
	report.CurrentBalance = report.Summary.NetIncome
	return report
}

// BuildPropertyPerformanceReport computes revenue, nights and occupancy for
// one property. Payments are filtered by payment date, bookings by check-in
// date, both with inclusive bounds. Rates divide safely: zero nights produce
// zero, never a division error. OccupancyRate is only computed for a closed
// period.
func BuildPropertyPerformanceReport(property *domain.Property, payments []domain.Payment, bookings []domain.Booking, period domain.DateRange) *domain.PropertyPerformanceReport {
	perf := domain.PropertyPerformance{
		TotalRevenue:        decimal.Zero,
		TotalExpenses:       decimal.Zero,
		AverageNightlyRate:  decimal.Zero,
		AverageBookingValue: decimal.Zero,
	}

	inPeriod := func(ps []domain.Payment) []domain.Payment {
		out := make([]domain.Payment, 0, len(ps))
		for _, p := range ps {
			if period.Contains(p.PaymentDate) {
				out = append(out, p)
			}
		}
		return out
	}
	periodPayments := inPeriod(completed(payments))

	for _, p := range periodPayments {
		switch p.Type {
		case domain.PaymentTypeBooking:
			perf.TotalRevenue = perf.TotalRevenue.Add(p.Amount)
		case domain.PaymentTypeExpense:
			perf.TotalExpenses = perf.TotalExpenses.Add(p.Amount)
		}
	}
	perf.NetProfit = perf.TotalRevenue.Sub(perf.TotalExpenses)

	totalValue := decimal.Zero
	var periodBookings []domain.Booking
	for _, b := range bookings {
		if !period.Contains(b.CheckInDate) {
			continue
		}
		periodBookings = append(periodBookings, b)
		perf.TotalNights += b.NumberOfNights
		totalValue = totalValue.Add(b.TotalAmount)
	}
	perf.TotalBookings = len(periodBookings)

	if perf.TotalBookings > 0 {
		perf.AverageBookingValue = totalValue.Div(decimal.NewFromInt(int64(perf.TotalBookings)))
	}
	if perf.TotalNights > 0 {
		perf.AverageNightlyRate = perf.TotalRevenue.Div(decimal.NewFromInt(int64(perf.TotalNights)))
	}

	if period.Closed() {
		totalDays := int(DateOnly(*period.End).Sub(DateOnly(*period.Start)).Hours() / 24)
		if totalDays > 0 {
			rate := decimal.NewFromInt(int64(perf.TotalNights)).
				Div(decimal.NewFromInt(int64(totalDays))).
				Mul(decimal.NewFromInt(100))
			perf.OccupancyRate = &rate
		}
	}

	report := &domain.PropertyPerformanceReport{
		Property:    property,
		Period:      period,
		Performance: perf,
	}
	if period.Closed() {
		report.MonthlyBreakdown = monthlyBreakdown(periodPayments, periodBookings, *period.Start, *period.End)
	}
	return report
}

// monthlyBreakdown partitions the period into calendar months and recomputes
// revenue, expenses, bookings and nights per month with the same filters as
// the whole-period report.
func monthlyBreakdown(payments []domain.Payment, bookings []domain.Booking, start, end time.Time) []domain.MonthPerformance {
	var breakdown []domain.MonthPerformance
	for _, ym := range MonthsBetween(start, end) {
		first, last := ym.Bounds()
		month := domain.MonthPerformance{
			Month:    fmt.Sprintf("%d/%d", int(ym.Month), ym.Year),
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
		}

		for _, p := range payments {
			d := DateOnly(p.PaymentDate)
			if d.Before(first) || d.After(last) {
				continue
			}
			switch p.Type {
			case domain.PaymentTypeBooking:
				month.Revenue = month.Revenue.Add(p.Amount)
			case domain.PaymentTypeExpense:
				month.Expenses = month.Expenses.Add(p.Amount)
			}
		}

		for _, b := range bookings {
			d := DateOnly(b.CheckInDate)
			if d.Before(first) || d.After(last) {
				continue
			}
			month.Bookings++
			month.Nights += b.NumberOfNights
		}

		month.Profit = month.Revenue.Sub(month.Expenses)
		breakdown = append(breakdown, month)
	}
	return breakdown
}

// SummarizePaymentsByType groups completed payments into per-type counts and
// totals for the system summary report.
func SummarizePaymentsByType(payments []domain.Payment) []domain.TypeTotal {
	order := []domain.PaymentType{
		domain.PaymentTypeBooking,
		domain.PaymentTypeOwnerDeposit,
		domain.PaymentTypeExpense,
		domain.PaymentTypeRefund,
		domain.PaymentTypeCommission,
		domain.PaymentTypeOther,
	}
	totals := make(map[domain.PaymentType]*domain.TypeTotal)
	for _, p := range completed(payments) {
		tt := totals[p.Type]
		if tt == nil {
			tt = &domain.TypeTotal{Type: p.Type, Total: decimal.Zero}
			totals[p.Type] = tt
		}
		tt.Count++
		tt.Total = tt.Total.Add(p.Amount)
	}

	var out []domain.TypeTotal
	for _, t := range order {
		if tt := totals[t]; tt != nil {
			out = append(out, *tt)
		}
	}
	return out
}

// BuildPaymentStats aggregates completed payments into the per-type stats
// object served by the payments API.
func BuildPaymentStats(payments []domain.Payment) domain.PaymentStats {
	stats := domain.PaymentStats{
		TotalAmount:     decimal.Zero,
		BookingPayments: decimal.Zero,
		OwnerDeposits:   decimal.Zero,
		ExpensePayments: decimal.Zero,
		Commissions:     decimal.Zero,
		Refunds:         decimal.Zero,
		Other:           decimal.Zero,
		RenovationFunds: decimal.Zero,
	}

	for _, p := range completed(payments) {
		stats.TotalPayments++
		stats.TotalAmount = stats.TotalAmount.Add(p.Amount)

		switch p.Type {
		case domain.PaymentTypeBooking:
			stats.BookingPayments = stats.BookingPayments.Add(p.Amount)
		case domain.PaymentTypeOwnerDeposit:
			stats.OwnerDeposits = stats.OwnerDeposits.Add(p.Amount)
		case domain.PaymentTypeExpense:
			stats.ExpensePayments = stats.ExpensePayments.Add(p.Amount)
		case domain.PaymentTypeCommission:
			stats.Commissions = stats.Commissions.Add(p.Amount)
		case domain.PaymentTypeRefund:
			stats.Refunds = stats.Refunds.Add(p.Amount)
		default:
			stats.Other = stats.Other.Add(p.Amount)
		}

		if p.IsForRenovation {
			stats.RenovationFunds = stats.RenovationFunds.Add(p.Amount)
		}
	}
	return stats
}
