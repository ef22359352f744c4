package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerBalance is the net position between the system and a property owner.
// Positive balance: the system owes the owner. Negative: the owner owes the
// system. The sign convention is a contract and must not change.
type OwnerBalance struct {
	Income      decimal.Decimal `json:"income"`
	Deposits    decimal.Decimal `json:"deposits"`
	Expenses    decimal.Decimal `json:"expenses"`
	Commissions decimal.Decimal `json:"commissions"`
	Balance     decimal.Decimal `json:"balance"`
}

// DateRange bounds a report period. Both bounds are inclusive; either may be
// nil for an open end.
type DateRange struct {
	Start *time.Time `json:"start_date,omitempty"`
	End   *time.Time `json:"end_date,omitempty"`
}

// Contains reports whether t falls inside the range, treating nil bounds as
// unbounded.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Closed reports whether both bounds are present.
func (r DateRange) Closed() bool { return r.Start != nil && r.End != nil }

type OwnerReportSummary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	RenovationFunds  decimal.Decimal `json:"renovation_funds"`
	NetIncome        decimal.Decimal `json:"net_income"`
}

type PropertyBreakdown struct {
	Property *Property       `json:"property"`
	Payments []Payment       `json:"payments"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type OwnerFinancialReport struct {
	Owner          *User                     `json:"owner"`
	Period         DateRange                 `json:"report_period"`
	Properties     []Property                `json:"properties"`
	Summary        OwnerReportSummary        `json:"summary"`
	CurrentBalance decimal.Decimal           `json:"current_balance"`
	ByType         map[PaymentType][]Payment `json:"payments_by_type"`
	ByProperty     []PropertyBreakdown       `json:"payments_by_property"`
	TotalPayments  int                       `json:"total_payments"`
}

type MonthPerformance struct {
	Month    string          `json:"month"` // "1/2025"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	Bookings int             `json:"bookings"`
	Nights   int             `json:"nights"`
}

type PropertyPerformance struct {
	TotalRevenue        decimal.Decimal  `json:"total_revenue"`
	TotalExpenses       decimal.Decimal  `json:"total_expenses"`
	NetProfit           decimal.Decimal  `json:"net_profit"`
	TotalBookings       int              `json:"total_bookings"`
	TotalNights         int              `json:"total_nights"`
	AverageNightlyRate  decimal.Decimal  `json:"average_nightly_rate"`
	AverageBookingValue decimal.Decimal  `json:"average_booking_value"`
	OccupancyRate       *decimal.Decimal `json:"occupancy_rate,omitempty"` // percent, only for closed ranges
}

type PropertyPerformanceReport struct {
	Property         *Property          `json:"property"`
	Period           DateRange          `json:"report_period"`
	Performance      PropertyPerformance `json:"performance"`
	MonthlyBreakdown []MonthPerformance `json:"monthly_breakdown,omitempty"`
}

type TypeTotal struct {
	Type  PaymentType     `json:"type"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type SystemSummaryReport struct {
	Period           DateRange       `json:"report_period"`
	TotalUsers       int             `json:"total_users"`
	TotalProperties  int             `json:"total_properties"`
	TotalBookings    int             `json:"total_bookings"`
	TotalPayments    int             `json:"total_payments"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	NetRevenue       decimal.Decimal `json:"net_revenue"`
	PaymentsByType   []TypeTotal     `json:"payments_by_type"`
}

// BookingStats summarises bookings visible to a scope.
type BookingStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Active    int `json:"active"` // confirmed + checked_in
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`

	Unpaid        int `json:"unpaid"`
	PartiallyPaid int `json:"partially_paid"`
	Paid          int `json:"paid"`

	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	CollectedRevenue decimal.Decimal `json:"collected_revenue"`
	PendingRevenue   decimal.Decimal `json:"pending_revenue"`
}

// PaymentStats aggregates completed payments by type for a scope.
type PaymentStats struct {
	TotalPayments   int             `json:"total_payments"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	BookingPayments decimal.Decimal `json:"booking_payments"`
	OwnerDeposits   decimal.Decimal `json:"owner_deposits"`
	ExpensePayments decimal.Decimal `json:"expense_payments"`
	Commissions     decimal.Decimal `json:"commissions"`
	Refunds         decimal.Decimal `json:"refunds"`
	Other           decimal.Decimal `json:"other"`
	RenovationFunds decimal.Decimal `json:"renovation_funds"`
}
