package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/utils"
)

type reportService struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
	bookingRepo  repository.BookingRepository
	paymentRepo  repository.PaymentRepository
}

func NewReportService(userRepo repository.UserRepository, propertyRepo repository.PropertyRepository, bookingRepo repository.BookingRepository, paymentRepo repository.PaymentRepository) ReportService {
	return &reportService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
	}
}

// ownerPayments fetches every payment that can involve the owner: rows on
// their properties plus rows naming them as payer or receiver.
func (s *reportService) ownerPayments(ctx context.Context, ownerID uuid.UUID, properties []domain.Property, period domain.DateRange) ([]domain.Payment, error) {
	seen := make(map[uuid.UUID]bool)
	var payments []domain.Payment

	appendNew := func(rows []domain.Payment) {
		for _, p := range rows {
			if !seen[p.ID] {
				seen[p.ID] = true
				payments = append(payments, p)
			}
		}
	}

	if len(properties) > 0 {
		ids := make([]uuid.UUID, len(properties))
		for i, p := range properties {
			ids[i] = p.ID
		}
		rows, err := s.paymentRepo.ListAll(ctx, repository.PaymentFilter{PropertyIDs: ids, From: period.Start, To: period.End})
		if err != nil {
			return nil, err
		}
		appendNew(rows)
	}

	id := ownerID
	rows, err := s.paymentRepo.ListAll(ctx, repository.PaymentFilter{InvolvesID: &id, From: period.Start, To: period.End})
	if err != nil {
		return nil, err
	}
	appendNew(rows)

	return payments, nil
}

func (s *reportService) GetOwnerBalance(ctx context.Context, scope domain.Scope, ownerID uuid.UUID) (*domain.OwnerBalance, error) {
	if !scope.CanActFor(ownerID) {
		return nil, domain.ErrAccessDenied
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, notFoundIfNoRows(err)
	}

	properties, err := s.propertyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.ownerPayments(ctx, ownerID, properties, domain.DateRange{})
	if err != nil {
		return nil, err
	}

	balance := utils.CalculateOwnerBalance(ownerID, payments)
	return &balance, nil
}

func (s *reportService) GetOwnerFinancialReport(ctx context.Context, scope domain.Scope, ownerID uuid.UUID, period domain.DateRange) (*domain.OwnerFinancialReport, error) {
	if !scope.CanActFor(ownerID) {
		return nil, domain.ErrAccessDenied
	}
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}

	properties, err := s.propertyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.ownerPayments(ctx, ownerID, properties, period)
	if err != nil {
		return nil, err
	}

	return utils.BuildOwnerFinancialReport(owner, properties, payments, period), nil
}

func (s *reportService) GetPropertyPerformanceReport(ctx context.Context, scope domain.Scope, propertyID uuid.UUID, period domain.DateRange) (*domain.PropertyPerformanceReport, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	if !scope.IsAdmin() && !(scope.IsOwner() && property.OwnerID == scope.UserID) {
		return nil, domain.ErrAccessDenied
	}

	id := propertyID
	payments, err := s.paymentRepo.ListAll(ctx, repository.PaymentFilter{PropertyID: &id, From: period.Start, To: period.End})
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListAll(ctx, repository.BookingFilter{PropertyID: &id, CheckInFrom: period.Start, CheckInTo: period.End})
	if err != nil {
		return nil, err
	}

	return utils.BuildPropertyPerformanceReport(property, payments, bookings, period), nil
}

func (s *reportService) GetSystemSummaryReport(ctx context.Context, scope domain.Scope, period domain.DateRange) (*domain.SystemSummaryReport, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalProperties, err := s.propertyRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.bookingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListAll(ctx, repository.PaymentFilter{From: period.Start, To: period.End})
	if err != nil {
		return nil, err
	}

	report := &domain.SystemSummaryReport{
		Period:           period,
		TotalUsers:       totalUsers,
		TotalProperties:  totalProperties,
		TotalBookings:    totalBookings,
		TotalRevenue:     decimal.Zero,
		TotalCommissions: decimal.Zero,
		PaymentsByType:   utils.SummarizePaymentsByType(payments),
	}

	for _, p := range payments {
		if p.Status != domain.PaymentStateCompleted {
			continue
		}
		report.TotalPayments++
		switch p.Type {
		case domain.PaymentTypeBooking:
			report.TotalRevenue = report.TotalRevenue.Add(p.Amount)
		case domain.PaymentTypeCommission:
			report.TotalCommissions = report.TotalCommissions.Add(p.Amount)
		}
	}
	report.NetRevenue = report.TotalRevenue.Sub(report.TotalCommissions)
	return report, nil
}
