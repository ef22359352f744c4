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

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, scope domain.Scope, input PaymentInput) (*domain.Payment, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}
	status := input.Status
	if status == "" {
		status = domain.PaymentStateCompleted
	}

	createdBy := scope.UserID
	payment := &domain.Payment{
		Amount:      input.Amount,
		PaymentDate: paymentDate,
		Method:      input.Method,
		Type:        input.Type,
		Status:      status,

		BookingID:  input.BookingID,
		PropertyID: input.PropertyID,
		PayerID:    input.PayerID,
		ReceiverID: input.ReceiverID,

		Description:     input.Description,
		ReferenceNumber: input.ReferenceNumber,
		Category:        input.Category,

		IsForRenovation: input.IsForRenovation,
		IsCommission:    input.IsCommission,
		CommissionRate:  input.CommissionRate,
		CreatedBy:       &createdBy,
	}

	// A completed booking payment flows into the booking's paid total
	// atomically; everything else is a standalone ledger row.
	if payment.Type == domain.PaymentTypeBooking && payment.Status == domain.PaymentStateCompleted && payment.BookingID != nil {
		if _, err := s.bookingRepo.RecordPayment(ctx, *payment.BookingID, payment); err != nil {
			return nil, notFoundIfNoRows(err)
		}
		return payment, nil
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "payment created", "payment_id", payment.ID, "type", payment.Type, "amount", payment.Amount)
	return payment, nil
}

// canSeePayment mirrors the ledger visibility rules: admins see all rows,
// other roles only rows that name them or one of their properties.
func (s *paymentService) canSeePayment(ctx context.Context, scope domain.Scope, p *domain.Payment) (bool, error) {
	if scope.IsAdmin() {
		return true, nil
	}
	if p.PayerID != nil && *p.PayerID == scope.UserID {
		return true, nil
	}
	if p.ReceiverID != nil && *p.ReceiverID == scope.UserID {
		return true, nil
	}
	if scope.IsOwner() && p.PropertyID != nil {
		property, err := s.propertyRepo.GetByID(ctx, *p.PropertyID)
		if err != nil {
			return false, notFoundIfNoRows(err)
		}
		return property.OwnerID == scope.UserID, nil
	}
	return false, nil
}

func (s *paymentService) GetPayment(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	ok, err := s.canSeePayment(ctx, scope, payment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAccessDenied
	}
	return payment, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, scope domain.Scope, id uuid.UUID, input PaymentInput) (*domain.Payment, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}

	if !input.Amount.IsZero() {
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		payment.Amount = input.Amount
	}
	if !input.PaymentDate.IsZero() {
		payment.PaymentDate = input.PaymentDate
	}
	if input.Method != "" {
		payment.Method = input.Method
	}
	if input.Status != "" {
		payment.Status = input.Status
	}
	if input.Description != "" {
		payment.Description = input.Description
	}
	if input.ReferenceNumber != "" {
		payment.ReferenceNumber = input.ReferenceNumber
	}
	if input.Category != "" {
		payment.Category = input.Category
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, scope domain.Scope, id uuid.UUID) error {
	if !scope.IsAdmin() {
		return domain.ErrAccessDenied
	}
	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		return notFoundIfNoRows(err)
	}
	return s.paymentRepo.Delete(ctx, id)
}

// scopePaymentFilter narrows the filter to what the caller may see. Owners
// get rows touching their properties or naming them directly.
func (s *paymentService) scopePaymentFilter(ctx context.Context, scope domain.Scope, filter *repository.PaymentFilter) error {
	if scope.IsAdmin() {
		return nil
	}
	if scope.IsOwner() {
		properties, err := s.propertyRepo.ListByOwner(ctx, scope.UserID)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(properties))
		for i, p := range properties {
			ids[i] = p.ID
		}
		// Property rows and rows naming the owner directly combine with OR;
		// deposits and commissions carry no property id but must stay visible.
		filter.OwnerScope = &repository.OwnerPaymentScope{UserID: scope.UserID, PropertyIDs: ids}
		return nil
	}
	id := scope.UserID
	filter.InvolvesID = &id
	return nil
}

func (s *paymentService) ListPayments(ctx context.Context, scope domain.Scope, filter repository.PaymentFilter, page, pageSize int) ([]domain.Payment, int, error) {
	if err := s.scopePaymentFilter(ctx, scope, &filter); err != nil {
		return nil, 0, err
	}
	return s.paymentRepo.List(ctx, filter, page, pageSize)
}

func (s *paymentService) GetPaymentStats(ctx context.Context, scope domain.Scope, from, to *time.Time) (*domain.PaymentStats, error) {
	filter := repository.PaymentFilter{From: from, To: to}
	if err := s.scopePaymentFilter(ctx, scope, &filter); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats := utils.BuildPaymentStats(payments)
	return &stats, nil
}
