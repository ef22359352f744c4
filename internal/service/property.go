package service

import (
	"context"

	"github.com/google/uuid"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
)

type propertyService struct {
	propertyRepo repository.PropertyRepository
}

func NewPropertyService(propertyRepo repository.PropertyRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo}
}

// canSeeProperty applies row-level visibility: admins see everything, owners
// their own units, tenants only the unit they rent.
func canSeeProperty(scope domain.Scope, p *domain.Property) bool {
	switch {
	case scope.IsAdmin():
		return true
	case scope.IsOwner():
		return p.OwnerID == scope.UserID
	case scope.IsTenant():
		return p.TenantID != nil && *p.TenantID == scope.UserID
	}
	return false
}

func (s *propertyService) CreateProperty(ctx context.Context, scope domain.Scope, input PropertyInput) (*domain.Property, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}

	property := &domain.Property{
		Name:        input.Name,
		Address:     input.Address,
		Type:        input.Type,
		OwnerID:     input.OwnerID,
		Description: input.Description,
		IsActive:    true,

		BasePrice:   input.BasePrice,
		CleaningFee: input.CleaningFee,
		MaxGuests:   input.MaxGuests,
		MinStayDays: input.MinStayDays,
		MaxStayDays: input.MaxStayDays,

		MonthlyRent: input.MonthlyRent,
		TenantID:    input.TenantID,
	}
	if input.IsRented != nil {
		property.IsRented = *input.IsRented
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) GetProperty(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	if !canSeeProperty(scope, property) {
		return nil, domain.ErrAccessDenied
	}
	return property, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, scope domain.Scope, id uuid.UUID, input PropertyInput) (*domain.Property, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}

	if input.Name != "" {
		property.Name = input.Name
	}
	if input.Address != "" {
		property.Address = input.Address
	}
	if input.Type != "" {
		property.Type = input.Type
	}
	if input.OwnerID != uuid.Nil {
		property.OwnerID = input.OwnerID
	}
	if input.Description != "" {
		property.Description = input.Description
	}
	if input.BasePrice != nil {
		property.BasePrice = input.BasePrice
	}
	if input.CleaningFee != nil {
		property.CleaningFee = input.CleaningFee
	}
	if input.MaxGuests != nil {
		property.MaxGuests = input.MaxGuests
	}
	if input.MinStayDays != nil {
		property.MinStayDays = input.MinStayDays
	}
	if input.MaxStayDays != nil {
		property.MaxStayDays = input.MaxStayDays
	}
	if input.MonthlyRent != nil {
		property.MonthlyRent = input.MonthlyRent
	}
	if input.TenantID != nil {
		property.TenantID = input.TenantID
	}
	if input.IsRented != nil {
		property.IsRented = *input.IsRented
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, scope domain.Scope, id uuid.UUID) error {
	if !scope.IsAdmin() {
		return domain.ErrAccessDenied
	}
	if _, err := s.propertyRepo.GetByID(ctx, id); err != nil {
		return notFoundIfNoRows(err)
	}
	return s.propertyRepo.Delete(ctx, id)
}

func (s *propertyService) ListProperties(ctx context.Context, scope domain.Scope, filter repository.PropertyFilter, page, pageSize int) ([]domain.Property, int, error) {
	switch {
	case scope.IsOwner():
		id := scope.UserID
		filter.OwnerID = &id
	case scope.IsTenant():
		id := scope.UserID
		filter.TenantID = &id
	}
	return s.propertyRepo.List(ctx, filter, page, pageSize)
}
