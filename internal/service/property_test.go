package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/service"
)

func TestPropertyService_GetProperty(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	tenantID := uuid.New()

	property := testProperty(ownerID)
	property.TenantID = &tenantID

	newSvc := func() (*MockPropertyRepo, service.PropertyService) {
		repo := new(MockPropertyRepo)
		return repo, service.NewPropertyService(repo)
	}

	t.Run("OwnerSeesOwnUnit", func(t *testing.T) {
		repo, svc := newSvc()
		repo.On("GetByID", mock.Anything, property.ID).Return(property, nil)

		got, err := svc.GetProperty(ctx, domain.OwnerScope(ownerID), property.ID)
		require.NoError(t, err)
		assert.Equal(t, property.ID, got.ID)
	})

	t.Run("LinkedTenantSeesUnit", func(t *testing.T) {
		repo, svc := newSvc()
		repo.On("GetByID", mock.Anything, property.ID).Return(property, nil)

		_, err := svc.GetProperty(ctx, domain.TenantScope(tenantID), property.ID)
		require.NoError(t, err)
	})

	t.Run("ForeignOwnerDenied", func(t *testing.T) {
		repo, svc := newSvc()
		repo.On("GetByID", mock.Anything, property.ID).Return(property, nil)

		_, err := svc.GetProperty(ctx, domain.OwnerScope(uuid.New()), property.ID)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("MissingRowBecomesNotFound", func(t *testing.T) {
		repo, svc := newSvc()
		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

		_, err := svc.GetProperty(ctx, domain.AdminScope(uuid.New()), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPropertyService_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAdminOnly", func(t *testing.T) {
		svc := service.NewPropertyService(new(MockPropertyRepo))

		_, err := svc.CreateProperty(ctx, domain.OwnerScope(uuid.New()), service.PropertyInput{
			Name: "Garden Flat", Type: domain.PropertyTypeShortTerm, OwnerID: uuid.New(),
		})
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("CreateSetsActive", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		svc := service.NewPropertyService(repo)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		property, err := svc.CreateProperty(ctx, domain.AdminScope(uuid.New()), service.PropertyInput{
			Name: "Garden Flat", Type: domain.PropertyTypeShortTerm, OwnerID: uuid.New(),
			BasePrice: decPtr("210"),
		})
		require.NoError(t, err)
		assert.True(t, property.IsActive)
		require.NotNil(t, property.BasePrice)
	})

	t.Run("DeleteAdminOnly", func(t *testing.T) {
		svc := service.NewPropertyService(new(MockPropertyRepo))

		err := svc.DeleteProperty(ctx, domain.TenantScope(uuid.New()), uuid.New())
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestPropertyService_ListProperties(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerFilterApplied", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		svc := service.NewPropertyService(repo)

		ownerID := uuid.New()
		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.PropertyFilter) bool {
			return f.OwnerID != nil && *f.OwnerID == ownerID
		}), 1, 20).Return([]domain.Property{}, 0, nil)

		_, _, err := svc.ListProperties(ctx, domain.OwnerScope(ownerID), repository.PropertyFilter{}, 1, 20)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("AdminFilterUntouched", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		svc := service.NewPropertyService(repo)

		repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.PropertyFilter) bool {
			return f.OwnerID == nil && f.TenantID == nil
		}), 1, 20).Return([]domain.Property{}, 0, nil)

		_, _, err := svc.ListProperties(ctx, domain.AdminScope(uuid.New()), repository.PropertyFilter{}, 1, 20)
		require.NoError(t, err)
	})
}
