package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func notFoundIfNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (s *userService) GetUser(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.User, error) {
	if !scope.CanActFor(id) {
		return nil, domain.ErrAccessDenied
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, scope domain.Scope, filter repository.UserFilter, page, pageSize int) ([]domain.User, int, error) {
	if !scope.IsAdmin() {
		return nil, 0, domain.ErrAccessDenied
	}
	return s.userRepo.List(ctx, filter, page, pageSize)
}

func (s *userService) UpdateProfile(ctx context.Context, scope domain.Scope, id uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	if !scope.CanActFor(id) {
		return nil, domain.ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) SetActive(ctx context.Context, scope domain.Scope, id uuid.UUID, active bool) error {
	if !scope.IsAdmin() {
		return domain.ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err)
	}
	user.IsActive = active
	return s.userRepo.Update(ctx, user)
}
