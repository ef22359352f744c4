package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/logger"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	limiter  *security.LoginLimiter
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, limiter *security.LoginLimiter) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		limiter:  limiter,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleOwner
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if s.limiter.Blocked(email) {
		return nil, "", domain.ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.limiter.Fail(email)
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", domain.ErrAccessDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if s.limiter.Fail(email) {
			logger.Warn("login attempts exhausted", "email", email)
		}
		return nil, "", domain.ErrInvalidCredentials
	}

	s.limiter.Succeed(email)

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
