package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"geoevents/internal/domain"

	"github.com/go-playground/validator/v10"
)

const minPasswordLen = 6

// emailRule is the same validator tag the HTTP layer applies to AuthRequest.
const emailRule = "required,email"

var validate = validator.New()

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService with the given repository, hasher and token issuer.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, timeout time.Duration) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		issuer:         issuer,
		contextTimeout: timeout,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *authService) Register(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = normalizeEmail(email)
	if err := validate.Var(email, emailRule); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        email,
		Username:     domain.UsernameFromEmail(email),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidPassword) {
			return nil, domain.ErrInvalidPassword
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return s.issue(user)
}

func (s *authService) issue(user *domain.User) (*domain.AuthResult, error) {
	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.AuthResult{Token: token, User: user}, nil
}
