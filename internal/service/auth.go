package service

import (
	"context"
	"errors"
	"fmt"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/otp"
	"gearmarket-backend/internal/repository"
	"gearmarket-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	otpStore *otp.Store
	emailSvc EmailService
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, otpStore *otp.Store, emailSvc EmailService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		otpStore: otpStore,
		emailSvc: emailSvc,
	}
}

func (s *authService) Signup(ctx context.Context, companyID int32, name, email, password string, role domain.UserRole) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required: %w", domain.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = domain.UserRoleCustomer
	}
	user := &domain.User{
		CompanyID:    companyID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) RequestEmailOTP(ctx context.Context, email string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return err
	}

	code, err := s.otpStore.Issue(ctx, email)
	if err != nil {
		return err
	}
	return s.emailSvc.SendVerificationCode(ctx, email, code)
}

func (s *authService) VerifyEmailOTP(ctx context.Context, email, code string) error {
	if err := s.otpStore.Verify(ctx, email, code); err != nil {
		return err
	}
	return s.userRepo.MarkEmailVerified(ctx, email)
}
