package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"suraksha/internal/models"
	"suraksha/internal/repositories/interfaces"
	"suraksha/internal/utils"
	"suraksha/pkg/logger"
)

// EmailService delivers transactional mail. Implemented by pkg/mailer.
type EmailService interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// AuthService owns registration, login and the email OTP flow.
type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (*AuthResponse, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  *models.UserInfo `json:"user"`
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	OTPLength int
	OTPExpiry time.Duration
}

type authService struct {
	userRepo     interfaces.UserRepository
	emailService EmailService
	config       *AuthConfig
	logger       *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	emailService EmailService,
	config *AuthConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		emailService: emailService,
		config:       config,
		logger:       logger,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	request.Email = utils.NormalizeEmail(request.Email)

	existing, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrConflict, utils.ErrUserExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique index reports it as a duplicate insert.
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, utils.ErrUserExists)
		}
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	s.logger.WithUserID(user.ID).Info("User registered")

	return s.respondWithToken(user)
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(request.Email))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		s.logger.WithField("email", request.Email).Warn("Login attempt with invalid credentials")
		return nil, ErrInvalidCredentials
	}

	return s.respondWithToken(user)
}

// RequestOTP stores a fresh passcode on the user document and emails
// it. The previous code, if any, is overwritten.
func (s *authService) RequestOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	otp := utils.GenerateRandomNumericString(s.config.OTPLength)
	expires := time.Now().Add(s.config.OTPExpiry)

	err = s.userRepo.Update(ctx, user.ID, map[string]interface{}{
		"otp":         otp,
		"otp_expires": expires,
	})
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p>Your OTP for Suraksha is: <strong>%s</strong>. It will expire in %d minutes.</p>",
		otp, int(s.config.OTPExpiry.Minutes()),
	)
	if err := s.emailService.SendEmail(ctx, user.Email, "Your Suraksha Verification Code", body); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Error("Failed to send OTP email")
		return err
	}

	s.logger.WithUserID(user.ID).Info("OTP issued")

	return nil
}

// VerifyOTP consumes the passcode on success and returns a session
// token; mismatch and expiry are indistinguishable to the caller.
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}

	if user.OTP == "" || otp == "" || user.OTP != otp {
		return nil, ErrInvalidOTP
	}
	if user.OTPExpires == nil || time.Now().After(*user.OTPExpires) {
		return nil, ErrInvalidOTP
	}

	err = s.userRepo.Update(ctx, user.ID, map[string]interface{}{
		"otp":         "",
		"otp_expires": nil,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).Info("OTP verified")

	return s.respondWithToken(user)
}

func (s *authService) respondWithToken(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user, s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User:  user.Info(),
	}, nil
}
