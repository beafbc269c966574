package utils

import "time"

// Application Constants
const (
	AppName    = "Suraksha"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTTokenTTL       = 5 * time.Hour
	PasswordMinLength = 6
	OTPLength         = 6
	OTPExpiry         = 10 * time.Minute

	// Chat
	ChatTypingDelay  = 450 * time.Millisecond
	MaxMessageLength = 1000
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user with this email already exists"
	ErrInvalidToken       = "invalid token"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
	ErrInvalidOrExpired   = "invalid or expired OTP"
	ErrInvalidStatus      = "invalid status value"
)

// Cache Keys
const (
	CacheKeyUserPrefix = "user:"
	CacheUserTTL       = 15 * time.Minute
)
