package handlers

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/services"
	"suraksha/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user account and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var request services.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully", response)
}

// Login authenticates with email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}

type otpRequest struct {
	Email string `json:"email"`
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// RequestOTP emails a one-time passcode to an existing user.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var request otpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if request.Email == "" {
		utils.ValidationErrorResponse(c, "email is required")
		return
	}

	if err := h.authService.RequestOTP(c.Request.Context(), request.Email); err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "OTP sent successfully", nil)
}

// VerifyOTP exchanges a valid passcode for a session token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var request otpVerifyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if request.Email == "" || request.OTP == "" {
		utils.ValidationErrorResponse(c, "email and otp are required")
		return
	}

	response, err := h.authService.VerifyOTP(c.Request.Context(), request.Email, request.OTP)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "OTP verified successfully", response)
}
