package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notely/internal/service"
)

// AuthHandler mantiene dependencias para endpoints de autenticacion.
type AuthHandler struct {
	logger    *zap.Logger
	authServ  *service.AuthService
	tokenServ *service.TokenService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, tokenServ *service.TokenService) *AuthHandler {
	return &AuthHandler{
		logger:    logger,
		authServ:  authServ,
		tokenServ: tokenServ,
	}
}

// GenerateOTP maneja POST /auth/generate-otp.
func (h *AuthHandler) GenerateOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate otp request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	isNewUser, err := h.authServ.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		case errors.Is(err, service.ErrEmailSendFailure):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email delivery unavailable"})
			return
		default:
			h.logger.Error("generate otp failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send otp"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "otp_sent", "is_new_user": isNewUser})
}

// VerifyOTP maneja POST /auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"otp" binding:"required"`
		Name  string `json:"name"`
		DOB   string `json:"dob"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid verify otp request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and otp are required"})
		return
	}

	var profile service.ProfileInput
	profile.Name = req.Name
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date of birth"})
			return
		}
		profile.DateOfBirth = dob
	}

	user, err := h.authServ.VerifyCode(c.Request.Context(), req.Email, req.Code, profile)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and date of birth are required for new users"})
			return
		// Las tres causas de rechazo colapsan en un mensaje generico para no
		// permitir enumerar cuentas por texto de error.
		case errors.Is(err, service.ErrChallengeNotFound),
			errors.Is(err, service.ErrChallengeExpired),
			errors.Is(err, service.ErrCodeInvalid),
			errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired code"})
			return
		default:
			h.logger.Error("verify otp failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify otp"})
			return
		}
	}

	token, err := h.tokenServ.Issue(user)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
