package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/starkbrilliance/smartharvest/internal/errors"
	"github.com/starkbrilliance/smartharvest/internal/middleware"
	"github.com/starkbrilliance/smartharvest/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login checks the shared password and issues a bearer session token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			apierrors.RespondWithError(c, http.StatusUnauthorized,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidPassword, "Invalid password"))
			return
		}
		apierrors.InternalError(c, "Authentication failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_token": session.SessionToken,
		"expires_at":    session.ExpiresAt,
	})
}

// Logout invalidates the current session. The row is kept for audit.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)

	if err := h.authService.Logout(token); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			apierrors.Unauthorized(c, "Invalid or expired session")
			return
		}
		apierrors.InternalError(c, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
