// Package handlers provides HTTP handlers for the content inventory API
package handlers

import (
	"net/http"

	"github.com/primordial-software/content-inventory-go/internal/application/services"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the structure for login requests
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthHandlers contains all auth-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin handles admin/editor authentication
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("auth_login", "request")
	defer marker.Complete()

	result := h.authService.AuthenticateAdmin(req.Password)
	if !result.Success {
		marker.SetSuccess(false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": result.Error})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"role":  result.Role,
	})
}

// GetAuthStatus reports whether the caller's token is valid and its role
func (h *AuthHandlers) GetAuthStatus(c *gin.Context) {
	token := bearerToken(c)
	status := gin.H{"authenticated": false}

	if h.authService.ValidateAdminToken(token) {
		status["authenticated"] = true
		status["role"] = "admin"
	} else if h.authService.ValidateAdminOrEditorToken(token) {
		status["authenticated"] = true
		status["role"] = "editor"
	}

	c.JSON(http.StatusOK, status)
}

// AuthMiddleware requires an admin or editor token. Unauthorized calls are
// rejected before any content-store query runs.
func (h *AuthHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authService.ValidateAdminOrEditorToken(bearerToken(c)) {
			h.logger.Auth().Warn("Unauthorized access attempt", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnlyMiddleware requires an admin token.
func (h *AuthHandlers) AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authService.ValidateAdminToken(bearerToken(c)) {
			h.logger.Auth().Warn("Unauthorized admin access attempt", "path", c.Request.URL.Path)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken extracts the caller's token from the Authorization header or
// the admin auth cookie.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	if cookie, err := c.Cookie("admin_auth"); err == nil {
		return cookie
	}
	return ""
}
