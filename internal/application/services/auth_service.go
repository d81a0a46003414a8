// Package services provides application-level orchestration services
package services

import (
	"slices"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/security"
	"github.com/primordial-software/content-inventory-go/pkg/config"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication workflows and JWT operations
type AuthService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker

	adminPassword  string
	editorPassword string
	jwtSecret      string
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthService {
	return &AuthService{
		logger:         logger,
		perfTracker:    perfTracker,
		adminPassword:  config.AdminPassword,
		editorPassword: config.EditorPassword,
		jwtSecret:      config.JWTSecret,
	}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthenticateAdmin validates admin or editor credentials and generates JWT
func (a *AuthService) AuthenticateAdmin(password string) *AuthResult {
	var role string

	if a.adminPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(a.adminPassword), []byte(password)); err == nil {
			role = "admin"
		}
	}

	if role == "" && a.editorPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(a.editorPassword), []byte(password)); err == nil {
			role = "editor"
		}
	}

	// Fallback for plaintext passwords during transition/testing
	if role == "" {
		if a.adminPassword != "" && password == a.adminPassword {
			role = "admin"
		} else if a.editorPassword != "" && password == a.editorPassword {
			role = "editor"
		}
	}

	if role == "" {
		a.logger.Auth().Warn("Failed admin authentication attempt")
		return &AuthResult{
			Success: false,
			Error:   "Invalid credentials",
		}
	}

	claims := jwt.MapClaims{
		"role": role,
		"type": "admin_auth",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err := security.SignJWT(claims, a.jwtSecret)
	if err != nil {
		a.logger.Auth().Error("Token generation failed", "error", err.Error())
		return &AuthResult{Success: false, Error: "Token generation failed"}
	}

	a.logger.Auth().Info("Admin authentication succeeded", "role", role)
	return &AuthResult{Token: token, Role: role, Success: true}
}

// ValidateAdminToken checks if a token belongs to an admin user
func (a *AuthService) ValidateAdminToken(tokenString string) bool {
	return a.ValidateTokenWithRoles(tokenString, []string{"admin"})
}

// ValidateAdminOrEditorToken checks if a token belongs to an admin or editor user
func (a *AuthService) ValidateAdminOrEditorToken(tokenString string) bool {
	return a.ValidateTokenWithRoles(tokenString, []string{"admin", "editor"})
}

// ValidateTokenWithRoles validates a token and checks if the role is in the allowed list
func (a *AuthService) ValidateTokenWithRoles(tokenString string, allowedRoles []string) bool {
	if tokenString == "" {
		return false
	}

	claims, err := security.ValidateJWT(tokenString, a.jwtSecret)
	if err != nil {
		return false
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "admin_auth" {
		return false
	}

	tokenRole, ok := claims["role"].(string)
	if !ok {
		return false
	}

	return slices.Contains(allowedRoles, tokenRole)
}
