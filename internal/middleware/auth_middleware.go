package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/repositories"
	"github.com/notehive/notehive-server/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextAdminID    = "adminID"
	ContextAdminEmail = "adminEmail"
)

// AuthMiddleware guards the admin endpoints. Every student-facing route is
// public; only editors authenticate.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	adminRepo  *repositories.AdminRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, adminRepo *repositories.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		adminRepo:  adminRepo,
	}
}

// RequireAdmin validates the bearer token and checks the admin account is
// still active, so a disabled editor loses access before the token expires.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(errorDetail))
			return
		}

		admin, err := m.adminRepo.GetByID(c.Request.Context(), claims.AdminID)
		if err != nil || !admin.IsActive {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled or no longer exists")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewAPIError(errorDetail))
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminEmail, claims.Email)

		c.Next()
	}
}

// AdminID returns the authenticated admin's ID from the request context
func AdminID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextAdminID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
