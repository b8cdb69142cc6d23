package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/repositories"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/auth"
)

// AuthService handles editor authentication. There is no self-registration;
// admin accounts are provisioned by the seeder or by another admin with
// database access.
type AuthService struct {
	adminRepo  *repositories.AdminRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	adminRepo *repositories.AdminRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates an editor by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			// Same answer for unknown email and wrong password
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up admin account: %w", err)
	}

	if !auth.CheckPassword(admin.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Best effort; a failed stamp must not block the login
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.logger.Warn().Err(err).Int64("adminId", admin.ID).Msg("Could not record last login time")
	} else {
		now := time.Now()
		admin.LastLoginAt = &now
	}

	return s.generateAuthResponse(ctx, admin)
}

// RefreshToken exchanges a valid refresh token for a new token pair. The used
// token is revoked, so each refresh token works exactly once.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	adminID, err := s.tokenRepo.GetTokenAdmin(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("error loading admin for token: %w", err)
	}
	if !admin.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateAuthResponse(ctx, admin)
}

// Logout revokes every refresh token of the admin. Outstanding access tokens
// stay valid until they expire, which is minutes.
func (s *AuthService) Logout(ctx context.Context, adminID int64) error {
	return s.tokenRepo.RevokeAllAdminTokens(ctx, adminID)
}

// GetProfile returns the signed-in editor's account details
func (s *AuthService) GetProfile(ctx context.Context, adminID int64) (*dto.AdminProfileResponse, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	profile := adminProfile(admin)
	return &profile, nil
}

// generateAuthResponse mints a token pair, stores the refresh token and
// bundles the editor profile into the response.
func (s *AuthService) generateAuthResponse(ctx context.Context, admin *models.AdminUser) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(admin)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, admin.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		Admin: adminProfile(admin),
	}, nil
}

// adminProfile converts an admin account to its response DTO
func adminProfile(admin *models.AdminUser) dto.AdminProfileResponse {
	profile := dto.AdminProfileResponse{
		ID:          admin.ID,
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
	}
	if admin.LastLoginAt != nil {
		profile.LastLoginAt = admin.LastLoginAt.UTC().Format(time.RFC3339)
	}
	return profile
}
