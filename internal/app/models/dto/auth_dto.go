package dto

// LoginRequest represents editor login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"editor@notehive.org"`
	Password string `json:"password" validate:"required" example:"secret"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn" example:"900"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty" example:"604800"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AdminProfileResponse represents the signed-in editor
type AdminProfileResponse struct {
	ID          int64  `json:"id" example:"1"`
	Email       string `json:"email" example:"editor@notehive.org"`
	DisplayName string `json:"displayName" example:"Content Editor"`
	LastLoginAt string `json:"lastLoginAt,omitempty" example:"2025-04-20T18:00:00Z"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse        `json:"token"`
	Admin AdminProfileResponse `json:"admin"`
}
