package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/identity"
)

// RegisterInput contains input for farmer registration
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	Phone       string
	DisplayName string
	Region      string
}

// LoginInput contains input for login
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// RefreshTokenInput contains input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput contains input for logout
type LogoutInput struct {
	UserID    uuid.UUID
	AccessJTI string
	AccessTTL time.Duration
}

// ChangePasswordInput contains input for a password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateProfileInput contains input for profile updates
type UpdateProfileInput struct {
	DisplayName       *string
	Email             *string
	Phone             *string
	AvatarURL         *string
	Region            *string
	PreferredCurrency *string
}

// UserInfo is the account shape returned to clients
type UserInfo struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"display_name"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	Region            string    `json:"region,omitempty"`
	PreferredCurrency string    `json:"preferred_currency"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"created_at"`
}

// TokenResult carries a freshly issued token pair
type TokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResult is returned after login or registration
type LoginResult struct {
	TokenResult
	User UserInfo `json:"user"`
}

// ToUserInfo maps a user aggregate to its client shape
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:                user.ID,
		Username:          user.Username,
		DisplayName:       user.GetDisplayNameOrUsername(),
		Email:             user.Email,
		Phone:             user.Phone,
		AvatarURL:         user.AvatarURL,
		Region:            user.Region,
		PreferredCurrency: user.PreferredCurrency,
		Role:              string(user.Role),
		CreatedAt:         user.CreatedAt,
	}
}
