package handler

// SignupRequest represents a farmer registration request
// @Description Request body for farmer registration
type SignupRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50" example:"wanjiku"`
	Password    string `json:"password" binding:"required,min=8,max=128" example:"s3cret-pass"`
	Email       string `json:"email" binding:"omitempty,email,max=200" example:"wanjiku@example.com"`
	Phone       string `json:"phone" binding:"omitempty,max=50" example:"+254700000000"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100" example:"Wanjiku M."`
	Region      string `json:"region" binding:"omitempty,max=100" example:"Nakuru"`
}

// LoginRequest represents a login request
// @Description Request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"wanjiku"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// RefreshTokenRequest represents a token refresh request
// @Description Request body for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
// @Description Request body for changing the account password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UpdateProfileRequest represents a profile update request
// @Description Request body for updating the account profile
type UpdateProfileRequest struct {
	DisplayName       *string `json:"display_name" binding:"omitempty,max=100"`
	Email             *string `json:"email" binding:"omitempty,email,max=200"`
	Phone             *string `json:"phone" binding:"omitempty,max=50"`
	AvatarURL         *string `json:"avatar_url" binding:"omitempty,max=500"`
	Region            *string `json:"region" binding:"omitempty,max=100"`
	PreferredCurrency *string `json:"preferred_currency" binding:"omitempty,len=3"`
}
