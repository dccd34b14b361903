package auth

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Pseudo   string `json:"pseudo" validate:"required,min=3,max=30"`
}

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest for POST /auth/refresh and /auth/logout
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ResetRequestBody for POST /auth/password-reset/request
type ResetRequestBody struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// ResetConfirmBody for POST /auth/password-reset/confirm
type ResetConfirmBody struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// ResetRequestResponse is identical whether or not the email exists
type ResetRequestResponse struct {
	Status string `json:"status"`
	// DevToken is only populated in development mode
	DevToken string `json:"dev_token,omitempty"`
}

// AuthResponse returned after login/register
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens TokensResponse `json:"tokens"`
}

// UserResponse represents user in API response
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Pseudo    string    `json:"pseudo"`
	Role      string    `json:"role"`
	PhotoURL  *string   `json:"photo_url"`
	CreatedAt string    `json:"created_at"`
}

// TokensResponse represents tokens in API response
type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds until access token expires
}

// NewUserResponse creates UserResponse from user data
func NewUserResponse(id uuid.UUID, email, pseudo, role string, photoURL *string, createdAt time.Time) UserResponse {
	return UserResponse{
		ID:        id,
		Email:     email,
		Pseudo:    pseudo,
		Role:      role,
		PhotoURL:  photoURL,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
}
