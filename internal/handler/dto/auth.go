package dto

import (
	"time"

	"github.com/billmate/billmate/internal/model"
)

// RegisterRequest represents the request body for password registration.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=120"`
}

// Validate checks field-level rules.
func (r *RegisterRequest) Validate() error { return checkStruct(r) }

// LoginRequest represents the request body for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks field-level rules.
func (r *LoginRequest) Validate() error { return checkStruct(r) }

// UpdateProfileRequest represents the request body for profile mutation.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=120"`
	PhotoURL    string `json:"photo_url,omitempty" validate:"omitempty,url,max=2048"`
}

// Validate checks field-level rules.
func (r *UpdateProfileRequest) Validate() error { return checkStruct(r) }

// UserResponse represents an account in API responses.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionResponse is a started session: the bearer token plus the profile
// snapshot the client renders from.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
	ReturnTo  string       `json:"return_to,omitempty"`
}

// AuthURLResponse carries the provider consent URL for federated sign-in.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// ThemeRequest represents the request body for setting the UI theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// Validate checks field-level rules.
func (r *ThemeRequest) Validate() error { return checkStruct(r) }

// ThemeResponse represents the stored UI theme.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Provider:    string(user.Provider),
		CreatedAt:   user.CreatedAt,
	}
}

// ToSessionResponse converts a started session to its DTO.
func ToSessionResponse(token string, expiresIn time.Duration, user *model.User) *SessionResponse {
	return &SessionResponse{
		Token:     token,
		ExpiresIn: int64(expiresIn.Seconds()),
		User:      ToUserResponse(user),
	}
}
