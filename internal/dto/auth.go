package dto

import (
	"regexp"
	"strings"
)

// RegisterRequest represents request to create a new account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validate validates fields the binding tags cannot express
func (r *RegisterRequest) Validate() (bool, string) {
	if !usernameRegex.MatchString(r.Username) {
		return false, "Username must contain only letters, numbers, underscores, and hyphens"
	}
	if strings.TrimSpace(r.Password) != r.Password {
		return false, "Password must not start or end with whitespace"
	}
	return true, ""
}

// LoginRequest represents request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest represents request to update the caller's own profile
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=2,max=50"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateProfileRequest) Validate() (bool, string) {
	if r.Username == nil && r.Phone == nil && r.AvatarURL == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Username != nil && !usernameRegex.MatchString(*r.Username) {
		return false, "Username must contain only letters, numbers, underscores, and hyphens"
	}
	return true, ""
}

// ChangePasswordRequest represents request to change the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}
