package dto

// UserResponse represents user data in responses
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UpdateUserRequest represents an admin request to update a user
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=2,max=50"`
	Role     *string `json:"role" binding:"omitempty,oneof=user organizer admin"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateUserRequest) Validate() (bool, string) {
	if r.Username == nil && r.Role == nil && r.Phone == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// ListUsersQuery represents query parameters for listing users
type ListUsersQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Role   string `form:"role" binding:"omitempty,oneof=user organizer admin"`
	Search string `form:"search" binding:"omitempty,max=255"`
}

// SetDefaults sets default values for query parameters
func (q *ListUsersQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
}
