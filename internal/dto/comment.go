package dto

// CreateCommentRequest represents request to comment on an activity
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// UpdateCommentRequest represents request to edit a comment
type UpdateCommentRequest struct {
	Content *string `json:"content" binding:"omitempty,min=1,max=2000"`
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateCommentRequest) Validate() (bool, string) {
	if r.Content == nil && r.Rating == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// CommentResponse represents comment data in responses
type CommentResponse struct {
	ID         string        `json:"id"`
	ActivityID string        `json:"activity_id"`
	Content    string        `json:"content"`
	Rating     int           `json:"rating,omitempty"`
	User       *UserResponse `json:"user,omitempty"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
}

// ListCommentsQuery represents query parameters for listing comments
type ListCommentsQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListCommentsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
}
