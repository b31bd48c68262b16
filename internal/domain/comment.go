package domain

import "time"

// Comment represents a user comment on an activity
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ActivityID string    `json:"activity_id"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating,omitempty"` // 1-5, 0 when not rated
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CanBeManagedBy checks whether the given user may modify this comment.
// Authors manage their own comments; admins manage all.
func (c *Comment) CanBeManagedBy(userID, role string) bool {
	return role == RoleAdmin || c.UserID == userID
}
