package repository

import (
	"context"

	"github.com/sportactiv/sportactiv/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *domain.Comment) error
	// GetByID retrieves a comment by ID
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByActivity retrieves comments for an activity, newest first
	ListByActivity(ctx context.Context, activityID string, page, limit int) ([]*domain.Comment, int, error)
	// List retrieves comments across all activities, newest first
	List(ctx context.Context, page, limit int) ([]*domain.Comment, int, error)
	// Update updates a comment
	Update(ctx context.Context, comment *domain.Comment) error
	// Delete deletes a comment
	Delete(ctx context.Context, id string) error
}
