package repository

import (
	"context"

	"github.com/sportactiv/sportactiv/internal/domain"
)

// ActivityFilter holds filters for listing activities
type ActivityFilter struct {
	CategoryID  string
	Status      string
	OrganizerID string
	Search      string
	Page        int
	Limit       int
}

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	// Create creates a new activity
	Create(ctx context.Context, activity *domain.Activity) error
	// GetByID retrieves an activity by ID
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	// List retrieves activities with pagination and filters, sorted by date ascending
	List(ctx context.Context, filter ActivityFilter) ([]*domain.Activity, int, error)
	// Update updates an activity
	Update(ctx context.Context, activity *domain.Activity) error
	// UpdateStatus updates only an activity's status
	UpdateStatus(ctx context.Context, id, status string) error
	// Delete soft-deletes an activity and removes its registrations and comments
	Delete(ctx context.Context, id string) error
}
