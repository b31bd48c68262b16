package repository

import (
	"context"

	"github.com/sportactiv/sportactiv/internal/domain"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *domain.Category) error
	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	// GetBySlug retrieves a category by slug
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// List retrieves all categories ordered by sort order
	List(ctx context.Context, activeOnly bool) ([]*domain.Category, error)
	// Update updates a category
	Update(ctx context.Context, category *domain.Category) error
	// Delete deletes a category
	Delete(ctx context.Context, id string) error
	// ExistsBySlug checks if a category exists with the given slug
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
