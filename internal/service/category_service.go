package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/repository"
)

var ErrCategoryAlreadyExists = errors.New("category with this slug already exists")

// CategoryService defines the interface for category management operations
type CategoryService interface {
	// Create creates a new category
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error)
	// List retrieves all categories ordered by sort order
	List(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error)
	// Update updates a category
	Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	// Delete deletes a category
	Delete(ctx context.Context, id string) error
}

// categoryService implements CategoryService
type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if valid, errMsg := req.ValidateSlug(); !valid {
		return nil, errors.New(errMsg)
	}

	exists, err := s.categoryRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}

	now := time.Now()
	category := &domain.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IconURL:     req.IconURL,
		SortOrder:   req.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return toCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *categoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return toCategoryResponse(category), nil
}

// List retrieves all categories ordered by sort order
func (s *categoryService) List(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, *toCategoryResponse(category))
	}
	return responses, nil
}

// Update updates a category
func (s *categoryService) Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IconURL != nil {
		category.IconURL = *req.IconURL
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return toCategoryResponse(category), nil
}

// Delete deletes a category
func (s *categoryService) Delete(ctx context.Context, id string) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(ctx, id)
}

// toCategoryResponse converts domain.Category to dto.CategoryResponse
func toCategoryResponse(category *domain.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		IconURL:     category.IconURL,
		SortOrder:   category.SortOrder,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}
