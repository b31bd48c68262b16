package dto

import "regexp"

// CreateCategoryRequest represents request to create a new category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	IconURL     string `json:"icon_url" binding:"omitempty,url"`
	SortOrder   int    `json:"sort_order" binding:"omitempty,min=0"`
}

var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateSlug validates slug format (lowercase alphanumeric and hyphens only)
func (r *CreateCategoryRequest) ValidateSlug() (bool, string) {
	if !slugRegex.MatchString(r.Slug) {
		return false, "Slug must contain only lowercase letters, numbers, and hyphens"
	}
	return true, ""
}

// UpdateCategoryRequest represents request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IconURL     *string `json:"icon_url" binding:"omitempty,url"`
	SortOrder   *int    `json:"sort_order" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active" binding:"omitempty"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateCategoryRequest) Validate() (bool, string) {
	if r.Name == nil && r.Description == nil && r.IconURL == nil && r.SortOrder == nil && r.IsActive == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// CategoryResponse represents category data in responses
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
