package dto

import "time"

// CreateActivityRequest represents request to create a new activity
type CreateActivityRequest struct {
	Title           string  `json:"title" binding:"required,min=2,max=255"`
	Description     string  `json:"description" binding:"required"`
	Location        string  `json:"location" binding:"required,max=255"`
	Date            string  `json:"date" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	Capacity        int     `json:"capacity" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"omitempty,min=0"`
	CategoryID      string  `json:"category_id" binding:"required,uuid"`
	ImageURL        string  `json:"image_url" binding:"omitempty,url"`
}

// Validate validates fields the binding tags cannot express
func (r *CreateActivityRequest) Validate() (bool, string) {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return false, "Date must be a valid RFC3339 timestamp"
	}
	if date.Before(time.Now()) {
		return false, "Date must be in the future"
	}
	if r.Price < 0 {
		return false, "Price must not be negative"
	}
	return true, ""
}

// ParsedDate returns the parsed activity date. Call Validate first.
func (r *CreateActivityRequest) ParsedDate() time.Time {
	date, _ := time.Parse(time.RFC3339, r.Date)
	return date
}

// UpdateActivityRequest represents request to update an activity
type UpdateActivityRequest struct {
	Title           *string  `json:"title" binding:"omitempty,min=2,max=255"`
	Description     *string  `json:"description" binding:"omitempty"`
	Location        *string  `json:"location" binding:"omitempty,max=255"`
	Date            *string  `json:"date" binding:"omitempty"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=1"`
	Capacity        *int     `json:"capacity" binding:"omitempty,min=1"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	CategoryID      *string  `json:"category_id" binding:"omitempty,uuid"`
	ImageURL        *string  `json:"image_url" binding:"omitempty,url"`
	Status          *string  `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateActivityRequest) Validate() (bool, string) {
	if r.Title == nil && r.Description == nil && r.Location == nil && r.Date == nil &&
		r.DurationMinutes == nil && r.Capacity == nil && r.Price == nil &&
		r.CategoryID == nil && r.ImageURL == nil && r.Status == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Date != nil {
		if _, err := time.Parse(time.RFC3339, *r.Date); err != nil {
			return false, "Date must be a valid RFC3339 timestamp"
		}
	}
	return true, ""
}

// UpdateActivityStatusRequest represents request to change only an activity's status
type UpdateActivityStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=upcoming ongoing completed cancelled"`
}

// ActivityResponse represents activity data in responses
type ActivityResponse struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Location        string            `json:"location"`
	Date            string            `json:"date"`
	DurationMinutes int               `json:"duration_minutes"`
	Capacity        int               `json:"capacity"`
	RegisteredCount int               `json:"registered_count"`
	AvailableSlots  int               `json:"available_slots"`
	Price           float64           `json:"price"`
	CategoryID      string            `json:"category_id"`
	Category        *CategoryResponse `json:"category,omitempty"`
	ImageURL        string            `json:"image_url,omitempty"`
	Status          string            `json:"status"`
	Organizer       *UserResponse     `json:"organizer,omitempty"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

// ListActivitiesQuery represents query parameters for listing activities
type ListActivitiesQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	CategoryID  string `form:"category_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	OrganizerID string `form:"organizer_id" binding:"omitempty,uuid"`
	Search      string `form:"search" binding:"omitempty,max=255"`
}

// SetDefaults sets default values for query parameters
func (q *ListActivitiesQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
}

// ListActivitiesResponse represents paginated list of activities
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
