package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sportactiv/sportactiv/internal/cache"
	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/repository"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrForbidden means the actor is not allowed to perform the operation
	ErrForbidden = errors.New("operation not allowed for this user")
)

// ActivityService defines the interface for activity management operations
type ActivityService interface {
	// Create creates a new activity owned by the organizer
	Create(ctx context.Context, organizerID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	// GetByID retrieves an activity with its organizer and category populated
	GetByID(ctx context.Context, id string) (*dto.ActivityResponse, error)
	// List retrieves activities with pagination and filters
	List(ctx context.Context, query *dto.ListActivitiesQuery) (*dto.ListActivitiesResponse, error)
	// Update updates an activity; only the owning organizer or an admin may do so
	Update(ctx context.Context, actorID, actorRole, id string, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error)
	// UpdateStatus updates only an activity's status
	UpdateStatus(ctx context.Context, actorID, actorRole, id, status string) (*dto.ActivityResponse, error)
	// Delete deletes an activity and its registrations and comments
	Delete(ctx context.Context, actorID, actorRole, id string) error
}

// activityService implements ActivityService
type activityService struct {
	activityRepo  repository.ActivityRepository
	categoryRepo  repository.CategoryRepository
	userRepo      repository.UserRepository
	activityCache *cache.ActivityCache
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activityRepo repository.ActivityRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	activityCache *cache.ActivityCache,
) ActivityService {
	return &activityService{
		activityRepo:  activityRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
		activityCache: activityCache,
	}
}

// Create creates a new activity owned by the organizer
func (s *activityService) Create(ctx context.Context, organizerID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	now := time.Now()
	activity := &domain.Activity{
		ID:              uuid.New().String(),
		OrganizerID:     organizerID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Date:            req.ParsedDate(),
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		RegisteredCount: 0,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		Status:          domain.ActivityStatusUpcoming,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	return s.toActivityResponse(ctx, activity, true), nil
}

// GetByID retrieves an activity with its organizer and category populated.
// The cache is consulted first; the admission path in the registration
// service never goes through here.
func (s *activityService) GetByID(ctx context.Context, id string) (*dto.ActivityResponse, error) {
	activity, err := s.activityCache.Get(ctx, id)
	if err != nil || activity == nil {
		activity, err = s.activityRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if activity == nil {
			return nil, ErrActivityNotFound
		}
		s.activityCache.Set(ctx, activity)
	}
	return s.toActivityResponse(ctx, activity, true), nil
}

// List retrieves activities with pagination and filters
func (s *activityService) List(ctx context.Context, query *dto.ListActivitiesQuery) (*dto.ListActivitiesResponse, error) {
	query.SetDefaults()

	filter := repository.ActivityFilter{
		CategoryID:  query.CategoryID,
		Status:      query.Status,
		OrganizerID: query.OrganizerID,
		Search:      query.Search,
		Page:        query.Page,
		Limit:       query.Limit,
	}

	activities, totalCount, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, *s.toActivityResponse(ctx, activity, true))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))
	return &dto.ListActivitiesResponse{
		Activities: responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update updates an activity; only the owning organizer or an admin may do so
func (s *activityService) Update(ctx context.Context, actorID, actorRole, id string, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if !activity.CanBeManagedBy(actorID, actorRole) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Location != nil {
		activity.Location = *req.Location
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return nil, errors.New("Date must be a valid RFC3339 timestamp")
		}
		activity.Date = date
	}
	if req.DurationMinutes != nil {
		activity.DurationMinutes = *req.DurationMinutes
	}
	if req.Capacity != nil {
		activity.Capacity = *req.Capacity
	}
	if req.Price != nil {
		activity.Price = *req.Price
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		activity.CategoryID = *req.CategoryID
	}
	if req.ImageURL != nil {
		activity.ImageURL = *req.ImageURL
	}
	if req.Status != nil {
		activity.Status = *req.Status
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}
	s.activityCache.Invalidate(ctx, id)

	return s.toActivityResponse(ctx, activity, true), nil
}

// UpdateStatus updates only an activity's status
func (s *activityService) UpdateStatus(ctx context.Context, actorID, actorRole, id, status string) (*dto.ActivityResponse, error) {
	if !domain.ValidActivityStatus(status) {
		return nil, errors.New("invalid activity status")
	}

	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if !activity.CanBeManagedBy(actorID, actorRole) {
		return nil, ErrForbidden
	}

	if err := s.activityRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.activityCache.Invalidate(ctx, id)

	activity.Status = status
	return s.toActivityResponse(ctx, activity, true), nil
}

// Delete deletes an activity and its registrations and comments
func (s *activityService) Delete(ctx context.Context, actorID, actorRole, id string) error {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}
	if !activity.CanBeManagedBy(actorID, actorRole) {
		return ErrForbidden
	}

	if err := s.activityRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activityCache.Invalidate(ctx, id)
	return nil
}

// toActivityResponse converts domain.Activity to dto.ActivityResponse,
// optionally populating the organizer and category
func (s *activityService) toActivityResponse(ctx context.Context, activity *domain.Activity, populate bool) *dto.ActivityResponse {
	resp := &dto.ActivityResponse{
		ID:              activity.ID,
		Title:           activity.Title,
		Description:     activity.Description,
		Location:        activity.Location,
		Date:            activity.Date.Format(time.RFC3339),
		DurationMinutes: activity.DurationMinutes,
		Capacity:        activity.Capacity,
		RegisteredCount: activity.RegisteredCount,
		AvailableSlots:  activity.AvailableSlots(),
		Price:           activity.Price,
		CategoryID:      activity.CategoryID,
		ImageURL:        activity.ImageURL,
		Status:          activity.Status,
		CreatedAt:       activity.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       activity.UpdatedAt.Format(time.RFC3339),
	}

	if populate {
		if organizer, err := s.userRepo.GetByID(ctx, activity.OrganizerID); err == nil && organizer != nil {
			resp.Organizer = toUserResponse(organizer)
		}
		if category, err := s.categoryRepo.GetByID(ctx, activity.CategoryID); err == nil && category != nil {
			resp.Category = toCategoryResponse(category)
		}
	}

	return resp
}
