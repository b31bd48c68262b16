package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/internal/repository"
)

// In-memory repository implementations for service tests. The registration
// repository mirrors the transactional semantics of the Postgres one: the
// slot claim and the insert succeed or fail together.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email && user.DeletedAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) List(_ context.Context, page, limit int, role, search string) ([]*domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.User, 0)
	for _, user := range r.users {
		if user.DeletedAt != nil {
			continue
		}
		if role != "" && user.Role != role {
			continue
		}
		if search != "" && !strings.Contains(user.Username, search) && !strings.Contains(user.Email, search) {
			continue
		}
		copied := *user
		matched = append(matched, &copied)
	}
	return paginate(matched, page, limit), len(matched), nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil
	}
	now := user.UpdatedAt
	user.DeletedAt = &now
	return nil
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.GetByEmail(ctx, email)
	return user != nil, err
}

type memoryCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *memoryCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *memoryCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (r *memoryCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, category := range r.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryCategoryRepo) List(_ context.Context, activeOnly bool) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.Category, 0)
	for _, category := range r.categories {
		if activeOnly && !category.IsActive {
			continue
		}
		copied := *category
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memoryCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *memoryCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func (r *memoryCategoryRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	category, err := r.GetBySlug(ctx, slug)
	return category != nil, err
}

type memoryActivityRepo struct {
	mu         sync.Mutex
	activities map[string]*domain.Activity
}

func newMemoryActivityRepo() *memoryActivityRepo {
	return &memoryActivityRepo{activities: make(map[string]*domain.Activity)}
}

func (r *memoryActivityRepo) Create(_ context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *activity
	r.activities[activity.ID] = &copied
	return nil
}

func (r *memoryActivityRepo) GetByID(_ context.Context, id string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok || activity.DeletedAt != nil {
		return nil, nil
	}
	copied := *activity
	return &copied, nil
}

func (r *memoryActivityRepo) List(_ context.Context, filter repository.ActivityFilter) ([]*domain.Activity, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.Activity, 0)
	for _, activity := range r.activities {
		if activity.DeletedAt != nil {
			continue
		}
		if filter.CategoryID != "" && activity.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Status != "" && activity.Status != filter.Status {
			continue
		}
		if filter.OrganizerID != "" && activity.OrganizerID != filter.OrganizerID {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(activity.Title, filter.Search) &&
			!strings.Contains(activity.Description, filter.Search) &&
			!strings.Contains(activity.Location, filter.Search) {
			continue
		}
		copied := *activity
		matched = append(matched, &copied)
	}
	return paginate(matched, filter.Page, filter.Limit), len(matched), nil
}

func (r *memoryActivityRepo) Update(_ context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.activities[activity.ID]
	if !ok {
		return nil
	}
	// registered_count is owned by the registration workflow
	copied := *activity
	copied.RegisteredCount = existing.RegisteredCount
	r.activities[activity.ID] = &copied
	return nil
}

func (r *memoryActivityRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if activity, ok := r.activities[id]; ok {
		activity.Status = status
	}
	return nil
}

func (r *memoryActivityRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.activities, id)
	return nil
}

type memoryRegistrationRepo struct {
	mu            sync.Mutex
	registrations map[string]*domain.Registration
	activityRepo  *memoryActivityRepo
}

func newMemoryRegistrationRepo(activityRepo *memoryActivityRepo) *memoryRegistrationRepo {
	return &memoryRegistrationRepo{
		registrations: make(map[string]*domain.Registration),
		activityRepo:  activityRepo,
	}
}

func (r *memoryRegistrationRepo) CreateWithAdmission(_ context.Context, registration *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activityRepo.mu.Lock()
	defer r.activityRepo.mu.Unlock()

	activity, ok := r.activityRepo.activities[registration.ActivityID]
	if !ok || activity.DeletedAt != nil {
		return repository.ErrActivityNotFound
	}
	if activity.RegisteredCount >= activity.Capacity {
		return repository.ErrActivityFull
	}
	if activity.Status != domain.ActivityStatusUpcoming {
		return repository.ErrActivityNotOpen
	}
	for _, existing := range r.registrations {
		if existing.UserID == registration.UserID && existing.ActivityID == registration.ActivityID {
			return repository.ErrDuplicateRegistration
		}
	}

	activity.RegisteredCount++
	copied := *registration
	r.registrations[registration.ID] = &copied
	return nil
}

func (r *memoryRegistrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	registration, ok := r.registrations[id]
	if !ok {
		return nil, nil
	}
	copied := *registration
	return &copied, nil
}

func (r *memoryRegistrationRepo) GetByUserAndActivity(_ context.Context, userID, activityID string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, registration := range r.registrations {
		if registration.UserID == userID && registration.ActivityID == activityID {
			copied := *registration
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryRegistrationRepo) List(_ context.Context, filter repository.RegistrationFilter) ([]*domain.Registration, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.Registration, 0)
	for _, registration := range r.registrations {
		if filter.UserID != "" && registration.UserID != filter.UserID {
			continue
		}
		if filter.ActivityID != "" && registration.ActivityID != filter.ActivityID {
			continue
		}
		if filter.Status != "" && registration.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && registration.PaymentStatus != filter.PaymentStatus {
			continue
		}
		copied := *registration
		matched = append(matched, &copied)
	}
	return paginate(matched, filter.Page, filter.Limit), len(matched), nil
}

func (r *memoryRegistrationRepo) Update(_ context.Context, registration *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *registration
	r.registrations[registration.ID] = &copied
	return nil
}

func (r *memoryRegistrationRepo) CancelWithRelease(_ context.Context, registrationID, activityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	registration, ok := r.registrations[registrationID]
	if !ok || registration.Status == domain.RegistrationStatusCancelled {
		return fmt.Errorf("registration not found or already cancelled")
	}
	registration.Status = domain.RegistrationStatusCancelled

	r.activityRepo.mu.Lock()
	defer r.activityRepo.mu.Unlock()
	if activity, ok := r.activityRepo.activities[activityID]; ok && activity.RegisteredCount > 0 {
		activity.RegisteredCount--
	}
	return nil
}

func (r *memoryRegistrationRepo) Delete(_ context.Context, registrationID, activityID string, releaseSlot bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registrations, registrationID)

	if releaseSlot {
		r.activityRepo.mu.Lock()
		defer r.activityRepo.mu.Unlock()
		if activity, ok := r.activityRepo.activities[activityID]; ok && activity.RegisteredCount > 0 {
			activity.RegisteredCount--
		}
	}
	return nil
}

type memoryCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*domain.Comment
}

func newMemoryCommentRepo() *memoryCommentRepo {
	return &memoryCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *memoryCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *memoryCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *comment
	return &copied, nil
}

func (r *memoryCommentRepo) ListByActivity(_ context.Context, activityID string, page, limit int) ([]*domain.Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.Comment, 0)
	for _, comment := range r.comments {
		if comment.ActivityID == activityID {
			copied := *comment
			matched = append(matched, &copied)
		}
	}
	return paginate(matched, page, limit), len(matched), nil
}

func (r *memoryCommentRepo) List(_ context.Context, page, limit int) ([]*domain.Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Comment, 0, len(r.comments))
	for _, comment := range r.comments {
		copied := *comment
		all = append(all, &copied)
	}
	return paginate(all, page, limit), len(all), nil
}

func (r *memoryCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *memoryCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(items)
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
