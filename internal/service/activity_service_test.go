package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/internal/dto"
)

type activityFixture struct {
	userRepo     *memoryUserRepo
	categoryRepo *memoryCategoryRepo
	activityRepo *memoryActivityRepo
	service      ActivityService
	organizer    *domain.User
	category     *domain.Category
}

func newActivityFixture(t *testing.T) *activityFixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	userRepo := newMemoryUserRepo()
	categoryRepo := newMemoryCategoryRepo()
	activityRepo := newMemoryActivityRepo()

	organizer := &domain.User{
		ID:        uuid.New().String(),
		Username:  "organizer",
		Email:     "organizer@example.com",
		Role:      domain.RoleOrganizer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, organizer); err != nil {
		t.Fatalf("Failed to create organizer: %v", err)
	}

	category := &domain.Category{
		ID:        uuid.New().String(),
		Name:      "Basketball",
		Slug:      "basketball",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := categoryRepo.Create(ctx, category); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	return &activityFixture{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		activityRepo: activityRepo,
		service:      NewActivityService(activityRepo, categoryRepo, userRepo, nil),
		organizer:    organizer,
		category:     category,
	}
}

func (f *activityFixture) createActivity(t *testing.T) *dto.ActivityResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), f.organizer.ID, &dto.CreateActivityRequest{
		Title:           "Evening Basketball",
		Description:     "Pickup game, all levels welcome",
		Location:        "Court 2",
		Date:            time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		DurationMinutes: 120,
		Capacity:        10,
		Price:           25,
		CategoryID:      f.category.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}
	return resp
}

func TestActivityCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with upcoming status and zero count", func(t *testing.T) {
		f := newActivityFixture(t)
		resp := f.createActivity(t)

		if resp.Status != domain.ActivityStatusUpcoming {
			t.Errorf("Expected status upcoming, got %s", resp.Status)
		}
		if resp.RegisteredCount != 0 {
			t.Errorf("Expected registered count 0, got %d", resp.RegisteredCount)
		}
		if resp.AvailableSlots != 10 {
			t.Errorf("Expected 10 available slots, got %d", resp.AvailableSlots)
		}
		if resp.Organizer == nil || resp.Organizer.ID != f.organizer.ID {
			t.Error("Expected organizer to be populated")
		}
		if resp.Category == nil || resp.Category.Slug != "basketball" {
			t.Error("Expected category to be populated")
		}
	})

	t.Run("rejects past date", func(t *testing.T) {
		f := newActivityFixture(t)
		_, err := f.service.Create(ctx, f.organizer.ID, &dto.CreateActivityRequest{
			Title:           "Yesterday's Game",
			Description:     "Too late",
			Location:        "Court 1",
			Date:            time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
			DurationMinutes: 60,
			Capacity:        5,
			CategoryID:      f.category.ID,
		})
		if err == nil {
			t.Error("Expected validation error for past date")
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newActivityFixture(t)
		_, err := f.service.Create(ctx, f.organizer.ID, &dto.CreateActivityRequest{
			Title:           "Evening Basketball",
			Description:     "Pickup game",
			Location:        "Court 2",
			Date:            time.Now().Add(72 * time.Hour).Format(time.RFC3339),
			DurationMinutes: 120,
			Capacity:        10,
			CategoryID:      uuid.New().String(),
		})
		if !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("Expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestActivityUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner may update", func(t *testing.T) {
		f := newActivityFixture(t)
		created := f.createActivity(t)

		title := "Morning Basketball"
		capacity := 20
		updated, err := f.service.Update(ctx, f.organizer.ID, domain.RoleOrganizer, created.ID, &dto.UpdateActivityRequest{
			Title:    &title,
			Capacity: &capacity,
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Title != title {
			t.Errorf("Expected title %q, got %q", title, updated.Title)
		}
		if updated.Capacity != 20 {
			t.Errorf("Expected capacity 20, got %d", updated.Capacity)
		}
	})

	t.Run("other organizer is forbidden", func(t *testing.T) {
		f := newActivityFixture(t)
		created := f.createActivity(t)

		title := "Hijacked"
		_, err := f.service.Update(ctx, uuid.New().String(), domain.RoleOrganizer, created.ID, &dto.UpdateActivityRequest{Title: &title})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})

	t.Run("admin may update any activity", func(t *testing.T) {
		f := newActivityFixture(t)
		created := f.createActivity(t)

		title := "Renamed by admin"
		updated, err := f.service.Update(ctx, uuid.New().String(), domain.RoleAdmin, created.ID, &dto.UpdateActivityRequest{Title: &title})
		if err != nil {
			t.Fatalf("Admin update failed: %v", err)
		}
		if updated.Title != title {
			t.Errorf("Expected title %q, got %q", title, updated.Title)
		}
	})

	t.Run("update never touches registered count", func(t *testing.T) {
		f := newActivityFixture(t)
		created := f.createActivity(t)

		// Simulate admissions happening outside the update path
		f.activityRepo.mu.Lock()
		f.activityRepo.activities[created.ID].RegisteredCount = 4
		f.activityRepo.mu.Unlock()

		title := "Renamed"
		updated, err := f.service.Update(ctx, f.organizer.ID, domain.RoleOrganizer, created.ID, &dto.UpdateActivityRequest{Title: &title})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.RegisteredCount != 4 {
			t.Errorf("Expected registered count 4 to be preserved, got %d", updated.RegisteredCount)
		}
	})
}

func TestActivityUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newActivityFixture(t)
	created := f.createActivity(t)

	t.Run("valid transition", func(t *testing.T) {
		updated, err := f.service.UpdateStatus(ctx, f.organizer.ID, domain.RoleOrganizer, created.ID, domain.ActivityStatusOngoing)
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		if updated.Status != domain.ActivityStatusOngoing {
			t.Errorf("Expected status ongoing, got %s", updated.Status)
		}
	})

	t.Run("invalid status value", func(t *testing.T) {
		if _, err := f.service.UpdateStatus(ctx, f.organizer.ID, domain.RoleOrganizer, created.ID, "postponed"); err == nil {
			t.Error("Expected error for invalid status")
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := f.service.UpdateStatus(ctx, uuid.New().String(), domain.RoleUser, created.ID, domain.ActivityStatusCompleted)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})
}

func TestActivityDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner delete removes the activity", func(t *testing.T) {
		f := newActivityFixture(t)
		created := f.createActivity(t)

		if err := f.service.Delete(ctx, f.organizer.ID, domain.RoleOrganizer, created.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := f.service.GetByID(ctx, created.ID); !errors.Is(err, ErrActivityNotFound) {
			t.Errorf("Expected ErrActivityNotFound after delete, got %v", err)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newActivityFixture(t)
		created := f.createActivity(t)

		if err := f.service.Delete(ctx, uuid.New().String(), domain.RoleUser, created.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})
}

func TestActivityList(t *testing.T) {
	ctx := context.Background()
	f := newActivityFixture(t)
	for i := 0; i < 3; i++ {
		f.createActivity(t)
	}

	t.Run("applies default pagination", func(t *testing.T) {
		resp, err := f.service.List(ctx, &dto.ListActivitiesQuery{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.TotalCount != 3 {
			t.Errorf("Expected total count 3, got %d", resp.TotalCount)
		}
		if resp.Page != 1 || resp.Limit != 10 {
			t.Errorf("Expected default page 1 limit 10, got page %d limit %d", resp.Page, resp.Limit)
		}
		if resp.TotalPages != 1 {
			t.Errorf("Expected 1 total page, got %d", resp.TotalPages)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		resp, err := f.service.List(ctx, &dto.ListActivitiesQuery{Status: domain.ActivityStatusCompleted})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.TotalCount != 0 {
			t.Errorf("Expected no completed activities, got %d", resp.TotalCount)
		}
	})
}
