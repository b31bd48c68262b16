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

type commentFixture struct {
	userRepo     *memoryUserRepo
	activityRepo *memoryActivityRepo
	commentRepo  *memoryCommentRepo
	service      CommentService
	author       *domain.User
	activity     *domain.Activity
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	userRepo := newMemoryUserRepo()
	activityRepo := newMemoryActivityRepo()
	commentRepo := newMemoryCommentRepo()

	author := &domain.User{
		ID:        uuid.New().String(),
		Username:  "commenter",
		Email:     "commenter@example.com",
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, author); err != nil {
		t.Fatalf("Failed to create author: %v", err)
	}

	activity := &domain.Activity{
		ID:              uuid.New().String(),
		OrganizerID:     uuid.New().String(),
		CategoryID:      uuid.New().String(),
		Title:           "Evening Basketball",
		Location:        "Court 2",
		Date:            now.Add(72 * time.Hour),
		DurationMinutes: 120,
		Capacity:        10,
		Price:           25,
		Status:          domain.ActivityStatusUpcoming,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := activityRepo.Create(ctx, activity); err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	return &commentFixture{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		commentRepo:  commentRepo,
		service:      NewCommentService(commentRepo, activityRepo, userRepo),
		author:       author,
		activity:     activity,
	}
}

func (f *commentFixture) addComment(t *testing.T, content string, rating int) *dto.CommentResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), f.author.ID, f.activity.ID, &dto.CreateCommentRequest{
		Content: content,
		Rating:  rating,
	})
	if err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}
	return resp
}

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with populated author", func(t *testing.T) {
		f := newCommentFixture(t)

		resp := f.addComment(t, "Great game, well organized", 5)
		if resp.Content != "Great game, well organized" {
			t.Errorf("Content = %q", resp.Content)
		}
		if resp.Rating != 5 {
			t.Errorf("Rating = %d, want 5", resp.Rating)
		}
		if resp.User == nil || resp.User.Username != "commenter" {
			t.Errorf("User not populated: %+v", resp.User)
		}
	})

	t.Run("rejects unknown activity", func(t *testing.T) {
		f := newCommentFixture(t)

		_, err := f.service.Create(ctx, f.author.ID, uuid.New().String(), &dto.CreateCommentRequest{Content: "hi"})
		if !errors.Is(err, ErrActivityNotFound) {
			t.Errorf("Expected ErrActivityNotFound, got %v", err)
		}
	})
}

func TestCommentUpdate(t *testing.T) {
	ctx := context.Background()
	newContent := "Actually the court was flooded"

	t.Run("author edits own comment", func(t *testing.T) {
		f := newCommentFixture(t)
		created := f.addComment(t, "Great game", 4)

		resp, err := f.service.Update(ctx, f.author.ID, domain.RoleUser, created.ID, &dto.UpdateCommentRequest{Content: &newContent})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if resp.Content != newContent {
			t.Errorf("Content = %q", resp.Content)
		}
		if resp.Rating != 4 {
			t.Errorf("Rating changed unexpectedly: %d", resp.Rating)
		}
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		f := newCommentFixture(t)
		created := f.addComment(t, "Great game", 4)

		_, err := f.service.Update(ctx, uuid.New().String(), domain.RoleUser, created.ID, &dto.UpdateCommentRequest{Content: &newContent})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})

	t.Run("admin can edit any comment", func(t *testing.T) {
		f := newCommentFixture(t)
		created := f.addComment(t, "Great game", 4)

		resp, err := f.service.Update(ctx, uuid.New().String(), domain.RoleAdmin, created.ID, &dto.UpdateCommentRequest{Content: &newContent})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if resp.Content != newContent {
			t.Errorf("Content = %q", resp.Content)
		}
	})

	t.Run("rejects empty update", func(t *testing.T) {
		f := newCommentFixture(t)
		created := f.addComment(t, "Great game", 4)

		if _, err := f.service.Update(ctx, f.author.ID, domain.RoleUser, created.ID, &dto.UpdateCommentRequest{}); err == nil {
			t.Error("Expected validation error for empty update")
		}
	})

	t.Run("missing comment", func(t *testing.T) {
		f := newCommentFixture(t)

		_, err := f.service.Update(ctx, f.author.ID, domain.RoleUser, uuid.New().String(), &dto.UpdateCommentRequest{Content: &newContent})
		if !errors.Is(err, ErrCommentNotFound) {
			t.Errorf("Expected ErrCommentNotFound, got %v", err)
		}
	})
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own comment", func(t *testing.T) {
		f := newCommentFixture(t)
		created := f.addComment(t, "Great game", 4)

		if err := f.service.Delete(ctx, f.author.ID, domain.RoleUser, created.ID); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		comment, err := f.commentRepo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if comment != nil {
			t.Error("Comment still present after delete")
		}
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		f := newCommentFixture(t)
		created := f.addComment(t, "Great game", 4)

		err := f.service.Delete(ctx, uuid.New().String(), domain.RoleUser, created.ID)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})
}

func TestCommentList(t *testing.T) {
	ctx := context.Background()

	t.Run("lists only the activity's comments", func(t *testing.T) {
		f := newCommentFixture(t)
		f.addComment(t, "first", 3)
		f.addComment(t, "second", 4)

		other := &domain.Activity{
			ID:          uuid.New().String(),
			OrganizerID: uuid.New().String(),
			Title:       "Morning Yoga",
			Date:        time.Now().Add(48 * time.Hour),
			Capacity:    10,
			Status:      domain.ActivityStatusUpcoming,
		}
		if err := f.activityRepo.Create(ctx, other); err != nil {
			t.Fatalf("Failed to create activity: %v", err)
		}
		if _, err := f.service.Create(ctx, f.author.ID, other.ID, &dto.CreateCommentRequest{Content: "elsewhere"}); err != nil {
			t.Fatalf("Failed to create comment: %v", err)
		}

		comments, totalCount, totalPages, err := f.service.ListByActivity(ctx, f.activity.ID, &dto.ListCommentsQuery{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(comments) != 2 || totalCount != 2 {
			t.Errorf("Got %d comments (total %d), want 2", len(comments), totalCount)
		}
		if totalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", totalPages)
		}
	})

	t.Run("rejects unknown activity", func(t *testing.T) {
		f := newCommentFixture(t)

		_, _, _, err := f.service.ListByActivity(ctx, uuid.New().String(), &dto.ListCommentsQuery{})
		if !errors.Is(err, ErrActivityNotFound) {
			t.Errorf("Expected ErrActivityNotFound, got %v", err)
		}
	})

	t.Run("admin listing spans activities", func(t *testing.T) {
		f := newCommentFixture(t)
		f.addComment(t, "first", 3)

		other := &domain.Activity{
			ID:          uuid.New().String(),
			OrganizerID: uuid.New().String(),
			Title:       "Morning Yoga",
			Date:        time.Now().Add(48 * time.Hour),
			Capacity:    10,
			Status:      domain.ActivityStatusUpcoming,
		}
		if err := f.activityRepo.Create(ctx, other); err != nil {
			t.Fatalf("Failed to create activity: %v", err)
		}
		if _, err := f.service.Create(ctx, f.author.ID, other.ID, &dto.CreateCommentRequest{Content: "elsewhere"}); err != nil {
			t.Fatalf("Failed to create comment: %v", err)
		}

		comments, totalCount, _, err := f.service.ListAll(ctx, &dto.ListCommentsQuery{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(comments) != 2 || totalCount != 2 {
			t.Errorf("Got %d comments (total %d), want 2", len(comments), totalCount)
		}
	})
}
