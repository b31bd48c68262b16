package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/repository"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService defines the interface for comment operations
type CommentService interface {
	// Create adds a comment to an activity
	Create(ctx context.Context, userID, activityID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	// ListByActivity retrieves comments for an activity, newest first
	ListByActivity(ctx context.Context, activityID string, query *dto.ListCommentsQuery) ([]dto.CommentResponse, int, int, error)
	// ListAll retrieves comments across all activities, newest first
	ListAll(ctx context.Context, query *dto.ListCommentsQuery) ([]dto.CommentResponse, int, int, error)
	// Update edits a comment; only the author or an admin may do so
	Update(ctx context.Context, actorID, actorRole, id string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	// Delete removes a comment; only the author or an admin may do so
	Delete(ctx context.Context, actorID, actorRole, id string) error
}

// commentService implements CommentService
type commentService struct {
	commentRepo  repository.CommentRepository
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

// Create adds a comment to an activity
func (s *commentService) Create(ctx context.Context, userID, activityID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:         uuid.New().String(),
		UserID:     userID,
		ActivityID: activityID,
		Content:    req.Content,
		Rating:     req.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.toCommentResponse(ctx, comment), nil
}

// ListByActivity retrieves comments for an activity, newest first. Returns
// the comments, the total count, and the total number of pages.
func (s *commentService) ListByActivity(ctx context.Context, activityID string, query *dto.ListCommentsQuery) ([]dto.CommentResponse, int, int, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, 0, 0, err
	}
	if activity == nil {
		return nil, 0, 0, ErrActivityNotFound
	}

	query.SetDefaults()
	comments, totalCount, err := s.commentRepo.ListByActivity(ctx, activityID, query.Page, query.Limit)
	if err != nil {
		return nil, 0, 0, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, *s.toCommentResponse(ctx, comment))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))
	return responses, totalCount, totalPages, nil
}

// ListAll retrieves comments across all activities, newest first. Returns
// the comments, the total count, and the total number of pages.
func (s *commentService) ListAll(ctx context.Context, query *dto.ListCommentsQuery) ([]dto.CommentResponse, int, int, error) {
	query.SetDefaults()
	comments, totalCount, err := s.commentRepo.List(ctx, query.Page, query.Limit)
	if err != nil {
		return nil, 0, 0, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, *s.toCommentResponse(ctx, comment))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))
	return responses, totalCount, totalPages, nil
}

// Update edits a comment; only the author or an admin may do so
func (s *commentService) Update(ctx context.Context, actorID, actorRole, id string, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if !comment.CanBeManagedBy(actorID, actorRole) {
		return nil, ErrForbidden
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.Rating != nil {
		comment.Rating = *req.Rating
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.toCommentResponse(ctx, comment), nil
}

// Delete removes a comment; only the author or an admin may do so
func (s *commentService) Delete(ctx context.Context, actorID, actorRole, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if !comment.CanBeManagedBy(actorID, actorRole) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(ctx, id)
}

// toCommentResponse converts domain.Comment to dto.CommentResponse
func (s *commentService) toCommentResponse(ctx context.Context, comment *domain.Comment) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		ID:         comment.ID,
		ActivityID: comment.ActivityID,
		Content:    comment.Content,
		Rating:     comment.Rating,
		CreatedAt:  comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  comment.UpdatedAt.Format(time.RFC3339),
	}
	if user, err := s.userRepo.GetByID(ctx, comment.UserID); err == nil && user != nil {
		resp.User = toUserResponse(user)
	}
	return resp
}
