package service

import (
	"context"
	"errors"
	"math"

	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/repository"
)

// UserService defines the interface for admin user management operations
type UserService interface {
	// List retrieves users with pagination and filters
	List(ctx context.Context, query *dto.ListUsersQuery) ([]dto.UserResponse, int, int, error)
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	// Update updates a user's details or role
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// Delete soft deletes a user
	Delete(ctx context.Context, id string) error
}

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// List retrieves users with pagination and filters. Returns the users, the
// total count, and the total number of pages.
func (s *userService) List(ctx context.Context, query *dto.ListUsersQuery) ([]dto.UserResponse, int, int, error) {
	query.SetDefaults()

	users, totalCount, err := s.userRepo.List(ctx, query.Page, query.Limit, query.Role, query.Search)
	if err != nil {
		return nil, 0, 0, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, *toUserResponse(user))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))
	return responses, totalCount, totalPages, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update updates a user's details or role
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

// Delete soft deletes a user
func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.SoftDelete(ctx, id)
}
