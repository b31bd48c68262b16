package repository

import (
	"context"
	"errors"

	"github.com/sportactiv/sportactiv/internal/domain"
)

// Admission errors returned by CreateWithAdmission
var (
	// ErrActivityNotFound means the activity does not exist (or is deleted)
	ErrActivityNotFound = errors.New("activity not found")
	// ErrActivityFull means the activity has no remaining capacity
	ErrActivityFull = errors.New("activity capacity exceeded")
	// ErrActivityNotOpen means the activity is not in the upcoming state
	ErrActivityNotOpen = errors.New("activity is not open for registration")
	// ErrDuplicateRegistration means the user already has a registration for the activity
	ErrDuplicateRegistration = errors.New("user already registered for activity")
)

// RegistrationFilter holds filters for listing registrations. Search matches
// the registrant's email or the activity title.
type RegistrationFilter struct {
	UserID        string
	ActivityID    string
	Status        string
	PaymentStatus string
	Search        string
	Page          int
	Limit         int
}

// RegistrationRepository defines the interface for registration data access
type RegistrationRepository interface {
	// CreateWithAdmission atomically claims a slot on the activity and inserts
	// the registration. The slot claim and the insert happen in one transaction:
	// either both commit or neither does. Returns ErrActivityNotFound,
	// ErrActivityFull, ErrActivityNotOpen, or ErrDuplicateRegistration when
	// admission fails.
	CreateWithAdmission(ctx context.Context, registration *domain.Registration) error
	// GetByID retrieves a registration by ID
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	// GetByUserAndActivity retrieves a registration for a (user, activity) pair
	GetByUserAndActivity(ctx context.Context, userID, activityID string) (*domain.Registration, error)
	// List retrieves registrations with pagination and filters
	List(ctx context.Context, filter RegistrationFilter) ([]*domain.Registration, int, error)
	// Update updates a registration without touching the activity counter
	Update(ctx context.Context, registration *domain.Registration) error
	// CancelWithRelease marks the registration cancelled and releases its slot
	// on the activity in one transaction. The counter is floored at zero.
	CancelWithRelease(ctx context.Context, registrationID, activityID string) error
	// Delete removes a registration; when releaseSlot is true the activity's
	// counter is decremented in the same transaction, floored at zero
	Delete(ctx context.Context, registrationID, activityID string, releaseSlot bool) error
}
