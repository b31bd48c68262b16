package domain

import "time"

// Activity represents a sports activity users can register for
type Activity struct {
	ID              string     `json:"id"`
	OrganizerID     string     `json:"organizer_id"`
	CategoryID      string     `json:"category_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Date            time.Time  `json:"date"`
	DurationMinutes int        `json:"duration_minutes"`
	Capacity        int        `json:"capacity"`
	RegisteredCount int        `json:"registered_count"`
	Price           float64    `json:"price"`
	ImageURL        string     `json:"image_url,omitempty"`
	Status          string     `json:"status"` // upcoming, ongoing, completed, cancelled
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// ActivityStatus constants
const (
	ActivityStatusUpcoming  = "upcoming"
	ActivityStatusOngoing   = "ongoing"
	ActivityStatusCompleted = "completed"
	ActivityStatusCancelled = "cancelled"
)

// ValidActivityStatus reports whether status is one of the known statuses
func ValidActivityStatus(status string) bool {
	switch status {
	case ActivityStatusUpcoming, ActivityStatusOngoing, ActivityStatusCompleted, ActivityStatusCancelled:
		return true
	}
	return false
}

// AvailableSlots returns the number of registration slots remaining
func (a *Activity) AvailableSlots() int {
	return a.Capacity - a.RegisteredCount
}

// IsOpenForRegistration checks whether new registrations are admitted
func (a *Activity) IsOpenForRegistration() bool {
	return a.Status == ActivityStatusUpcoming && a.RegisteredCount < a.Capacity
}

// CanBeManagedBy checks whether the given user may modify this activity.
// Organizers manage their own activities; admins manage all.
func (a *Activity) CanBeManagedBy(userID, role string) bool {
	return role == RoleAdmin || a.OrganizerID == userID
}
