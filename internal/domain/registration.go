package domain

import "time"

// Registration represents a user's registration for an activity.
// One row exists per (user, activity) pair.
type Registration struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	ActivityID       string     `json:"activity_id"`
	Status           string     `json:"status"`            // pending, confirmed, cancelled, completed
	PaymentStatus    string     `json:"payment_status"`    // unpaid, paid, refunded
	PaymentAmount    float64    `json:"payment_amount"`    // copied from Activity.Price at creation
	PaymentDate      *time.Time `json:"payment_date,omitempty"`
	RegistrationDate time.Time  `json:"registration_date"`
	AttendanceStatus string     `json:"attendance_status,omitempty"` // attended, absent
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// RegistrationStatus constants
const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
	RegistrationStatusCompleted = "completed"
)

// PaymentStatus constants
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// AttendanceStatus constants
const (
	AttendanceStatusAttended = "attended"
	AttendanceStatusAbsent   = "absent"
)

// ValidRegistrationStatus reports whether status is one of the known statuses
func ValidRegistrationStatus(status string) bool {
	switch status {
	case RegistrationStatusPending, RegistrationStatusConfirmed,
		RegistrationStatusCancelled, RegistrationStatusCompleted:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether status is one of the known payment statuses
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// ValidAttendanceStatus reports whether status is one of the known attendance statuses
func ValidAttendanceStatus(status string) bool {
	switch status {
	case AttendanceStatusAttended, AttendanceStatusAbsent:
		return true
	}
	return false
}

// IsCancelled checks whether the registration has been cancelled
func (r *Registration) IsCancelled() bool {
	return r.Status == RegistrationStatusCancelled
}

// CountsTowardCapacity reports whether this registration currently
// occupies a slot on its activity
func (r *Registration) CountsTowardCapacity() bool {
	return r.Status != RegistrationStatusCancelled
}

// BelongsTo checks whether the registration is owned by the given user
func (r *Registration) BelongsTo(userID string) bool {
	return r.UserID == userID
}
