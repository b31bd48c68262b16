package dto

// CreateRegistrationRequest represents request to register for an activity
type CreateRegistrationRequest struct {
	ActivityID string `json:"activity_id" binding:"required,uuid"`
	Notes      string `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateRegistrationRequest represents request to update a registration's
// status, attendance, or payment fields
type UpdateRegistrationRequest struct {
	Status           *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	AttendanceStatus *string `json:"attendance_status" binding:"omitempty,oneof=attended absent"`
	PaymentStatus    *string `json:"payment_status" binding:"omitempty,oneof=unpaid paid refunded"`
	Notes            *string `json:"notes" binding:"omitempty,max=1000"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateRegistrationRequest) Validate() (bool, string) {
	if r.Status == nil && r.AttendanceStatus == nil && r.PaymentStatus == nil && r.Notes == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// UpdatePaymentRequest represents request to update only payment status
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=unpaid paid refunded"`
}

// RegistrationResponse represents registration data in responses
type RegistrationResponse struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	ActivityID       string            `json:"activity_id"`
	Status           string            `json:"status"`
	PaymentStatus    string            `json:"payment_status"`
	PaymentAmount    float64           `json:"payment_amount"`
	PaymentDate      string            `json:"payment_date,omitempty"`
	RegistrationDate string            `json:"registration_date"`
	AttendanceStatus string            `json:"attendance_status,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	User             *UserResponse     `json:"user,omitempty"`
	Activity         *ActivityResponse `json:"activity,omitempty"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
}

// ListRegistrationsQuery represents query parameters for listing registrations
type ListRegistrationsQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=unpaid paid refunded"`
	Search        string `form:"search" binding:"omitempty,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListRegistrationsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
}

// ListRegistrationsResponse represents paginated list of registrations
type ListRegistrationsResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
	TotalCount    int                    `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
}
