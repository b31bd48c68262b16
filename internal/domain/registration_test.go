package domain

import "testing"

func TestRegistration_CountsTowardCapacity(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"pending", RegistrationStatusPending, true},
		{"confirmed", RegistrationStatusConfirmed, true},
		{"completed", RegistrationStatusCompleted, true},
		{"cancelled", RegistrationStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Registration{Status: tt.status}
			if got := r.CountsTowardCapacity(); got != tt.want {
				t.Errorf("Expected CountsTowardCapacity() = %v for %s, got %v", tt.want, tt.status, got)
			}
		})
	}
}

func TestRegistration_BelongsTo(t *testing.T) {
	r := &Registration{UserID: "user-1"}

	if !r.BelongsTo("user-1") {
		t.Error("Expected registration to belong to user-1")
	}
	if r.BelongsTo("user-2") {
		t.Error("Expected registration not to belong to user-2")
	}
}

func TestValidRegistrationStatus(t *testing.T) {
	for _, status := range []string{RegistrationStatusPending, RegistrationStatusConfirmed, RegistrationStatusCancelled, RegistrationStatusCompleted} {
		if !ValidRegistrationStatus(status) {
			t.Errorf("Expected %s to be a valid status", status)
		}
	}
	if ValidRegistrationStatus("registered") {
		t.Error("Expected 'registered' to be an invalid status")
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, status := range []string{PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded} {
		if !ValidPaymentStatus(status) {
			t.Errorf("Expected %s to be a valid payment status", status)
		}
	}
	if ValidPaymentStatus("pending") {
		t.Error("Expected 'pending' to be an invalid payment status")
	}
}

func TestValidAttendanceStatus(t *testing.T) {
	for _, status := range []string{AttendanceStatusAttended, AttendanceStatusAbsent} {
		if !ValidAttendanceStatus(status) {
			t.Errorf("Expected %s to be a valid attendance status", status)
		}
	}
	if ValidAttendanceStatus("late") {
		t.Error("Expected 'late' to be an invalid attendance status")
	}
}
