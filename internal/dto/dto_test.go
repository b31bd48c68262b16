package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		request  RegisterRequest
		wantOK   bool
		wantHint string
	}{
		{
			name:    "valid request",
			request: RegisterRequest{Username: "alice_1", Email: "a@example.com", Password: "secret-password"},
			wantOK:  true,
		},
		{
			name:     "username with spaces",
			request:  RegisterRequest{Username: "alice smith", Email: "a@example.com", Password: "secret-password"},
			wantOK:   false,
			wantHint: "Username",
		},
		{
			name:     "password with leading whitespace",
			request:  RegisterRequest{Username: "alice", Email: "a@example.com", Password: " secret-password"},
			wantOK:   false,
			wantHint: "Password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := tt.request.Validate()
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Contains(t, msg, tt.wantHint)
			}
		})
	}
}

func TestCreateActivityRequest_Validate(t *testing.T) {
	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	past := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)

	t.Run("valid future date", func(t *testing.T) {
		r := CreateActivityRequest{Date: future}
		ok, _ := r.Validate()
		assert.True(t, ok)
		assert.False(t, r.ParsedDate().IsZero())
	})

	t.Run("past date rejected", func(t *testing.T) {
		r := CreateActivityRequest{Date: past}
		ok, msg := r.Validate()
		assert.False(t, ok)
		assert.Contains(t, msg, "future")
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		r := CreateActivityRequest{Date: "2026-13-45"}
		ok, msg := r.Validate()
		assert.False(t, ok)
		assert.Contains(t, msg, "RFC3339")
	})
}

func TestUpdateRegistrationRequest_Validate(t *testing.T) {
	t.Run("empty update rejected", func(t *testing.T) {
		r := UpdateRegistrationRequest{}
		ok, msg := r.Validate()
		assert.False(t, ok)
		assert.Contains(t, msg, "At least one field")
	})

	t.Run("status only accepted", func(t *testing.T) {
		status := "cancelled"
		r := UpdateRegistrationRequest{Status: &status}
		ok, _ := r.Validate()
		assert.True(t, ok)
	})
}

func TestCreateCategoryRequest_ValidateSlug(t *testing.T) {
	tests := []struct {
		slug   string
		wantOK bool
	}{
		{"basketball", true},
		{"table-tennis", true},
		{"5-a-side", true},
		{"Table Tennis", false},
		{"foot_ball", false},
	}

	for _, tt := range tests {
		r := CreateCategoryRequest{Slug: tt.slug}
		ok, _ := r.ValidateSlug()
		assert.Equal(t, tt.wantOK, ok, "slug %q", tt.slug)
	}
}

func TestListQueries_SetDefaults(t *testing.T) {
	aq := ListActivitiesQuery{}
	aq.SetDefaults()
	assert.Equal(t, 1, aq.Page)
	assert.Equal(t, 10, aq.Limit)

	rq := ListRegistrationsQuery{Page: 3, Limit: 50}
	rq.SetDefaults()
	assert.Equal(t, 3, rq.Page)
	assert.Equal(t, 50, rq.Limit)
}
