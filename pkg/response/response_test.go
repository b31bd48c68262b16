package response

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSuccess(t *testing.T) {
	resp := Success(map[string]string{"key": "value"})

	if !resp.Success {
		t.Error("Expected Success to be true")
	}
	if resp.Data == nil {
		t.Error("Expected Data to be set")
	}
	if resp.Error != nil {
		t.Error("Expected Error to be nil")
	}
}

func TestError(t *testing.T) {
	resp := Error(ErrCodeNotFound, "Activity not found")

	if resp.Success {
		t.Error("Expected Success to be false")
	}
	if resp.Error == nil {
		t.Fatal("Expected Error to be set")
	}
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("Expected code %s, got %s", ErrCodeNotFound, resp.Error.Code)
	}
	if resp.Error.Message != "Activity not found" {
		t.Errorf("Unexpected message: %s", resp.Error.Message)
	}
}

func TestErrorWithDetails(t *testing.T) {
	details := map[string]string{"capacity": "must be at least 1"}
	resp := ErrorWithDetails(ErrCodeValidationFailed, "Validation failed", details)

	if resp.Error == nil {
		t.Fatal("Expected Error to be set")
	}
	if resp.Error.Details["capacity"] != "must be at least 1" {
		t.Errorf("Expected details to carry field message, got %v", resp.Error.Details)
	}
}

func TestPaginated(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		perPage        int
		total          int64
		wantTotalPages int
	}{
		{"exact pages", 1, 10, 30, 3},
		{"partial last page", 1, 10, 31, 4},
		{"empty", 1, 10, 0, 0},
		{"single item", 2, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Paginated([]string{}, tt.page, tt.perPage, tt.total)

			if !resp.Success {
				t.Error("Expected Success to be true")
			}
			if resp.Meta == nil {
				t.Fatal("Expected Meta to be set")
			}
			if resp.Meta.Page != tt.page {
				t.Errorf("Expected page %d, got %d", tt.page, resp.Meta.Page)
			}
			if resp.Meta.Total != tt.total {
				t.Errorf("Expected total %d, got %d", tt.total, resp.Meta.Total)
			}
			if resp.Meta.TotalPages != tt.wantTotalPages {
				t.Errorf("Expected total pages %d, got %d", tt.wantTotalPages, resp.Meta.TotalPages)
			}
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidID, http.StatusBadRequest},
		{ErrCodeCapacityExceeded, http.StatusBadRequest},
		{ErrCodeInvalidState, http.StatusBadRequest},
		{ErrCodeAlreadyRegistered, http.StatusConflict},
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeInternalError, http.StatusInternalServerError},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetHTTPStatus(tt.code); got != tt.want {
				t.Errorf("GetHTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	tests := []struct {
		page    int
		perPage int
		want    int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}

	for _, tt := range tests {
		p := PaginationParams{Page: tt.page, PerPage: tt.perPage}
		if got := p.Offset(); got != tt.want {
			t.Errorf("Offset() page=%d perPage=%d = %d, want %d", tt.page, tt.perPage, got, tt.want)
		}
	}
}

func TestDefaultPagination(t *testing.T) {
	p := DefaultPagination()
	if p.Page != 1 || p.PerPage != 10 {
		t.Errorf("Expected page 1 perPage 10, got page %d perPage %d", p.Page, p.PerPage)
	}
}

func TestResponse_JSONShape(t *testing.T) {
	resp := NotFound("Registration not found")
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["success"] != false {
		t.Error("Expected success=false in JSON")
	}
	if _, hasData := decoded["data"]; hasData {
		t.Error("Expected data to be omitted on error responses")
	}
	errObj, ok := decoded["error"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected error object in JSON")
	}
	if errObj["code"] != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %v", errObj["code"])
	}
	if errObj["message"] != "Registration not found" {
		t.Errorf("Unexpected message: %v", errObj["message"])
	}
}
