package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestAuditLogger() *AuditLogger {
	cfg := DefaultAuditConfig(nil)
	cfg.FlushInterval = 10 * time.Millisecond
	al := NewAuditLogger(cfg)
	al.SetTestMode(true)
	return al
}

func waitForEntries(t *testing.T, al *AuditLogger, want int) []*AuditEntry {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		entries := al.TestEntries()
		if len(entries) >= want {
			return entries
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d audit entries, got %d", want, len(al.TestEntries()))
	return nil
}

func setupAuditRouter(al *AuditLogger) *gin.Engine {
	router := gin.New()
	router.Use(Audit(al))
	router.POST("/api/registrations", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "user-1")
		c.Set(ContextKeyEmail, "a@example.com")
		c.Set(ContextKeyRole, "user")
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	router.DELETE("/api/registrations/reg-9", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/api/activities", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAudit_RecordsWriteOperations(t *testing.T) {
	al := newTestAuditLogger()
	defer al.Close()
	router := setupAuditRouter(al)

	req := httptest.NewRequest(http.MethodPost, "/api/registrations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	entries := waitForEntries(t, al, 1)
	e := entries[0]

	if e.Action != AuditActionCreate {
		t.Errorf("expected action create, got %s", e.Action)
	}
	if e.ResourceType != "registrations" {
		t.Errorf("expected resource type registrations, got %s", e.ResourceType)
	}
	if e.StatusCode != http.StatusCreated {
		t.Errorf("expected status 201, got %d", e.StatusCode)
	}
	if e.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", e.UserID)
	}
	if e.ID == "" {
		t.Error("expected entry ID to be set")
	}
}

func TestAudit_ExtractsResourceID(t *testing.T) {
	al := newTestAuditLogger()
	defer al.Close()
	router := setupAuditRouter(al)

	req := httptest.NewRequest(http.MethodDelete, "/api/registrations/reg-9", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	entries := waitForEntries(t, al, 1)
	e := entries[0]

	if e.Action != AuditActionDelete {
		t.Errorf("expected action delete, got %s", e.Action)
	}
	if e.ResourceID != "reg-9" {
		t.Errorf("expected resource id reg-9, got %s", e.ResourceID)
	}
}

func TestAudit_SkipsReadsAndHealth(t *testing.T) {
	al := newTestAuditLogger()
	defer al.Close()
	router := setupAuditRouter(al)

	for _, path := range []string{"/api/activities", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}

	time.Sleep(50 * time.Millisecond)
	if entries := al.TestEntries(); len(entries) != 0 {
		t.Errorf("expected no audit entries for reads, got %d", len(entries))
	}
}

func TestActionForMethod(t *testing.T) {
	tests := []struct {
		method string
		want   AuditAction
	}{
		{"POST", AuditActionCreate},
		{"PUT", AuditActionUpdate},
		{"PATCH", AuditActionUpdate},
		{"DELETE", AuditActionDelete},
		{"GET", AuditActionOther},
	}
	for _, tt := range tests {
		if got := actionForMethod(tt.method); got != tt.want {
			t.Errorf("actionForMethod(%s) = %s, want %s", tt.method, got, tt.want)
		}
	}
}

func TestResourceFromPath(t *testing.T) {
	tests := []struct {
		path     string
		wantType string
		wantID   string
	}{
		{"/api/registrations", "registrations", ""},
		{"/api/registrations/abc", "registrations", "abc"},
		{"/api/activities/xyz/status", "activities", "xyz"},
		{"/health", "", ""},
	}
	for _, tt := range tests {
		gotType, gotID := resourceFromPath(tt.path)
		if gotType != tt.wantType || gotID != tt.wantID {
			t.Errorf("resourceFromPath(%s) = (%s, %s), want (%s, %s)",
				tt.path, gotType, gotID, tt.wantType, tt.wantID)
		}
	}
}
