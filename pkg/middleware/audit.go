package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionOther  AuditAction = "other"
)

// AuditEntry represents a single audit log entry
type AuditEntry struct {
	ID           string
	UserID       string
	UserEmail    string
	UserRole     string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	Method       string
	Path         string
	StatusCode   int
	ClientIP     string
	Duration     time.Duration
	CreatedAt    time.Time
}

// AuditConfig holds configuration for the audit middleware
type AuditConfig struct {
	// DB is the PostgreSQL pool audit rows are written to
	DB *pgxpool.Pool
	// BufferSize is the size of the async buffer (default 1000)
	BufferSize int
	// FlushInterval is how often buffered entries are flushed (default 5s)
	FlushInterval time.Duration
	// BatchSize is the maximum entries per insert batch (default 100)
	BatchSize int
	// SkipPaths lists paths that are never audited
	SkipPaths []string
	// SkipMethods lists HTTP methods that are never audited (default read methods)
	SkipMethods []string
}

// DefaultAuditConfig returns default configuration
func DefaultAuditConfig(db *pgxpool.Pool) *AuditConfig {
	return &AuditConfig{
		DB:            db,
		BufferSize:    1000,
		FlushInterval: 5 * time.Second,
		BatchSize:     100,
		SkipPaths:     []string{"/health"},
		SkipMethods:   []string{"GET", "HEAD", "OPTIONS"},
	}
}

// AuditLogger buffers audit entries and writes them to the database in batches
type AuditLogger struct {
	config    *AuditConfig
	buffer    chan *AuditEntry
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// test mode collects entries instead of writing to the database
	testMode    bool
	testEntries []*AuditEntry
	testMu      sync.Mutex
}

// NewAuditLogger creates a new audit logger and starts its background worker
func NewAuditLogger(config *AuditConfig) *AuditLogger {
	if config.BufferSize <= 0 {
		config.BufferSize = 1000
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	al := &AuditLogger{
		config: config,
		buffer: make(chan *AuditEntry, config.BufferSize),
		ctx:    ctx,
		cancel: cancel,
	}

	al.wg.Add(1)
	go al.worker()

	return al
}

// Log adds an audit entry to the buffer without blocking; entries are
// dropped when the buffer is full
func (al *AuditLogger) Log(entry *AuditEntry) {
	select {
	case al.buffer <- entry:
	default:
	}
}

// Close flushes remaining entries and stops the worker
func (al *AuditLogger) Close() error {
	al.closeOnce.Do(func() {
		close(al.buffer)
		al.wg.Wait()
		al.cancel()
	})
	return nil
}

// SetTestMode enables collection of entries instead of database writes
func (al *AuditLogger) SetTestMode(enabled bool) {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	al.testMode = enabled
	if enabled {
		al.testEntries = make([]*AuditEntry, 0)
	}
}

// TestEntries returns collected entries (test mode only)
func (al *AuditLogger) TestEntries() []*AuditEntry {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	result := make([]*AuditEntry, len(al.testEntries))
	copy(result, al.testEntries)
	return result
}

func (al *AuditLogger) worker() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]*AuditEntry, 0, al.config.BatchSize)

	for {
		select {
		case entry, ok := <-al.buffer:
			if !ok {
				al.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= al.config.BatchSize {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		case <-al.ctx.Done():
			al.flush(batch)
			return
		}
	}
}

func (al *AuditLogger) flush(entries []*AuditEntry) {
	if len(entries) == 0 {
		return
	}

	al.testMu.Lock()
	if al.testMode {
		al.testEntries = append(al.testEntries, entries...)
		al.testMu.Unlock()
		return
	}
	al.testMu.Unlock()

	if al.config.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	query := `
		INSERT INTO audit_logs (id, user_id, user_email, user_role, action, resource_type,
			resource_id, method, path, status_code, client_ip, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, e := range entries {
		var userID any
		if e.UserID != "" {
			userID = e.UserID
		}
		_, _ = al.config.DB.Exec(ctx, query,
			e.ID,
			userID,
			e.UserEmail,
			e.UserRole,
			string(e.Action),
			e.ResourceType,
			e.ResourceID,
			e.Method,
			e.Path,
			e.StatusCode,
			e.ClientIP,
			e.Duration.Milliseconds(),
			e.CreatedAt,
		)
	}
}

// actionForMethod maps an HTTP method to an audit action
func actionForMethod(method string) AuditAction {
	switch method {
	case "POST":
		return AuditActionCreate
	case "PUT", "PATCH":
		return AuditActionUpdate
	case "DELETE":
		return AuditActionDelete
	default:
		return AuditActionOther
	}
}

// resourceFromPath extracts resource type and ID from an API path like
// /api/registrations/:id
func resourceFromPath(path string) (string, string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "api" {
		return "", ""
	}
	resourceType := parts[1]
	resourceID := ""
	if len(parts) > 2 {
		resourceID = parts[2]
	}
	return resourceType, resourceID
}

// Audit returns a middleware recording write operations to the audit log
func Audit(al *AuditLogger) gin.HandlerFunc {
	skipPaths := make(map[string]bool, len(al.config.SkipPaths))
	for _, p := range al.config.SkipPaths {
		skipPaths[p] = true
	}
	skipMethods := make(map[string]bool, len(al.config.SkipMethods))
	for _, m := range al.config.SkipMethods {
		skipMethods[m] = true
	}

	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] || skipMethods[c.Request.Method] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		userID, _ := GetUserID(c)
		email, _ := GetEmail(c)
		role, _ := GetRole(c)
		resourceType, resourceID := resourceFromPath(c.Request.URL.Path)

		al.Log(&AuditEntry{
			ID:           uuid.New().String(),
			UserID:       userID,
			UserEmail:    email,
			UserRole:     role,
			Action:       actionForMethod(c.Request.Method),
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			StatusCode:   c.Writer.Status(),
			ClientIP:     c.ClientIP(),
			Duration:     time.Since(start),
			CreatedAt:    time.Now(),
		})
	}
}
