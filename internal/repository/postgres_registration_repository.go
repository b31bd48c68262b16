package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/pkg/database"
)

const registrationColumns = `id, user_id, activity_id, status, payment_status,
	payment_amount, payment_date, registration_date,
	COALESCE(attendance_status, '') as attendance_status, COALESCE(notes, '') as notes,
	created_at, updated_at`

const qualifiedRegistrationColumns = `r.id, r.user_id, r.activity_id, r.status, r.payment_status,
	r.payment_amount, r.payment_date, r.registration_date,
	COALESCE(r.attendance_status, '') as attendance_status, COALESCE(r.notes, '') as notes,
	r.created_at, r.updated_at`

// PostgresRegistrationRepository implements RegistrationRepository using PostgreSQL
type PostgresRegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRegistrationRepository creates a new PostgresRegistrationRepository
func NewPostgresRegistrationRepository(pool *pgxpool.Pool) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{pool: pool}
}

func (r *PostgresRegistrationRepository) scanRegistration(row pgx.Row) (*domain.Registration, error) {
	registration := &domain.Registration{}
	var attendance string
	err := row.Scan(
		&registration.ID,
		&registration.UserID,
		&registration.ActivityID,
		&registration.Status,
		&registration.PaymentStatus,
		&registration.PaymentAmount,
		&registration.PaymentDate,
		&registration.RegistrationDate,
		&attendance,
		&registration.Notes,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	registration.AttendanceStatus = attendance
	return registration, nil
}

// CreateWithAdmission atomically claims a slot on the activity and inserts the
// registration. The conditional UPDATE only succeeds when the activity is
// upcoming and below capacity, so two concurrent requests can never both claim
// the last slot. When the claim touches zero rows the activity is re-read to
// report which precondition failed.
func (r *PostgresRegistrationRepository) CreateWithAdmission(ctx context.Context, registration *domain.Registration) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	claim := `
		UPDATE activities
		SET registered_count = registered_count + 1, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
			AND status = $3
			AND registered_count < capacity
	`
	result, err := tx.Exec(ctx, claim, registration.ActivityID, time.Now(), domain.ActivityStatusUpcoming)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return r.diagnoseAdmissionFailure(ctx, tx, registration.ActivityID)
	}

	insert := `
		INSERT INTO registrations (id, user_id, activity_id, status, payment_status,
			payment_amount, payment_date, registration_date, attendance_status, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, insert,
		registration.ID,
		registration.UserID,
		registration.ActivityID,
		registration.Status,
		registration.PaymentStatus,
		registration.PaymentAmount,
		registration.PaymentDate,
		registration.RegistrationDate,
		nullStringOrValue(registration.AttendanceStatus),
		registration.Notes,
		registration.CreatedAt,
		registration.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateRegistration
		}
		return err
	}

	return tx.Commit(ctx)
}

// diagnoseAdmissionFailure reports why the slot claim failed, checking the
// preconditions in a fixed order: existence, capacity, then status.
func (r *PostgresRegistrationRepository) diagnoseAdmissionFailure(ctx context.Context, tx pgx.Tx, activityID string) error {
	var status string
	var registeredCount, capacity int
	query := `SELECT status, registered_count, capacity FROM activities WHERE id = $1 AND deleted_at IS NULL`
	err := tx.QueryRow(ctx, query, activityID).Scan(&status, &registeredCount, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrActivityNotFound
		}
		return err
	}
	if registeredCount >= capacity {
		return ErrActivityFull
	}
	if status != domain.ActivityStatusUpcoming {
		return ErrActivityNotOpen
	}
	return fmt.Errorf("registration admission failed for activity %s", activityID)
}

// GetByID retrieves a registration by ID
func (r *PostgresRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return r.scanRegistration(r.pool.QueryRow(ctx, query, id))
}

// GetByUserAndActivity retrieves a registration for a (user, activity) pair
func (r *PostgresRegistrationRepository) GetByUserAndActivity(ctx context.Context, userID, activityID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 AND activity_id = $2`
	return r.scanRegistration(r.pool.QueryRow(ctx, query, userID, activityID))
}

// List retrieves registrations with pagination and filters. When Search is
// set, registrations are joined against users and activities to match the
// registrant's email or the activity title.
func (r *PostgresRegistrationRepository) List(ctx context.Context, filter RegistrationFilter) ([]*domain.Registration, int, error) {
	fromClause := "FROM registrations r"
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != "" {
		whereClause += fmt.Sprintf(" AND r.user_id = $%d", argIndex)
		args = append(args, filter.UserID)
		argIndex++
	}

	if filter.ActivityID != "" {
		whereClause += fmt.Sprintf(" AND r.activity_id = $%d", argIndex)
		args = append(args, filter.ActivityID)
		argIndex++
	}

	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND r.status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.PaymentStatus != "" {
		whereClause += fmt.Sprintf(" AND r.payment_status = $%d", argIndex)
		args = append(args, filter.PaymentStatus)
		argIndex++
	}

	if filter.Search != "" {
		fromClause = `FROM registrations r
			JOIN users u ON u.id = r.user_id
			JOIN activities a ON a.id = r.activity_id`
		whereClause += fmt.Sprintf(" AND (u.email ILIKE $%d OR a.title ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", fromClause, whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY r.registration_date DESC LIMIT $%d OFFSET $%d`,
		qualifiedRegistrationColumns, fromClause, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	registrations := make([]*domain.Registration, 0)
	for rows.Next() {
		registration, err := r.scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		registrations = append(registrations, registration)
	}

	return registrations, totalCount, rows.Err()
}

// Update updates a registration without touching the activity counter
func (r *PostgresRegistrationRepository) Update(ctx context.Context, registration *domain.Registration) error {
	query := `
		UPDATE registrations
		SET status = $2, payment_status = $3, payment_date = $4, attendance_status = $5,
			notes = $6, updated_at = $7
		WHERE id = $1
	`
	registration.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		registration.ID,
		registration.Status,
		registration.PaymentStatus,
		registration.PaymentDate,
		nullStringOrValue(registration.AttendanceStatus),
		registration.Notes,
		registration.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration not found")
	}
	return nil
}

// CancelWithRelease marks the registration cancelled and releases its slot on
// the activity in one transaction. The counter never drops below zero.
func (r *PostgresRegistrationRepository) CancelWithRelease(ctx context.Context, registrationID, activityID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cancel := `
		UPDATE registrations
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status <> $2
	`
	result, err := tx.Exec(ctx, cancel, registrationID, domain.RegistrationStatusCancelled, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration not found or already cancelled")
	}

	// The activity may have been deleted; releasing against zero rows is fine
	release := `
		UPDATE activities
		SET registered_count = GREATEST(registered_count - 1, 0), updated_at = $2
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, release, activityID, time.Now()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a registration; when releaseSlot is true the activity's
// counter is decremented in the same transaction, floored at zero
func (r *PostgresRegistrationRepository) Delete(ctx context.Context, registrationID, activityID string, releaseSlot bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, registrationID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration not found")
	}

	if releaseSlot {
		release := `
			UPDATE activities
			SET registered_count = GREATEST(registered_count - 1, 0), updated_at = $2
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, release, activityID, time.Now()); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// nullStringOrValue returns nil for empty strings, otherwise returns the value
func nullStringOrValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
