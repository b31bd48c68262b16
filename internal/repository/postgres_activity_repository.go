package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sportactiv/sportactiv/internal/domain"
)

const activityColumns = `id, organizer_id, category_id, title,
	COALESCE(description, '') as description, location, date, duration_minutes,
	capacity, registered_count, price, COALESCE(image_url, '') as image_url,
	status, created_at, updated_at, deleted_at`

// PostgresActivityRepository implements ActivityRepository using PostgreSQL
type PostgresActivityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresActivityRepository creates a new PostgresActivityRepository
func NewPostgresActivityRepository(pool *pgxpool.Pool) *PostgresActivityRepository {
	return &PostgresActivityRepository{pool: pool}
}

func (r *PostgresActivityRepository) scanActivity(row pgx.Row) (*domain.Activity, error) {
	activity := &domain.Activity{}
	err := row.Scan(
		&activity.ID,
		&activity.OrganizerID,
		&activity.CategoryID,
		&activity.Title,
		&activity.Description,
		&activity.Location,
		&activity.Date,
		&activity.DurationMinutes,
		&activity.Capacity,
		&activity.RegisteredCount,
		&activity.Price,
		&activity.ImageURL,
		&activity.Status,
		&activity.CreatedAt,
		&activity.UpdatedAt,
		&activity.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return activity, nil
}

// Create creates a new activity
func (r *PostgresActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, organizer_id, category_id, title, description, location,
			date, duration_minutes, capacity, registered_count, price, image_url, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.OrganizerID,
		activity.CategoryID,
		activity.Title,
		activity.Description,
		activity.Location,
		activity.Date,
		activity.DurationMinutes,
		activity.Capacity,
		activity.RegisteredCount,
		activity.Price,
		activity.ImageURL,
		activity.Status,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	return err
}

// GetByID retrieves an activity by ID
func (r *PostgresActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1 AND deleted_at IS NULL`
	return r.scanActivity(r.pool.QueryRow(ctx, query, id))
}

// List retrieves activities with pagination and filters, sorted by date ascending
func (r *PostgresActivityRepository) List(ctx context.Context, filter ActivityFilter) ([]*domain.Activity, int, error) {
	whereClause := "WHERE deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if filter.CategoryID != "" {
		whereClause += fmt.Sprintf(" AND category_id = $%d", argIndex)
		args = append(args, filter.CategoryID)
		argIndex++
	}

	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.OrganizerID != "" {
		whereClause += fmt.Sprintf(" AND organizer_id = $%d", argIndex)
		args = append(args, filter.OrganizerID)
		argIndex++
	}

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)",
			argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM activities %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM activities %s ORDER BY date ASC LIMIT $%d OFFSET $%d`,
		activityColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity, err := r.scanActivity(rows)
		if err != nil {
			return nil, 0, err
		}
		activities = append(activities, activity)
	}

	return activities, totalCount, rows.Err()
}

// Update updates an activity. The registered_count column is deliberately
// excluded: only the registration workflow mutates it.
func (r *PostgresActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	query := `
		UPDATE activities
		SET title = $2, description = $3, location = $4, date = $5, duration_minutes = $6,
			capacity = $7, price = $8, category_id = $9, image_url = $10, status = $11,
			updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`
	activity.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.Title,
		activity.Description,
		activity.Location,
		activity.Date,
		activity.DurationMinutes,
		activity.Capacity,
		activity.Price,
		activity.CategoryID,
		activity.ImageURL,
		activity.Status,
		activity.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("activity not found or already deleted")
	}
	return nil
}

// UpdateStatus updates only an activity's status
func (r *PostgresActivityRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE activities SET status = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("activity not found or already deleted")
	}
	return nil
}

// Delete soft-deletes an activity and removes its registrations and comments.
// Dependent rows go in the same transaction so no orphans remain; the activity
// row itself is tombstoned, which also closes the admission path since every
// activity query filters on deleted_at IS NULL.
func (r *PostgresActivityRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM registrations WHERE activity_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE activity_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE activities SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("activity not found")
	}

	return tx.Commit(ctx)
}
