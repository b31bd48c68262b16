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

const commentColumns = `id, user_id, activity_id, content, COALESCE(rating, 0) as rating,
	created_at, updated_at`

// PostgresCommentRepository implements CommentRepository using PostgreSQL
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

func (r *PostgresCommentRepository) scanComment(row pgx.Row) (*domain.Comment, error) {
	comment := &domain.Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.UserID,
		&comment.ActivityID,
		&comment.Content,
		&comment.Rating,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

// Create creates a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, activity_id, content, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var rating interface{}
	if comment.Rating > 0 {
		rating = comment.Rating
	}
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.UserID,
		comment.ActivityID,
		comment.Content,
		rating,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return r.scanComment(r.pool.QueryRow(ctx, query, id))
}

// ListByActivity retrieves comments for an activity, newest first
func (r *PostgresCommentRepository) ListByActivity(ctx context.Context, activityID string, page, limit int) ([]*domain.Comment, int, error) {
	countQuery := `SELECT COUNT(*) FROM comments WHERE activity_id = $1`
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, activityID).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := `SELECT ` + commentColumns + ` FROM comments
		WHERE activity_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, activityID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		comment, err := r.scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}

	return comments, totalCount, rows.Err()
}

// List retrieves comments across all activities, newest first
func (r *PostgresCommentRepository) List(ctx context.Context, page, limit int) ([]*domain.Comment, int, error) {
	var totalCount int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := `SELECT ` + commentColumns + ` FROM comments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		comment, err := r.scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}

	return comments, totalCount, rows.Err()
}

// Update updates a comment
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `UPDATE comments SET content = $2, rating = $3, updated_at = $4 WHERE id = $1`
	comment.UpdatedAt = time.Now()
	var rating interface{}
	if comment.Rating > 0 {
		rating = comment.Rating
	}
	result, err := r.pool.Exec(ctx, query, comment.ID, comment.Content, rating, comment.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}

// Delete deletes a comment
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}
