package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/feedback/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const columns = `id, name, email, rating, message, status, created_at, moderated_by, moderated_at`

func (s *PostgresStore) Create(ctx context.Context, f *models.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (`+columns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(f.ID), f.Name, f.Email, f.Rating, f.Message, string(f.Status), f.CreatedAt,
		moderator(f.ModeratedBy), f.ModeratedAt)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, feedbackID id.FeedbackID) (*models.Feedback, error) {
	f, err := scan(s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM feedback WHERE id = $1`, uuid.UUID(feedbackID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feedback not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return f, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Feedback, error) {
	query := `SELECT ` + columns + ` FROM feedback`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Feedback, 0)
	for rows.Next() {
		f, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, f *models.Feedback) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE feedback SET status = $2, moderated_by = $3, moderated_at = $4 WHERE id = $1
	`, uuid.UUID(f.ID), string(f.Status), moderator(f.ModeratedBy), f.ModeratedAt)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return oneRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, feedbackID id.FeedbackID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, uuid.UUID(feedbackID))
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return oneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Feedback, error) {
	var (
		f           models.Feedback
		feedbackID  uuid.UUID
		status      string
		moderatedBy uuid.NullUUID
		moderatedAt sql.NullTime
	)
	if err := row.Scan(&feedbackID, &f.Name, &f.Email, &f.Rating, &f.Message, &status,
		&f.CreatedAt, &moderatedBy, &moderatedAt); err != nil {
		return nil, err
	}
	f.ID = id.FeedbackID(feedbackID)
	f.Status = models.Status(status)
	if moderatedBy.Valid {
		admin := id.AdminID(moderatedBy.UUID)
		f.ModeratedBy = &admin
	}
	if moderatedAt.Valid {
		at := moderatedAt.Time
		f.ModeratedAt = &at
	}
	return &f, nil
}

func moderator(a *id.AdminID) any {
	if a == nil {
		return nil
	}
	return uuid.UUID(*a)
}

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("feedback not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
