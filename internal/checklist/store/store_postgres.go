package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const columns = `id, visa_type, title, description, is_required, sort_order, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, item *models.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklist_items (`+columns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.UUID(item.ID), string(item.VisaType), item.Title, item.Description, item.IsRequired,
		item.SortOrder, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create checklist item: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, itemID id.ChecklistItemID) (*models.Item, error) {
	item, err := scan(s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM checklist_items WHERE id = $1`, uuid.UUID(itemID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checklist item not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find checklist item: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) List(ctx context.Context, visaType models.VisaType) ([]*models.Item, error) {
	query := `SELECT ` + columns + ` FROM checklist_items`
	var args []any
	if visaType != "" {
		query += ` WHERE visa_type = $1`
		args = append(args, string(visaType))
	}
	query += ` ORDER BY sort_order ASC, title ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan checklist item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE checklist_items
		SET visa_type = $2, title = $3, description = $4, is_required = $5, sort_order = $6, updated_at = $7
		WHERE id = $1
	`, uuid.UUID(item.ID), string(item.VisaType), item.Title, item.Description, item.IsRequired,
		item.SortOrder, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update checklist item: %w", err)
	}
	return oneRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, itemID id.ChecklistItemID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = $1`, uuid.UUID(itemID))
	if err != nil {
		return fmt.Errorf("delete checklist item: %w", err)
	}
	return oneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Item, error) {
	var (
		item     models.Item
		itemID   uuid.UUID
		visaType string
	)
	if err := row.Scan(&itemID, &visaType, &item.Title, &item.Description, &item.IsRequired,
		&item.SortOrder, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.ID = id.ChecklistItemID(itemID)
	item.VisaType = models.VisaType(visaType)
	return &item, nil
}

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("checklist item not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
