package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// PostgresStore persists events in timeline_events and notes in
// timeline_event_notes (ON DELETE CASCADE).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const eventColumns = `id, application_id, application_type, title, description, event_type,
	status, event_date, created_by, created_at, updated_at`

func (s *PostgresStore) CreateEvent(ctx context.Context, e *models.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO timeline_events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, uuid.UUID(e.ID), uuid.UUID(e.ApplicationID), string(e.ApplicationType), e.Title, e.Description,
		string(e.EventType), string(e.Status), e.EventDate, nullableAdmin(e.CreatedBy), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create timeline event: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindEvent(ctx context.Context, eventID id.TimelineEventID) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM timeline_events WHERE id = $1`, uuid.UUID(eventID))
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("timeline event not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find timeline event: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) ListEvents(ctx context.Context, f models.Filter) ([]*models.Event, error) {
	var (
		where []string
		args  []any
	)
	if f.ApplicationID != nil {
		args = append(args, uuid.UUID(*f.ApplicationID))
		where = append(where, fmt.Sprintf("application_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.EventType != "" {
		args = append(args, string(f.EventType))
		where = append(where, fmt.Sprintf("event_type = $%d", len(args)))
	}
	query := `SELECT ` + eventColumns + ` FROM timeline_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY event_date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list timeline events: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timeline event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateEvent(ctx context.Context, e *models.Event) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE timeline_events
		SET application_type = $2, title = $3, description = $4, event_type = $5,
			status = $6, event_date = $7, updated_at = $8
		WHERE id = $1
	`, uuid.UUID(e.ID), string(e.ApplicationType), e.Title, e.Description, string(e.EventType),
		string(e.Status), e.EventDate, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update timeline event: %w", err)
	}
	return requireOneRow(res, "timeline event")
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, eventID id.TimelineEventID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM timeline_events WHERE id = $1`, uuid.UUID(eventID))
	if err != nil {
		return fmt.Errorf("delete timeline event: %w", err)
	}
	return requireOneRow(res, "timeline event")
}

func (s *PostgresStore) BulkUpdateStatus(ctx context.Context, ids []id.TimelineEventID, status models.Status, at time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE timeline_events SET status = $2, updated_at = $3 WHERE id = ANY($1::uuid[])
	`, idStrings(ids), string(status), at)
	if err != nil {
		return 0, fmt.Errorf("bulk update timeline events: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *PostgresStore) BulkDelete(ctx context.Context, ids []id.TimelineEventID) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM timeline_events WHERE id = ANY($1::uuid[])`, idStrings(ids))
	if err != nil {
		return 0, fmt.Errorf("bulk delete timeline events: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *PostgresStore) CreateNote(ctx context.Context, n *models.Note) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO timeline_event_notes (id, event_id, admin_id, body, created_at)
		SELECT $1, $2, $3, $4, $5 WHERE EXISTS (SELECT 1 FROM timeline_events WHERE id = $2)
	`, uuid.UUID(n.ID), uuid.UUID(n.EventID), uuid.UUID(n.AdminID), n.Body, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create timeline note: %w", err)
	}
	return requireOneRow(res, "timeline event")
}

func (s *PostgresStore) ListNotes(ctx context.Context, eventID id.TimelineEventID) ([]*models.Note, error) {
	if _, err := s.FindEvent(ctx, eventID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, admin_id, body, created_at
		FROM timeline_event_notes WHERE event_id = $1 ORDER BY created_at ASC
	`, uuid.UUID(eventID))
	if err != nil {
		return nil, fmt.Errorf("list timeline notes: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Note, 0)
	for rows.Next() {
		var (
			n                     models.Note
			noteID, evID, adminID uuid.UUID
		)
		if err := rows.Scan(&noteID, &evID, &adminID, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan timeline note: %w", err)
		}
		n.ID, n.EventID, n.AdminID = id.NoteID(noteID), id.TimelineEventID(evID), id.AdminID(adminID)
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteNote(ctx context.Context, eventID id.TimelineEventID, noteID id.NoteID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM timeline_event_notes WHERE id = $1 AND event_id = $2`,
		uuid.UUID(noteID), uuid.UUID(eventID))
	if err != nil {
		return fmt.Errorf("delete timeline note: %w", err)
	}
	return requireOneRow(res, "note")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*models.Event, error) {
	var (
		e               models.Event
		eventID, appID  uuid.UUID
		appType, evType string
		status          string
		createdBy       uuid.NullUUID
	)
	if err := row.Scan(&eventID, &appID, &appType, &e.Title, &e.Description, &evType,
		&status, &e.EventDate, &createdBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.ID = id.TimelineEventID(eventID)
	e.ApplicationID = id.ApplicationID(appID)
	e.ApplicationType = models.ApplicationType(appType)
	e.EventType = models.EventType(evType)
	e.Status = models.Status(status)
	if createdBy.Valid {
		admin := id.AdminID(createdBy.UUID)
		e.CreatedBy = &admin
	}
	return &e, nil
}

func nullableAdmin(a *id.AdminID) any {
	if a == nil {
		return nil
	}
	return uuid.UUID(*a)
}

func idStrings(ids []id.TimelineEventID) []string {
	out := make([]string, len(ids))
	for i, eventID := range ids {
		out[i] = eventID.String()
	}
	return out
}

func requireOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s not found: %w", what, sentinel.ErrNotFound)
	}
	return nil
}
