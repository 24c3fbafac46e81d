package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/database"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// PostgresStore persists sessions in admin_sessions.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const sessionColumns = `s.id, s.admin_id, s.session_token, s.expires_at, s.is_active,
	s.last_activity, s.created_at, s.user_agent, s.device_label, s.ip_address`

func (s *PostgresStore) Create(ctx context.Context, sess *models.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_sessions (id, admin_id, session_token, expires_at, is_active,
			last_activity, created_at, user_agent, device_label, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.UUID(sess.ID), uuid.UUID(sess.AdminID), sess.Token, sess.ExpiresAt, sess.IsActive,
		sess.LastActivity, sess.CreatedAt, sess.UserAgent, sess.DeviceLabel, sess.IPAddress)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("create session: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindActiveByToken performs the session lookup and admin join in one query.
// A dangling admin_id yields a nil Admin rather than an error.
func (s *PostgresStore) FindActiveByToken(ctx context.Context, token string) (*models.SessionWithAdmin, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`,
			a.id, a.email, a.first_name, a.last_name, a.role, a.department, a.is_active, a.permissions
		FROM admin_sessions s
		LEFT JOIN admin_users a ON a.id = s.admin_id
		WHERE s.session_token = $1 AND s.is_active
	`, token)

	var (
		out        models.SessionWithAdmin
		sid, aid   uuid.UUID
		joinedID   uuid.NullUUID
		email      sql.NullString
		first      sql.NullString
		last       sql.NullString
		role       sql.NullString
		department sql.NullString
		active     sql.NullBool
		perms      []byte
	)
	err := row.Scan(&sid, &aid, &out.Session.Token, &out.Session.ExpiresAt, &out.Session.IsActive,
		&out.Session.LastActivity, &out.Session.CreatedAt, &out.Session.UserAgent,
		&out.Session.DeviceLabel, &out.Session.IPAddress,
		&joinedID, &email, &first, &last, &role, &department, &active, &perms)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find session by token: %w", err)
	}
	out.Session.ID = id.SessionID(sid)
	out.Session.AdminID = id.AdminID(aid)

	if joinedID.Valid {
		a := &models.Admin{
			ID:        id.AdminID(joinedID.UUID),
			Email:     email.String,
			FirstName: first.String,
			LastName:  last.String,
			Role:      models.Role(role.String),
			IsActive:  active.Bool,
		}
		if department.Valid {
			d := department.String
			a.Department = &d
		}
		if len(perms) > 0 {
			if err := json.Unmarshal(perms, &a.Permissions); err != nil {
				return nil, fmt.Errorf("decode permissions: %w", err)
			}
		}
		out.Admin = a
	}
	return &out, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	var (
		sess     models.Session
		sid, aid uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM admin_sessions s WHERE s.id = $1`,
		uuid.UUID(sessionID)).Scan(&sid, &aid, &sess.Token, &sess.ExpiresAt, &sess.IsActive,
		&sess.LastActivity, &sess.CreatedAt, &sess.UserAgent, &sess.DeviceLabel, &sess.IPAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find session by id: %w", err)
	}
	sess.ID = id.SessionID(sid)
	sess.AdminID = id.AdminID(aid)
	return &sess, nil
}

func (s *PostgresStore) InvalidateSession(ctx context.Context, sessionID id.SessionID) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE admin_sessions SET is_active = false WHERE id = $1 AND is_active`, uuid.UUID(sessionID)); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

func (s *PostgresStore) InvalidateByToken(ctx context.Context, token string) (int, error) {
	return s.execCount(ctx, "invalidate by token",
		`UPDATE admin_sessions SET is_active = false WHERE session_token = $1 AND is_active`, token)
}

func (s *PostgresStore) InvalidateByAdmin(ctx context.Context, adminID id.AdminID) (int, error) {
	return s.execCount(ctx, "invalidate by admin",
		`UPDATE admin_sessions SET is_active = false WHERE admin_id = $1 AND is_active`, uuid.UUID(adminID))
}

func (s *PostgresStore) TouchActivity(ctx context.Context, token string, at time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE admin_sessions SET last_activity = $2 WHERE session_token = $1 AND is_active`, token, at); err != nil {
		return fmt.Errorf("touch activity: %w", err)
	}
	return nil
}

func (s *PostgresStore) InvalidateExpired(ctx context.Context, now time.Time) (int, error) {
	return s.execCount(ctx, "invalidate expired",
		`UPDATE admin_sessions SET is_active = false WHERE is_active AND expires_at < $1`, now)
}

func (s *PostgresStore) CountActive(ctx context.Context, now time.Time) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_sessions WHERE is_active AND expires_at >= $1`, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active sessions: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) execCount(ctx context.Context, op, query string, args ...any) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}
