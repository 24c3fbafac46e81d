package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/database"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// PostgresStore persists admins in the admin_users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const adminColumns = `id, email, password_hash, first_name, last_name, role, department,
	is_active, permissions, created_at, updated_at, last_login`

func (s *PostgresStore) Create(ctx context.Context, a *models.Admin) error {
	perms, err := marshalPermissions(a.Permissions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_users (`+adminColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, uuid.UUID(a.ID), models.NormalizeEmail(a.Email), a.PasswordHash, a.FirstName, a.LastName,
		string(a.Role), a.Department, a.IsActive, perms, a.CreatedAt, a.UpdatedAt, a.LastLogin)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("create admin: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, adminID id.AdminID) (*models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE id = $1`, uuid.UUID(adminID))
	return scanOne(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE email = $1`, models.NormalizeEmail(email))
	return scanOne(row)
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]*models.Admin, error) {
	var (
		where []string
		args  []any
	)
	if f.Role != nil {
		args = append(args, string(*f.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	query := `SELECT ` + adminColumns + ` FROM admin_users`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Admin, 0)
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, a *models.Admin) error {
	perms, err := marshalPermissions(a.Permissions)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE admin_users
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5, role = $6,
		    department = $7, is_active = $8, permissions = $9, updated_at = $10
		WHERE id = $1
	`, uuid.UUID(a.ID), models.NormalizeEmail(a.Email), a.PasswordHash, a.FirstName, a.LastName,
		string(a.Role), a.Department, a.IsActive, perms, a.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("update admin: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("update admin: %w", err)
	}
	return requireOneRow(res, "update admin")
}

func (s *PostgresStore) RecordLogin(ctx context.Context, adminID id.AdminID, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE admin_users SET last_login = $2 WHERE id = $1`, uuid.UUID(adminID), at)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return requireOneRow(res, "record login")
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM admin_users
	`).Scan(&st.Total, &st.Active)
	if err != nil {
		return Stats{}, fmt.Errorf("admin stats: %w", err)
	}
	return st, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (*models.Admin, error) {
	a, err := scanAdmin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return a, nil
}

func scanAdmin(row scanner) (*models.Admin, error) {
	var (
		a          models.Admin
		rawID      uuid.UUID
		role       string
		department sql.NullString
		perms      []byte
		lastLogin  sql.NullTime
	)
	if err := row.Scan(&rawID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &role,
		&department, &a.IsActive, &perms, &a.CreatedAt, &a.UpdatedAt, &lastLogin); err != nil {
		return nil, err
	}
	a.ID = id.AdminID(rawID)
	a.Role = models.Role(role)
	if department.Valid {
		d := department.String
		a.Department = &d
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &a.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return &a, nil
}

// marshalPermissions maps a nil override to SQL NULL.
func marshalPermissions(p map[string]bool) (any, error) {
	if p == nil {
		return nil, nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode permissions: %w", err)
	}
	return raw, nil
}

func requireOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: admin not found: %w", op, sentinel.ErrNotFound)
	}
	return nil
}
