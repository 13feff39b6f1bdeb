package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/database"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/database/types"
	"github.com/eslsoft/jyutcollab/internal/repository"
)

const userColumns = `id, name, email, password_hash, role, dialects, created_at, updated_at`

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	clone := *u
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	if clone.UpdatedAt.IsZero() {
		clone.UpdatedAt = now
	}

	query := rebind(r.db.Driver, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		clone.ID,
		clone.Name,
		clone.Email,
		clone.PasswordHash,
		string(clone.Role),
		types.StringsJSON(clone.Dialects),
		clone.CreatedAt,
		clone.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &clone, nil
}

func (r *userRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	clone := *u
	clone.UpdatedAt = time.Now().UTC()

	query := rebind(r.db.Driver, `UPDATE users SET
		name = ?, email = ?, password_hash = ?, role = ?, dialects = ?, updated_at = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		clone.Name,
		clone.Email,
		clone.PasswordHash,
		string(clone.Role),
		types.StringsJSON(clone.Dialects),
		clone.UpdatedAt,
		clone.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update user rows: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrUserNotFound
	}
	return &clone, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := rebind(r.db.Driver, `SELECT `+userColumns+` FROM users WHERE id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := rebind(r.db.Driver, `SELECT `+userColumns+` FROM users WHERE email = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func (r *userRepository) Stream(ctx context.Context, fn func(*entity.User) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return fmt.Errorf("stream users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return fmt.Errorf("scan user: %w", err)
		}
		if err := fn(u); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *userRepository) scanOne(row *sql.Row) (*entity.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u        entity.User
		role     string
		dialects types.StringsJSON
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &dialects, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.Dialects = []string(dialects)
	return &u, nil
}

// isUniqueViolation matches both the postgres 23505 error text and sqlite's
// UNIQUE constraint message without pinning to a driver error type.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
