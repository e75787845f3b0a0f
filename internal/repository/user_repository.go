package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quejasboyaca/complaint-service/internal/model"
)

// UserRepo mirrors the USERS table.  Only lookups and the session flag are
// needed; accounts are provisioned out of band.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByUsername fetches a user by trimmed username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id_user, username, password, session_status, created_at, updated_at FROM USERS WHERE username = ? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Password, &u.SessionStatus, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// SetSessionStatus flips the session flag for a user id.
func (r *UserRepo) SetSessionStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE USERS SET session_status = ?, updated_at = ? WHERE id_user = ?",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}
