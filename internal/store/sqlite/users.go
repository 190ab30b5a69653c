package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/readupapp/readup-server/internal/domain"
	"github.com/readupapp/readup-server/internal/normalize"
	"github.com/readupapp/readup-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, username, email, password_hash, created_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	var createdAt string

	err := scanner.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. Username and email uniqueness is
// case-insensitive via the *_lower indexed columns.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, username_lower, email, email_lower, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		normalize.Username(user.Username),
		user.Email,
		normalize.Email(user.Email),
		user.PasswordHash,
		formatTime(user.CreatedAt),
	)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "users.username_lower"):
			return store.ErrUsernameExists
		case strings.Contains(msg, "users.email_lower"):
			return store.ErrEmailExists
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername retrieves a user by username (case-insensitive).
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username_lower = ?`,
		normalize.Username(username))

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email address (case-insensitive).
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`,
		normalize.Email(email))

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
