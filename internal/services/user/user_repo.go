package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const userColumns = `id, name, email, password_hash, role, is_active, reset_otp_code, reset_otp_expires, created_at, updated_at`

// UserRepo handles database operations for user accounts
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetActiveByEmail looks up an account by email, skipping deactivated ones.
func (r *UserRepo) GetActiveByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND is_active = TRUE
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create inserts a new account. A unique violation on email is reported as
// ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns + `
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, name, email, passwordHash, role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// List retrieves all accounts, newest first
func (r *UserRepo) List(ctx context.Context) ([]*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
	`
	var users []*User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListEmployees retrieves active employee accounts as a public projection
func (r *UserRepo) ListEmployees(ctx context.Context) ([]*EmployeeSummary, error) {
	query := `
		SELECT id, name, email
		FROM users
		WHERE role = 'employee' AND is_active = TRUE
		ORDER BY name ASC
	`
	var employees []*EmployeeSummary
	err := r.db.SelectContext(ctx, &employees, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// CountByRole returns the number of accounts holding the given role
func (r *UserRepo) CountByRole(ctx context.Context, role Role) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdateRole changes an account's role
func (r *UserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role Role) (*User, error) {
	query := `
		UPDATE users
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns + `
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, role, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &user, nil
}

// UpdateAccount applies a partial update to name, email and password hash
func (r *UserRepo) UpdateAccount(ctx context.Context, id uuid.UUID, name, email, passwordHash *string) (*User, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIndex := 1

	if name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *name)
		argIndex++
	}
	if email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, *email)
		argIndex++
	}
	if passwordHash != nil {
		setParts = append(setParts, fmt.Sprintf("password_hash = $%d", argIndex))
		args = append(args, *passwordHash)
		argIndex++
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), argIndex, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// SetResetOTP stores a password reset code and its expiry on the account
func (r *UserRepo) SetResetOTP(ctx context.Context, id uuid.UUID, code string, expires time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET reset_otp_code = $1, reset_otp_expires = $2, updated_at = NOW()
		WHERE id = $3
	`, code, expires, id)
	if err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	return nil
}

// ResetPassword replaces the password hash and clears any stored reset code
func (r *UserRepo) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $1, reset_otp_code = NULL, reset_otp_expires = NULL, updated_at = NOW()
		WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}
