package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, user_id, full_name, email, phone, city, address_line1, address_line2,
		state, postal_code, country, avatar_url, bio, designation, level, expected_salary,
		skills, certifications, work_experience, verified, verification_status, verification_notes,
		profile_complete, rating, total_jobs, applied_date, created_at, updated_at`

// ProfileRepo handles database operations for work profiles
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// CreateForUser provisions the empty profile row that backs a new account
func (r *ProfileRepo) CreateForUser(ctx context.Context, userID uuid.UUID, email string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, email)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, email)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1
	`
	var p Profile
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// List retrieves all profiles, newest first
func (r *ProfileRepo) List(ctx context.Context) ([]*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY created_at DESC
	`
	var profiles []*Profile
	err := r.db.SelectContext(ctx, &profiles, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Update applies a partial update to profile fields
func (r *ProfileRepo) Update(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIndex := 1

	addField := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.FullName != nil {
		addField("full_name", *req.FullName)
	}
	if req.Email != nil {
		addField("email", strings.ToLower(*req.Email))
	}
	if req.Phone != nil {
		addField("phone", *req.Phone)
	}
	if req.City != nil {
		addField("city", *req.City)
	}
	if req.AddressLine1 != nil {
		addField("address_line1", *req.AddressLine1)
	}
	if req.AddressLine2 != nil {
		addField("address_line2", *req.AddressLine2)
	}
	if req.State != nil {
		addField("state", *req.State)
	}
	if req.PostalCode != nil {
		addField("postal_code", *req.PostalCode)
	}
	if req.Country != nil {
		addField("country", *req.Country)
	}
	if req.AvatarURL != nil {
		addField("avatar_url", *req.AvatarURL)
	}
	if req.Bio != nil {
		addField("bio", *req.Bio)
	}
	if req.Designation != nil {
		addField("designation", *req.Designation)
	}
	if req.Level != nil {
		addField("level", *req.Level)
	}
	if req.ExpectedSalary != nil {
		addField("expected_salary", *req.ExpectedSalary)
	}
	if req.Skills != nil {
		addField("skills", *req.Skills)
	}
	if req.WorkExperience != nil {
		addField("work_experience", *req.WorkExperience)
	}

	args = append(args, userID)
	query := fmt.Sprintf(`
		UPDATE profiles
		SET %s
		WHERE user_id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), argIndex, profileColumns)

	var p Profile
	err := r.db.GetContext(ctx, &p, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &p, nil
}

// SetAvatarURL stores the served URL of an uploaded profile image
func (r *ProfileRepo) SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET avatar_url = $1, updated_at = NOW()
		WHERE user_id = $2
	`, url, userID)
	if err != nil {
		return fmt.Errorf("failed to set avatar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// AppendCertifications adds uploaded certificates to the existing list
func (r *ProfileRepo) AppendCertifications(ctx context.Context, userID uuid.UUID, certs Certifications) (*Profile, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := append(p.Certifications, certs...)

	query := `
		UPDATE profiles
		SET certifications = $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING ` + profileColumns + `
	`
	var updated Profile
	err = r.db.GetContext(ctx, &updated, query, merged, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to append certifications: %w", err)
	}
	return &updated, nil
}

// SetVerificationStatus updates the application review state. Verified is kept
// consistent with the status: only approved profiles are verified.
func (r *ProfileRepo) SetVerificationStatus(ctx context.Context, id uuid.UUID, status VerificationStatus, notes *string) (*Profile, error) {
	setParts := []string{
		"verification_status = $1",
		"verified = $2",
		"updated_at = NOW()",
	}
	args := []interface{}{status, status == VerificationApproved}
	argIndex := 3

	if notes != nil {
		setParts = append(setParts, fmt.Sprintf("verification_notes = $%d", argIndex))
		args = append(args, *notes)
		argIndex++
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE profiles
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), argIndex, profileColumns)

	var p Profile
	err := r.db.GetContext(ctx, &p, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update verification status: %w", err)
	}
	return &p, nil
}

// CountByVerificationStatus returns the number of profiles in a review state
func (r *ProfileRepo) CountByVerificationStatus(ctx context.Context, status VerificationStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles WHERE verification_status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// ListRecent retrieves the newest applications up to limit
func (r *ProfileRepo) ListRecent(ctx context.Context, limit int) ([]*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY created_at DESC
		LIMIT $1
	`
	var profiles []*Profile
	err := r.db.SelectContext(ctx, &profiles, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent profiles: %w", err)
	}
	return profiles, nil
}
