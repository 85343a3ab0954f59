package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/fieldserve/backoffice/internal/services/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidVerificationStatus = errors.New("invalid status. Must be pending, approved, or rejected")

type ProfileService struct {
	repo  *ProfileRepo
	users *user.UserRepo
}

func NewProfileService(repo *ProfileRepo, users *user.UserRepo) *ProfileService {
	return &ProfileService{repo: repo, users: users}
}

// CreateForUser provisions the profile row backing a new account
func (s *ProfileService) CreateForUser(ctx context.Context, userID uuid.UUID, email string) error {
	return s.repo.CreateForUser(ctx, userID, email)
}

func (s *ProfileService) GetMine(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// UpdateMine applies a self-service PATCH. Account fields (name, email,
// password) flow through to the users table; fullName doubles as the account
// display name. Everything else lands on the profile row.
func (s *ProfileService) UpdateMine(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error) {
	name := req.Name
	if req.FullName != nil {
		name = req.FullName
	}

	var email *string
	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		email = &lowered
	}

	var passwordHash *string
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		passwordHash = &hashed
	}

	if name != nil || email != nil || passwordHash != nil {
		if _, err := s.users.UpdateAccount(ctx, userID, name, email, passwordHash); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, userID, req)
}

// GetCompletion scores the caller's profile. A missing profile scores zero
// rather than erroring.
func (s *ProfileService) GetCompletion(ctx context.Context, userID uuid.UUID) (Completion, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return ComputeCompletion(nil), nil
		}
		return Completion{}, err
	}
	return ComputeCompletion(p), nil
}

// SetAvatar stores the served URL of an uploaded profile image
func (s *ProfileService) SetAvatar(ctx context.Context, userID uuid.UUID, url string) error {
	return s.repo.SetAvatarURL(ctx, userID, url)
}

// AppendCertifications adds uploaded certificates to the caller's profile
func (s *ProfileService) AppendCertifications(ctx context.Context, userID uuid.UUID, certs Certifications) (*Profile, error) {
	return s.repo.AppendCertifications(ctx, userID, certs)
}

// ListApplications builds the admin review projection of every profile,
// falling back to the account's name and email when the profile fields are
// empty.
func (s *ProfileService) ListApplications(ctx context.Context) ([]*EmployeeApplication, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	apps := make([]*EmployeeApplication, 0, len(profiles))
	for _, p := range profiles {
		app := &EmployeeApplication{
			ID:               p.ID,
			Name:             "Unknown",
			Skills:           p.Skills,
			ExperienceLevel:  "Beginner",
			Rating:           p.Rating,
			PreviousJobCount: p.TotalJobs,
			Status:           string(p.VerificationStatus),
			AppliedDate:      p.CreatedAt,
			Location:         "Unknown",
			AvatarURL:        p.AvatarURL,
			Bio:              p.Bio,
			Verified:         p.Verified,
		}

		if p.FullName != nil && *p.FullName != "" {
			app.Name = *p.FullName
		}
		if p.Email != nil {
			app.Email = *p.Email
		}
		if p.Phone != nil {
			app.Phone = *p.Phone
		}
		if p.Level != nil && *p.Level != "" {
			app.ExperienceLevel = *p.Level
		}
		if p.ExpectedSalary != nil {
			app.ExpectedSalary = *p.ExpectedSalary
		}
		if p.City != nil && *p.City != "" {
			app.Location = *p.City
		}

		certNames := make([]string, 0, len(p.Certifications))
		for _, cert := range p.Certifications {
			certNames = append(certNames, cert.Name)
		}
		app.Certifications = certNames

		if app.Name == "Unknown" || app.Email == "" {
			if account, err := s.users.GetByID(ctx, p.UserID); err == nil {
				if app.Name == "Unknown" {
					app.Name = account.Name
				}
				if app.Email == "" {
					app.Email = account.Email
				}
			}
		}

		apps = append(apps, app)
	}

	return apps, nil
}

// SetVerificationStatus moves an application through review
func (s *ProfileService) SetVerificationStatus(ctx context.Context, profileID uuid.UUID, status VerificationStatus, notes *string) (*Profile, error) {
	if !status.Valid() {
		return nil, ErrInvalidVerificationStatus
	}
	return s.repo.SetVerificationStatus(ctx, profileID, status, notes)
}
