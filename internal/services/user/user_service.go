package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Store is the persistence surface the service needs from the account repo.
type Store interface {
	Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetActiveByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListEmployees(ctx context.Context) ([]*EmployeeSummary, error)
	CountByRole(ctx context.Context, role Role) (int, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (*User, error)
	SetResetOTP(ctx context.Context, id uuid.UUID, code string, expires time.Time) error
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// ProfileCreator provisions the work profile that backs every account.
type ProfileCreator interface {
	CreateForUser(ctx context.Context, userID uuid.UUID, email string) error
}

// Mailer delivers password reset codes. Delivery failures are logged and
// swallowed so the reset endpoint stays enumeration-resistant.
type Mailer interface {
	SendPasswordResetOTP(ctx context.Context, to, code string) error
}

type UserService struct {
	repo     Store
	profiles ProfileCreator
	mailer   Mailer
}

func NewUserService(repo Store, profiles ProfileCreator, mailer Mailer) *UserService {
	return &UserService{repo: repo, profiles: profiles, mailer: mailer}
}

// Register creates an employee account plus its empty work profile. The role
// in the request payload is ignored; self-registration always yields an
// employee.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, req.Name, email, string(hash), RoleEmployee)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.CreateForUser(ctx, user.ID, user.Email); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials against active accounts. Unknown email,
// deactivated account and wrong password all collapse into
// ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetActiveByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) ListEmployees(ctx context.Context) ([]*EmployeeSummary, error) {
	return s.repo.ListEmployees(ctx)
}

// UpdateRole changes an account's role after checking the single-admin
// invariant.
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, requested Role) (*User, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	adminCount, err := s.repo.CountByRole(ctx, RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := CanAssignRole(adminCount, target, requested); err != nil {
		return nil, err
	}

	return s.repo.UpdateRole(ctx, id, requested)
}

// RequestPasswordOTP generates and emails a reset code for the account. It
// returns nil for unknown or deactivated emails and on delivery failure, so
// the response never reveals whether the account exists.
func (s *UserService) RequestPasswordOTP(ctx context.Context, email string) error {
	user, err := s.repo.GetActiveByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	code, err := GenerateResetOTP()
	if err != nil {
		return err
	}

	if err := s.repo.SetResetOTP(ctx, user.ID, code, time.Now().Add(ResetOTPTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetOTP(ctx, user.Email, code); err != nil {
		slog.Warn("failed to deliver password reset code", "email", user.Email, "error", err)
	}

	return nil
}

// ResetPasswordWithOTP verifies the submitted code and replaces the password.
// Every failure mode surfaces as ErrOTPInvalid.
func (s *UserService) ResetPasswordWithOTP(ctx context.Context, email, code, newPassword string) error {
	user, err := s.repo.GetActiveByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrOTPInvalid
		}
		return err
	}

	if err := user.CheckResetOTP(code, time.Now()); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.ResetPassword(ctx, user.ID, string(hash))
}
