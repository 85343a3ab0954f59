package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) GetActiveByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) ListEmployees(ctx context.Context) ([]*EmployeeSummary, error) {
	args := m.Called(ctx)
	if e := args.Get(0); e != nil {
		return e.([]*EmployeeSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) CountByRole(ctx context.Context, role Role) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) UpdateRole(ctx context.Context, id uuid.UUID, role Role) (*User, error) {
	args := m.Called(ctx, id, role)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) SetResetOTP(ctx context.Context, id uuid.UUID, code string, expires time.Time) error {
	return m.Called(ctx, id, code, expires).Error(0)
}

func (m *mockStore) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendPasswordResetOTP(ctx context.Context, to, code string) error {
	return m.Called(ctx, to, code).Error(0)
}

func TestRequestPasswordOTPUnknownEmailReturnsNil(t *testing.T) {
	store := new(mockStore)
	mail := new(mockMailer)
	svc := NewUserService(store, nil, mail)

	store.On("GetActiveByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound).Once()

	err := svc.RequestPasswordOTP(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "SetResetOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mail.AssertNotCalled(t, "SendPasswordResetOTP", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestPasswordOTPMailerFailureIsSwallowed(t *testing.T) {
	store := new(mockStore)
	mail := new(mockMailer)
	svc := NewUserService(store, nil, mail)

	account := &User{ID: uuid.New(), Email: "worker@example.com", IsActive: true}

	store.On("GetActiveByEmail", mock.Anything, "worker@example.com").Return(account, nil).Once()
	store.On("SetResetOTP", mock.Anything, account.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	mail.On("SendPasswordResetOTP", mock.Anything, account.Email, mock.AnythingOfType("string")).Return(errors.New("smtp unreachable")).Once()

	err := svc.RequestPasswordOTP(context.Background(), "worker@example.com")

	assert.NoError(t, err)
	store.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestRequestPasswordOTPEmailsThePersistedCode(t *testing.T) {
	store := new(mockStore)
	mail := new(mockMailer)
	svc := NewUserService(store, nil, mail)

	account := &User{ID: uuid.New(), Email: "worker@example.com", IsActive: true}

	var storedCode string
	var storedExpiry time.Time
	store.On("GetActiveByEmail", mock.Anything, "worker@example.com").Return(account, nil).Once()
	store.On("SetResetOTP", mock.Anything, account.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedCode = args.String(2)
			storedExpiry = args.Get(3).(time.Time)
		}).Return(nil).Once()

	var sentCode string
	mail.On("SendPasswordResetOTP", mock.Anything, account.Email, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			sentCode = args.String(2)
		}).Return(nil).Once()

	err := svc.RequestPasswordOTP(context.Background(), " Worker@Example.com ")

	require.NoError(t, err)
	store.AssertExpectations(t)
	mail.AssertExpectations(t)

	assert.Len(t, storedCode, 6)
	assert.Equal(t, storedCode, sentCode)
	assert.WithinDuration(t, time.Now().Add(ResetOTPTTL), storedExpiry, 5*time.Second)
}

func TestRequestPasswordOTPPersistFailureSurfaces(t *testing.T) {
	store := new(mockStore)
	mail := new(mockMailer)
	svc := NewUserService(store, nil, mail)

	account := &User{ID: uuid.New(), Email: "worker@example.com", IsActive: true}

	store.On("GetActiveByEmail", mock.Anything, "worker@example.com").Return(account, nil).Once()
	store.On("SetResetOTP", mock.Anything, account.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(errors.New("db down")).Once()

	err := svc.RequestPasswordOTP(context.Background(), "worker@example.com")

	assert.Error(t, err)
	mail.AssertNotCalled(t, "SendPasswordResetOTP", mock.Anything, mock.Anything, mock.Anything)
}
