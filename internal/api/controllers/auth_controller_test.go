package controllers

import (
	"context"
	"testing"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/fasthttp/router"
	"github.com/fieldserve/backoffice/internal/api/authenticator"
	"github.com/fieldserve/backoffice/internal/config"
	"github.com/fieldserve/backoffice/internal/services"
	user2 "github.com/fieldserve/backoffice/internal/services/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

// stubAccountStore backs the auth routes with a single fixed account.
type stubAccountStore struct {
	account        *user2.User
	resetPasswords int
}

func (s *stubAccountStore) GetActiveByEmail(ctx context.Context, email string) (*user2.User, error) {
	if s.account != nil && s.account.Email == email {
		return s.account, nil
	}
	return nil, user2.ErrUserNotFound
}

func (s *stubAccountStore) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.resetPasswords++
	return nil
}

func (s *stubAccountStore) Create(ctx context.Context, name, email, passwordHash string, role user2.Role) (*user2.User, error) {
	return nil, user2.ErrUserNotFound
}

func (s *stubAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*user2.User, error) {
	return nil, user2.ErrUserNotFound
}

func (s *stubAccountStore) List(ctx context.Context) ([]*user2.User, error) {
	return nil, nil
}

func (s *stubAccountStore) ListEmployees(ctx context.Context) ([]*user2.EmployeeSummary, error) {
	return nil, nil
}

func (s *stubAccountStore) CountByRole(ctx context.Context, role user2.Role) (int, error) {
	return 0, nil
}

func (s *stubAccountStore) UpdateRole(ctx context.Context, id uuid.UUID, role user2.Role) (*user2.User, error) {
	return nil, user2.ErrUserNotFound
}

func (s *stubAccountStore) SetResetOTP(ctx context.Context, id uuid.UUID, code string, expires time.Time) error {
	return nil
}

func newAuthTestRouter(account *user2.User) (*router.Router, *stubAccountStore) {
	store := &stubAccountStore{account: account}
	conf := &config.Config{JWT_SECRET: "test-secret", JWT_EXPIRES_DAYS: 1}
	svc := &services.Services{User: user2.NewUserService(store, nil, nil)}

	r := router.New()
	RegisterAuthRoutes(r, svc, authenticator.New(conf), conf)
	return r, store
}

func postJSON(r *router.Router, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI(uri)
	ctx.Request.Header.SetContentType("application/json")
	ctx.Request.SetBodyString(body)
	r.Handler(ctx)
	return ctx
}

func accountWithResetCode(code string) *user2.User {
	expires := time.Now().Add(5 * time.Minute)
	return &user2.User{
		ID:              uuid.New(),
		Email:           "worker@example.com",
		IsActive:        true,
		ResetOtpCode:    &code,
		ResetOtpExpires: &expires,
	}
}

func TestResetWithOTPAcceptsPasswordKey(t *testing.T) {
	r, store := newAuthTestRouter(accountWithResetCode("123456"))

	ctx := postJSON(r, "/api/auth/reset-with-otp",
		`{"email":"worker@example.com","otp":"123456","password":"NewPass1!"}`)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, 1, store.resetPasswords)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Password reset successful", body.Message)
}

func TestResetWithOTPAcceptsNewPasswordAlias(t *testing.T) {
	r, store := newAuthTestRouter(accountWithResetCode("123456"))

	ctx := postJSON(r, "/api/auth/reset-with-otp",
		`{"email":"worker@example.com","otp":"123456","newPassword":"NewPass1!"}`)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, 1, store.resetPasswords)
}

func TestResetWithOTPMissingPassword(t *testing.T) {
	r, store := newAuthTestRouter(accountWithResetCode("123456"))

	ctx := postJSON(r, "/api/auth/reset-with-otp",
		`{"email":"worker@example.com","otp":"123456"}`)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, 0, store.resetPasswords)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Email, otp and password are required", body.Message)
}

func TestResetWithOTPWrongCode(t *testing.T) {
	r, store := newAuthTestRouter(accountWithResetCode("123456"))

	ctx := postJSON(r, "/api/auth/reset-with-otp",
		`{"email":"worker@example.com","otp":"654321","password":"NewPass1!"}`)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, 0, store.resetPasswords)
}
