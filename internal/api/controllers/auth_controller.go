package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/fieldserve/backoffice/internal/api/authenticator"
	"github.com/fieldserve/backoffice/internal/api/response"
	"github.com/fieldserve/backoffice/internal/config"
	"github.com/fieldserve/backoffice/internal/perrors"
	"github.com/fieldserve/backoffice/internal/services"
	user2 "github.com/fieldserve/backoffice/internal/services/user"
	"github.com/valyala/fasthttp"
)

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator, conf *config.Config) {
	// Register a new employee account
	r.POST("/api/auth/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		var body user2.RegisterRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Email == "" || body.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("email and password are required")))
			return
		}

		created, err := svc.User.Register(stdCtx, &body)
		if err != nil {
			switch {
			case errors.Is(err, user2.ErrEmailTaken):
				writeError(ctx, stdCtx, "Email already registered", perrors.NewErrConflict("Email already registered", err))
			default:
				writeError(ctx, stdCtx, "Failed to register", perrors.NewErrInternalServerError("Failed to register", err))
			}
			return
		}

		token, err := auth.GenerateToken(created.ID, created.Email, string(created.Role))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to register", perrors.NewErrInternalServerError("Failed to register", err))
			return
		}

		response.NewResponse[any](stdCtx, "Registered successfully", nil).
			WithStatus(http.StatusCreated).
			WithToken(token).
			WithUser(created).
			Write(ctx)
	})

	// Login with email and password
	r.POST("/api/auth/login", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		allowed, err := svc.Limiter.Allow(stdCtx, "login:"+clientIP(ctx, conf.TRUST_PROXY_HEADER))
		if err == nil && !allowed {
			writeError(ctx, stdCtx, "Too many attempts, try again later", perrors.NewErrTooManyRequests("Too many attempts, try again later", errors.New("rate limited")))
			return
		}

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		account, err := svc.User.Authenticate(stdCtx, body.Email, body.Password)
		if err != nil {
			switch {
			case errors.Is(err, user2.ErrInvalidCredentials):
				writeError(ctx, stdCtx, "Invalid email or password", perrors.NewErrUnauthorized("Invalid email or password", err))
			default:
				writeError(ctx, stdCtx, "Failed to login", perrors.NewErrInternalServerError("Failed to login", err))
			}
			return
		}

		token, err := auth.GenerateToken(account.ID, account.Email, string(account.Role))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to login", perrors.NewErrInternalServerError("Failed to login", err))
			return
		}

		response.NewResponse[any](stdCtx, "Logged in successfully", nil).
			WithToken(token).
			WithUser(account).
			Write(ctx)
	})

	// Current account
	r.GET("/api/auth/me", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		account, err := currentUser(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Not authenticated", perrors.NewErrUnauthorized("Not authenticated", err))
			return
		}

		response.NewResponse[any](stdCtx, "", nil).WithUser(account).Write(ctx)
	})

	// Request a password reset code. The response is identical whether or not
	// the email maps to an account.
	r.POST("/api/auth/password-otp", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		allowed, err := svc.Limiter.Allow(stdCtx, "password-otp:"+clientIP(ctx, conf.TRUST_PROXY_HEADER))
		if err == nil && !allowed {
			writeError(ctx, stdCtx, "Too many attempts, try again later", perrors.NewErrTooManyRequests("Too many attempts, try again later", errors.New("rate limited")))
			return
		}

		var body struct {
			Email string `json:"email"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Email == "" {
			writeError(ctx, stdCtx, "Email is required", perrors.NewErrInvalidRequest("Email is required", errors.New("email is required")))
			return
		}

		if err := svc.User.RequestPasswordOTP(stdCtx, body.Email); err != nil {
			writeError(ctx, stdCtx, "Failed to process request", perrors.NewErrInternalServerError("Failed to process request", err))
			return
		}

		writeOK(ctx, stdCtx, "If the email exists, a reset code has been sent", nil)
	})

	// Reset the password using an emailed code. "newPassword" is accepted as
	// an alias for the "password" key.
	r.POST("/api/auth/reset-with-otp", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		var body struct {
			Email       string `json:"email"`
			Otp         string `json:"otp"`
			Password    string `json:"password"`
			NewPassword string `json:"newPassword"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		password := body.Password
		if password == "" {
			password = body.NewPassword
		}

		if body.Email == "" || body.Otp == "" || password == "" {
			writeError(ctx, stdCtx, "Email, otp and password are required", perrors.NewErrInvalidRequest("Email, otp and password are required", errors.New("missing fields")))
			return
		}

		if err := svc.User.ResetPasswordWithOTP(stdCtx, body.Email, body.Otp, password); err != nil {
			switch {
			case errors.Is(err, user2.ErrOTPInvalid):
				writeError(ctx, stdCtx, "Invalid or expired code", perrors.NewErrInvalidRequest("Invalid or expired code", err))
			default:
				writeError(ctx, stdCtx, "Failed to reset password", perrors.NewErrInternalServerError("Failed to reset password", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Password reset successful", nil)
	})
}
