package controllers

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/fieldserve/backoffice/internal/api/response"
	"github.com/fieldserve/backoffice/internal/perrors"
	"github.com/fieldserve/backoffice/internal/services"
	user2 "github.com/fieldserve/backoffice/internal/services/user"
	"github.com/valyala/fasthttp"
)

func RegisterUserRoutes(r *router.Router, svc *services.Services) {
	// List all accounts (admin)
	r.GET("/api/users", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		if writeForbiddenUnlessAdmin(ctx, stdCtx) == nil {
			return
		}

		users, err := svc.User.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list users", perrors.NewErrInternalServerError("Failed to list users", err))
			return
		}

		response.NewResponse[any](stdCtx, "", nil).WithUsers(users).Write(ctx)
	})

	// Public directory of active employees
	r.GET("/api/users/employees", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		employees, err := svc.User.ListEmployees(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list employees", perrors.NewErrInternalServerError("Failed to list employees", err))
			return
		}

		writeOK(ctx, stdCtx, "", employees)
	})

	// Change an account's role (admin). The single-admin rule applies.
	r.PATCH("/api/users/{userId}/role", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		if writeForbiddenUnlessAdmin(ctx, stdCtx) == nil {
			return
		}

		userID, err := pathParamUUID(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid user ID", perrors.NewErrInvalidRequest("Invalid user ID", err))
			return
		}

		var body struct {
			Role string `json:"role"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.User.UpdateRole(stdCtx, userID, user2.Role(body.Role))
		if err != nil {
			switch {
			case errors.Is(err, user2.ErrUserNotFound):
				writeError(ctx, stdCtx, "User not found", perrors.NewErrNotFound("User not found", err))
			case errors.Is(err, user2.ErrInvalidRole):
				writeError(ctx, stdCtx, "Invalid role", perrors.NewErrInvalidRequest("Invalid role", err))
			case errors.Is(err, user2.ErrLastAdmin):
				writeError(ctx, stdCtx, "At least one admin is required", perrors.NewErrConflict("At least one admin is required", err))
			case errors.Is(err, user2.ErrOnlyOneAdmin):
				writeError(ctx, stdCtx, "Only one admin account is allowed", perrors.NewErrConflict("Only one admin account is allowed", err))
			default:
				writeError(ctx, stdCtx, "Failed to update role", perrors.NewErrInternalServerError("Failed to update role", err))
			}
			return
		}

		response.NewResponse[any](stdCtx, "Role updated successfully", nil).WithUser(updated).Write(ctx)
	})
}
