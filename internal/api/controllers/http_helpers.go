package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	json "github.com/bytedance/sonic"
	"github.com/fieldserve/backoffice/internal/api/response"
	"github.com/fieldserve/backoffice/internal/perrors"
	"github.com/fieldserve/backoffice/internal/services/user"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// requestContext returns a baseline context for handlers. fasthttp does not provide
// a standard context, so we start from Background for downstream calls.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if traceCtx, ok := ctx.UserValue("traceCtx").(context.Context); ok {
		return traceCtx
	}
	return context.Background()
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return json.Unmarshal(body, target)
}

func writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, err error) {
	response.NewResponse[any](stdCtx, message, nil).WithError(err).Write(ctx)
}

func writeOK(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).Write(ctx)
}

func pathParam(ctx *fasthttp.RequestCtx, key string) (string, error) {
	val := ctx.UserValue(key)
	if val == nil {
		return "", fmt.Errorf("%s is required", key)
	}

	return fmt.Sprint(val), nil
}

func pathParamUUID(ctx *fasthttp.RequestCtx, key string) (uuid.UUID, error) {
	val, err := pathParam(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(val)
}

func queryString(ctx *fasthttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *fasthttp.RequestCtx, key string, fallback int) int {
	raw := ctx.QueryArgs().Peek(key)
	if len(raw) == 0 {
		return fallback
	}

	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return fallback
	}
	return n
}

// currentUser returns the account the auth middleware loaded for the request
func currentUser(ctx *fasthttp.RequestCtx) (*user.User, error) {
	u, ok := ctx.UserValue("currentUser").(*user.User)
	if !ok || u == nil {
		return nil, errors.New("not authenticated")
	}
	return u, nil
}

// requireAdmin returns the caller when they hold the admin role
func requireAdmin(ctx *fasthttp.RequestCtx) (*user.User, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleAdmin {
		return nil, errors.New("admin access required")
	}
	return u, nil
}

// writeForbiddenUnlessAdmin handles the admin gate boilerplate. Returns the
// caller, or nil after writing the error response.
func writeForbiddenUnlessAdmin(ctx *fasthttp.RequestCtx, stdCtx context.Context) *user.User {
	u, err := requireAdmin(ctx)
	if err != nil {
		writeError(ctx, stdCtx, "Admin access required", perrors.NewErrForbidden("Admin access required", err))
		return nil
	}
	return u
}

// clientIP picks the address rate-limit buckets are keyed on. X-Forwarded-For
// is honored only when the server sits behind a trusted proxy; otherwise any
// client could rotate the header and sidestep the limiter.
func clientIP(ctx *fasthttp.RequestCtx, trustProxy bool) string {
	if trustProxy {
		if fwd := ctx.Request.Header.Peek("X-Forwarded-For"); len(fwd) > 0 {
			// first hop is the originating client
			if i := bytes.IndexByte(fwd, ','); i >= 0 {
				fwd = fwd[:i]
			}
			return string(bytes.TrimSpace(fwd))
		}
	}
	return ctx.RemoteIP().String()
}
