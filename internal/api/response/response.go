package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	json "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/fieldserve/backoffice/internal/perrors"
)

// Response is the API envelope. Every endpoint answers with {success, ...};
// list endpoints add top-level pagination and rollup fields.
type Response[T any] struct {
	ctx          context.Context
	errorDetails perrors.Err
	status       int

	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`

	Token string `json:"token,omitempty"`
	User  any    `json:"user,omitempty"`
	Users any    `json:"users,omitempty"`

	Total          *int           `json:"total,omitempty"`
	Page           *int           `json:"page,omitempty"`
	Limit          *int           `json:"limit,omitempty"`
	CountsByStatus map[string]int `json:"countsByStatus,omitempty"`
	Analytics      any            `json:"analytics,omitempty"`
	ModifiedCount  *int64         `json:"modifiedCount,omitempty"`
	AvatarURL      string         `json:"avatarUrl,omitempty"`
}

func NewResponse[T any](ctx context.Context, msg string, data T) *Response[T] {
	return &Response[T]{
		ctx:     ctx,
		Success: true,
		Message: msg,
		Data:    data,
		status:  http.StatusOK,
	}
}

// WithError marks the response failed and maps the error to an HTTP status
func (r *Response[T]) WithError(err error) *Response[T] {
	var perr perrors.Err
	if errors.As(err, &perr) {
		r.status = perr.HttpStatus()
		r.errorDetails = perr
		if r.Message == "" {
			r.Message = perr.Error()
		}
	} else {
		perr = perrors.NewErrInternalServerError(r.Message, err).(perrors.Err)
		r.errorDetails = perr
	}
	perr.Print(r.ctx)

	r.Success = false

	return r
}

// WithStatus will set the HTTP response status code.
//
// This is not a preferred way of setting status code.
//   - Try to use perrors.Err embedded with a status code whenever possible.
//   - Default is http.StatusOK and it need not be set explicitly.
func (r *Response[T]) WithStatus(code int) *Response[T] {
	r.status = code

	return r
}

// WithToken attaches a bearer token to the envelope
func (r *Response[T]) WithToken(token string) *Response[T] {
	r.Token = token

	return r
}

// WithUser attaches the user object to the envelope
func (r *Response[T]) WithUser(user any) *Response[T] {
	r.User = user

	return r
}

// WithUsers attaches a user list to the envelope
func (r *Response[T]) WithUsers(users any) *Response[T] {
	r.Users = users

	return r
}

// WithListMeta attaches pagination fields
func (r *Response[T]) WithListMeta(total, page, limit int) *Response[T] {
	r.Total = &total
	r.Page = &page
	r.Limit = &limit

	return r
}

// WithCountsByStatus attaches the status histogram
func (r *Response[T]) WithCountsByStatus(counts map[string]int) *Response[T] {
	r.CountsByStatus = counts

	return r
}

// WithAnalytics attaches the rollup block
func (r *Response[T]) WithAnalytics(analytics any) *Response[T] {
	r.Analytics = analytics

	return r
}

// WithModifiedCount attaches the bulk-update row count
func (r *Response[T]) WithModifiedCount(count int64) *Response[T] {
	r.ModifiedCount = &count

	return r
}

// WithAvatarURL attaches the stored avatar location
func (r *Response[T]) WithAvatarURL(url string) *Response[T] {
	r.AvatarURL = url

	return r
}

// Write will set the `content-type` to `application/json` and write the response to the fasthttp context.
func (r *Response[T]) Write(ctx *fasthttp.RequestCtx) {
	if !r.Success {
		slog.ErrorContext(r.ctx, "Error processing the request", slog.Any("error", r.errorDetails))
	}

	ctx.Response.Header.Set("content-type", "application/json")
	ctx.SetStatusCode(r.status)

	body, err := json.Marshal(r)
	if err != nil {
		slog.ErrorContext(r.ctx, "Unable to json encode response", slog.Any("error", err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.SetBody(body)
}
