package controllers

import (
	"errors"
	"time"

	"github.com/fasthttp/router"
	"github.com/fieldserve/backoffice/internal/perrors"
	"github.com/fieldserve/backoffice/internal/api/response"
	"github.com/fieldserve/backoffice/internal/services"
	profile2 "github.com/fieldserve/backoffice/internal/services/profile"
	user2 "github.com/fieldserve/backoffice/internal/services/user"
	"github.com/valyala/fasthttp"
)

const maxCertificateFiles = 10

func RegisterProfileRoutes(r *router.Router, svc *services.Services) {
	// Own profile
	r.GET("/api/profile", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		account, err := currentUser(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Not authenticated", perrors.NewErrUnauthorized("Not authenticated", err))
			return
		}

		p, err := svc.Profile.GetMine(stdCtx, account.ID)
		if err != nil {
			if errors.Is(err, profile2.ErrProfileNotFound) {
				writeOK(ctx, stdCtx, "", nil)
				return
			}
			writeError(ctx, stdCtx, "Failed to get profile", perrors.NewErrInternalServerError("Failed to get profile", err))
			return
		}

		writeOK(ctx, stdCtx, "", p)
	})

	// Partial update of account and profile fields
	r.PATCH("/api/profile", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		account, err := currentUser(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Not authenticated", perrors.NewErrUnauthorized("Not authenticated", err))
			return
		}

		var body profile2.UpdateProfileRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Profile.UpdateMine(stdCtx, account.ID, &body)
		if err != nil {
			switch {
			case errors.Is(err, user2.ErrEmailTaken):
				writeError(ctx, stdCtx, "Email already in use", perrors.NewErrConflict("Email already in use", err))
			case errors.Is(err, profile2.ErrProfileNotFound):
				writeError(ctx, stdCtx, "Profile not found", perrors.NewErrNotFound("Profile not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update profile", perrors.NewErrInternalServerError("Failed to update profile", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "", updated)
	})

	// Completion score against the required field set
	r.GET("/api/profile/completion", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		account, err := currentUser(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Not authenticated", perrors.NewErrUnauthorized("Not authenticated", err))
			return
		}

		completion, err := svc.Profile.GetCompletion(stdCtx, account.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get completion", perrors.NewErrInternalServerError("Failed to get completion", err))
			return
		}

		writeOK(ctx, stdCtx, "", completion)
	})

	// Profile image upload
	r.POST("/api/profile/upload-image", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		account, err := currentUser(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Not authenticated", perrors.NewErrUnauthorized("Not authenticated", err))
			return
		}

		header, err := ctx.FormFile("profileImage")
		if err != nil {
			writeError(ctx, stdCtx, "No file uploaded", perrors.NewErrInvalidRequest("No file uploaded", err))
			return
		}

		stored, err := svc.Uploads.Save(header)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to store file", perrors.NewErrInvalidRequest("Failed to store file", err))
			return
		}

		if err := svc.Profile.SetAvatar(stdCtx, account.ID, stored.URL); err != nil {
			if errors.Is(err, profile2.ErrProfileNotFound) {
				writeError(ctx, stdCtx, "Profile not found", perrors.NewErrNotFound("Profile not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to update profile", perrors.NewErrInternalServerError("Failed to update profile", err))
			return
		}

		response.NewResponse[any](stdCtx, "Profile image uploaded successfully", nil).
			WithAvatarURL(stored.URL).
			Write(ctx)
	})

	// Certificate uploads, appended to the existing list
	r.POST("/api/profile/upload-certificates", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		account, err := currentUser(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Not authenticated", perrors.NewErrUnauthorized("Not authenticated", err))
			return
		}

		form, err := ctx.MultipartForm()
		if err != nil || len(form.File["certificates"]) == 0 {
			writeError(ctx, stdCtx, "No files uploaded", perrors.NewErrInvalidRequest("No files uploaded", errors.New("no files uploaded")))
			return
		}

		headers := form.File["certificates"]
		if len(headers) > maxCertificateFiles {
			headers = headers[:maxCertificateFiles]
		}

		certs := make(profile2.Certifications, 0, len(headers))
		for _, header := range headers {
			stored, err := svc.Uploads.Save(header)
			if err != nil {
				writeError(ctx, stdCtx, "Failed to store file", perrors.NewErrInvalidRequest("Failed to store file", err))
				return
			}
			certs = append(certs, profile2.Certification{
				Name:       stored.Filename,
				FileURL:    stored.URL,
				UploadedAt: time.Now(),
			})
		}

		updated, err := svc.Profile.AppendCertifications(stdCtx, account.ID, certs)
		if err != nil {
			if errors.Is(err, profile2.ErrProfileNotFound) {
				writeError(ctx, stdCtx, "Profile not found", perrors.NewErrNotFound("Profile not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to update profile", perrors.NewErrInternalServerError("Failed to update profile", err))
			return
		}

		writeOK(ctx, stdCtx, "Certificates uploaded successfully", map[string]any{"certifications": updated.Certifications})
	})

	// Admin: every application in the review projection
	r.GET("/api/profile/all", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		if writeForbiddenUnlessAdmin(ctx, stdCtx) == nil {
			return
		}

		apps, err := svc.Profile.ListApplications(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list applications", perrors.NewErrInternalServerError("Failed to list applications", err))
			return
		}

		writeOK(ctx, stdCtx, "", apps)
	})

	// Admin: one employee's profile by user ID
	r.GET("/api/profile/employee/{userId}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		if writeForbiddenUnlessAdmin(ctx, stdCtx) == nil {
			return
		}

		userID, err := pathParamUUID(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid user ID", perrors.NewErrInvalidRequest("Invalid user ID", err))
			return
		}

		p, err := svc.Profile.GetByUserID(stdCtx, userID)
		if err != nil {
			if errors.Is(err, profile2.ErrProfileNotFound) {
				writeError(ctx, stdCtx, "Employee profile not found", perrors.NewErrNotFound("Employee profile not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to get profile", perrors.NewErrInternalServerError("Failed to get profile", err))
			return
		}

		writeOK(ctx, stdCtx, "", p)
	})

	// Admin: move an application through review
	r.PATCH("/api/profile/{profileId}/status", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		if writeForbiddenUnlessAdmin(ctx, stdCtx) == nil {
			return
		}

		profileID, err := pathParamUUID(ctx, "profileId")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid profile ID", perrors.NewErrInvalidRequest("Invalid profile ID", err))
			return
		}

		var body struct {
			Status            string  `json:"status"`
			VerificationNotes *string `json:"verificationNotes"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Profile.SetVerificationStatus(stdCtx, profileID, profile2.VerificationStatus(body.Status), body.VerificationNotes)
		if err != nil {
			switch {
			case errors.Is(err, profile2.ErrInvalidVerificationStatus):
				writeError(ctx, stdCtx, "Invalid status. Must be pending, approved, or rejected", perrors.NewErrInvalidRequest("Invalid status. Must be pending, approved, or rejected", err))
			case errors.Is(err, profile2.ErrProfileNotFound):
				writeError(ctx, stdCtx, "Profile not found", perrors.NewErrNotFound("Profile not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update status", perrors.NewErrInternalServerError("Failed to update status", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Employee application "+body.Status+" successfully", updated)
	})
}
