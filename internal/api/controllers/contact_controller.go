package controllers

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/fieldserve/backoffice/internal/config"
	"github.com/fieldserve/backoffice/internal/mailer"
	"github.com/fieldserve/backoffice/internal/perrors"
	"github.com/fieldserve/backoffice/internal/services"
	"github.com/valyala/fasthttp"
)

func RegisterContactRoutes(r *router.Router, svc *services.Services, conf *config.Config) {
	// Public contact form, forwarded to the office inbox. Accepts JSON or a
	// multipart form with an optional attachment.
	r.POST("/api/contact", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		form := &mailer.ContactForm{}
		if isMultipart(ctx) {
			mf, err := ctx.MultipartForm()
			if err != nil {
				writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
				return
			}

			strField := func(key string, target *string) {
				if v, ok := formValue(mf, key); ok {
					*target = v
				}
			}
			strField("service", &form.Service)
			strField("description", &form.Description)
			strField("preferredDate", &form.PreferredDate)
			strField("preferredTime", &form.PreferredTime)
			strField("name", &form.Name)
			strField("phone", &form.Phone)
			strField("email", &form.Email)
			strField("address", &form.Address)
			strField("city", &form.City)
			strField("state", &form.State)
			strField("zip", &form.Zip)

			if files := mf.File["attachment"]; len(files) > 0 {
				stored, err := svc.Uploads.Save(files[0])
				if err != nil {
					writeError(ctx, stdCtx, "Failed to store file", perrors.NewErrInvalidRequest("Failed to store file", err))
					return
				}
				form.AttachmentURL = stored.URL
			}
		} else {
			var body struct {
				Service       string `json:"service"`
				Description   string `json:"description"`
				PreferredDate string `json:"preferredDate"`
				PreferredTime string `json:"preferredTime"`
				Name          string `json:"name"`
				Phone         string `json:"phone"`
				Email         string `json:"email"`
				Address       string `json:"address"`
				City          string `json:"city"`
				State         string `json:"state"`
				Zip           string `json:"zip"`
			}
			if err := parseBody(ctx, &body); err != nil {
				writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
				return
			}
			form.Service = body.Service
			form.Description = body.Description
			form.PreferredDate = body.PreferredDate
			form.PreferredTime = body.PreferredTime
			form.Name = body.Name
			form.Phone = body.Phone
			form.Email = body.Email
			form.Address = body.Address
			form.City = body.City
			form.State = body.State
			form.Zip = body.Zip
		}

		if form.Service == "" || form.Name == "" || form.Phone == "" || form.Address == "" ||
			form.City == "" || form.State == "" || form.Zip == "" {
			writeError(ctx, stdCtx, "Missing required fields", perrors.NewErrInvalidRequest("Missing required fields", errors.New("missing required fields")))
			return
		}

		to := conf.CONTACT_EMAIL
		if to == "" {
			to = conf.ADMIN_EMAIL
		}

		if err := svc.Mailer.SendContactForm(stdCtx, to, form); err != nil {
			writeError(ctx, stdCtx, "Failed to send message", perrors.NewErrInternalServerError("Failed to send message", err))
			return
		}

		writeOK(ctx, stdCtx, "Message sent successfully", nil)
	})
}
