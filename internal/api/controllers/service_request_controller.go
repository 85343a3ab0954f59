package controllers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/fasthttp/router"
	"github.com/fieldserve/backoffice/internal/api/response"
	"github.com/fieldserve/backoffice/internal/perrors"
	"github.com/fieldserve/backoffice/internal/services"
	sr "github.com/fieldserve/backoffice/internal/services/servicerequest"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

var multipartPrefix = []byte("multipart/form-data")

func isMultipart(ctx *fasthttp.RequestCtx) bool {
	return bytes.HasPrefix(ctx.Request.Header.ContentType(), multipartPrefix)
}

func formValue(form *multipart.Form, key string) (string, bool) {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// parseCreatePayload reads the intake body from either JSON or a multipart
// form. The optional file travels under the "attachment" field.
func parseCreatePayload(ctx *fasthttp.RequestCtx, svc *services.Services) (*sr.CreateServiceRequestRequest, error) {
	if !isMultipart(ctx) {
		var req sr.CreateServiceRequestRequest
		if err := parseBody(ctx, &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, err
	}

	req := &sr.CreateServiceRequestRequest{}
	strField := func(key string, target *string) {
		if v, ok := formValue(form, key); ok {
			*target = v
		}
	}
	strPtrField := func(key string, target **string) {
		if v, ok := formValue(form, key); ok {
			*target = &v
		}
	}

	strField("service", &req.Service)
	strPtrField("description", &req.Description)
	strPtrField("preferredDate", &req.PreferredDate)
	strPtrField("preferredTime", &req.PreferredTime)
	strField("name", &req.Name)
	strField("phone", &req.Phone)
	strPtrField("email", &req.Email)
	strField("address", &req.Address)
	strField("city", &req.City)
	strField("state", &req.State)
	strField("zip", &req.Zip)
	strField("serviceCategory", &req.ServiceCategory)
	strField("urgency", &req.Urgency)
	strField("customerNotes", &req.CustomerNotes)
	strField("source", &req.Source)
	strPtrField("recurringPattern", &req.RecurringPattern)

	if v, ok := formValue(form, "assignedEmployee"); ok {
		if id, err := uuid.Parse(v); err == nil {
			req.AssignedEmployee = &id
		}
	}
	if v, ok := formValue(form, "estimatedCost"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.EstimatedCost = f
		}
	}
	if v, ok := formValue(form, "estimatedDuration"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.EstimatedDuration = f
		}
	}
	if v, ok := formValue(form, "isRecurring"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			req.IsRecurring = b
		}
	}
	if v, ok := formValue(form, "tags"); ok {
		var tags sr.Tags
		if err := json.Unmarshal([]byte(v), &tags); err == nil {
			req.Tags = tags
		}
	}

	if files := form.File["attachment"]; len(files) > 0 {
		stored, err := svc.Uploads.Save(files[0])
		if err != nil {
			return nil, err
		}
		req.Attachment = &sr.Attachment{
			Filename: stored.Filename,
			Mimetype: stored.Mimetype,
			Size:     stored.Size,
			URL:      stored.URL,
		}
	}

	return req, nil
}

// parseUpdatePayload reads the generic update body, accepting a multipart
// form when a replacement attachment rides along.
func parseUpdatePayload(ctx *fasthttp.RequestCtx, svc *services.Services) (*sr.UpdateServiceRequestRequest, error) {
	if !isMultipart(ctx) {
		var req sr.UpdateServiceRequestRequest
		if err := parseBody(ctx, &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, err
	}

	req := &sr.UpdateServiceRequestRequest{}
	strPtrField := func(key string, target **string) {
		if v, ok := formValue(form, key); ok {
			*target = &v
		}
	}

	strPtrField("service", &req.Service)
	strPtrField("description", &req.Description)
	strPtrField("preferredDate", &req.PreferredDate)
	strPtrField("preferredTime", &req.PreferredTime)
	strPtrField("name", &req.Name)
	strPtrField("phone", &req.Phone)
	strPtrField("email", &req.Email)
	strPtrField("address", &req.Address)
	strPtrField("city", &req.City)
	strPtrField("state", &req.State)
	strPtrField("zip", &req.Zip)
	strPtrField("scheduledDate", &req.ScheduledDate)
	strPtrField("scheduledTime", &req.ScheduledTime)
	strPtrField("serviceCategory", &req.ServiceCategory)
	strPtrField("urgency", &req.Urgency)
	strPtrField("customerNotes", &req.CustomerNotes)
	strPtrField("adminNotes", &req.AdminNotes)
	strPtrField("source", &req.Source)

	if v, ok := formValue(form, "status"); ok {
		status := sr.Status(v)
		req.Status = &status
	}
	if v, ok := formValue(form, "priority"); ok {
		priority := sr.Priority(v)
		req.Priority = &priority
	}
	if v, ok := formValue(form, "estimatedCost"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.EstimatedCost = &f
		}
	}
	if v, ok := formValue(form, "actualCost"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.ActualCost = &f
		}
	}
	if v, ok := formValue(form, "estimatedDuration"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.EstimatedDuration = &f
		}
	}
	if v, ok := formValue(form, "actualDuration"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.ActualDuration = &f
		}
	}
	if v, ok := formValue(form, "followUpRequired"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			req.FollowUpRequired = &b
		}
	}
	if v, ok := formValue(form, "assignedEmployee"); ok {
		if id, err := uuid.Parse(v); err == nil {
			req.AssignedEmployee = &id
		}
	}
	if v, ok := formValue(form, "lastUpdatedBy"); ok {
		if id, err := uuid.Parse(v); err == nil {
			req.LastUpdatedBy = &id
		}
	}
	if v, ok := formValue(form, "tags"); ok {
		var tags sr.Tags
		if err := json.Unmarshal([]byte(v), &tags); err == nil {
			req.Tags = &tags
		}
	}

	if files := form.File["attachment"]; len(files) > 0 {
		stored, err := svc.Uploads.Save(files[0])
		if err != nil {
			return nil, err
		}
		req.Attachment = &sr.Attachment{
			Filename: stored.Filename,
			Mimetype: stored.Mimetype,
			Size:     stored.Size,
			URL:      stored.URL,
		}
	}

	return req, nil
}

// filterFromQuery reads listing filters off the query string
func filterFromQuery(ctx *fasthttp.RequestCtx) *sr.Filter {
	filter := &sr.Filter{
		Status:          queryString(ctx, "status"),
		Priority:        queryString(ctx, "priority"),
		ServiceCategory: queryString(ctx, "serviceCategory"),
		Urgency:         queryString(ctx, "urgency"),
		Source:          queryString(ctx, "source"),
		Search:          queryString(ctx, "search"),
	}

	if raw := queryString(ctx, "assignedEmployee"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.AssignedEmployee = &id
		}
	}
	if raw := queryString(ctx, "dateFrom"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateFrom = &t
		}
	}
	if raw := queryString(ctx, "dateTo"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateTo = &t
		}
	}
	if raw := queryString(ctx, "costMin"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.CostMin = &f
		}
	}
	if raw := queryString(ctx, "costMax"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.CostMax = &f
		}
	}

	return filter
}

// writeRequestError maps the domain errors of the request lifecycle onto
// HTTP statuses
func writeRequestError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	switch {
	case errors.Is(err, sr.ErrRequestNotFound):
		writeError(ctx, stdCtx, "Not found", perrors.NewErrNotFound("Not found", err))
	case errors.Is(err, sr.ErrNotAssignee):
		writeError(ctx, stdCtx, "Not authorized for this job", perrors.NewErrForbidden("Not authorized for this job", err))
	case errors.Is(err, sr.ErrAlreadyAccepted):
		writeError(ctx, stdCtx, "Job already accepted", perrors.NewErrInvalidRequest("Job already accepted", err))
	case errors.Is(err, sr.ErrNotYetAccepted):
		writeError(ctx, stdCtx, "Job must be accepted before completion", perrors.NewErrInvalidRequest("Job must be accepted before completion", err))
	case errors.Is(err, sr.ErrInvalidRating):
		writeError(ctx, stdCtx, "Rating must be between 1 and 5", perrors.NewErrInvalidRequest("Rating must be between 1 and 5", err))
	case errors.Is(err, sr.ErrInvalidTransition):
		writeError(ctx, stdCtx, "Invalid status transition", perrors.NewErrInvalidRequest("Invalid status transition", err))
	case errors.Is(err, sr.ErrMissingFields):
		writeError(ctx, stdCtx, "Missing required fields", perrors.NewErrInvalidRequest("Missing required fields", err))
	case errors.Is(err, sr.ErrEmptyBulkIDs):
		writeError(ctx, stdCtx, "IDs array is required", perrors.NewErrInvalidRequest("IDs array is required", err))
	case errors.Is(err, sr.ErrEmptyUpdates):
		writeError(ctx, stdCtx, "updates object is required", perrors.NewErrInvalidRequest("updates object is required", err))
	default:
		writeError(ctx, stdCtx, "Internal error", perrors.NewErrInternalServerError("Internal error", err))
	}
}

func RegisterServiceRequestRoutes(r *router.Router, svc *services.Services) {
	// Filtered listing with global rollups
	r.GET("/api/service-requests", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		filter := filterFromQuery(ctx)
		page := sr.Page{Number: queryInt(ctx, "page", 1), Limit: queryInt(ctx, "limit", 20)}

		result, err := svc.ServiceRequest.List(stdCtx, filter, queryString(ctx, "sortBy"), queryString(ctx, "sortOrder"), page)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		response.NewResponse[any](stdCtx, "", result.Items).
			WithListMeta(result.Total, result.Page, result.Limit).
			WithCountsByStatus(result.CountsByStatus).
			WithAnalytics(result.Analytics).
			Write(ctx)
	})

	// Public intake, JSON or multipart with an optional attachment
	r.POST("/api/service-requests", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		req, err := parseCreatePayload(ctx, svc)
		if err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.ServiceRequest.Create(stdCtx, req)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		response.NewResponse(stdCtx, "Service request created successfully", created).
			WithStatus(http.StatusCreated).
			Write(ctx)
	})

	// Status overview
	r.GET("/api/service-requests/summary", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		summary, err := svc.ServiceRequest.Summary(stdCtx)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "", summary)
	})

	// Period analytics report
	r.GET("/api/service-requests/analytics", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		report, err := svc.ServiceRequest.GetAnalytics(stdCtx, queryString(ctx, "period"))
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "", report)
	})

	// Structured search over the same listing query
	r.POST("/api/service-requests/search", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		var body struct {
			Query   string `json:"query"`
			Filters struct {
				Status           string     `json:"status"`
				Priority         string     `json:"priority"`
				ServiceCategory  string     `json:"serviceCategory"`
				Urgency          string     `json:"urgency"`
				AssignedEmployee *uuid.UUID `json:"assignedEmployee"`
				Source           string     `json:"source"`
				DateRange        struct {
					From *time.Time `json:"from"`
					To   *time.Time `json:"to"`
				} `json:"dateRange"`
				CostRange struct {
					Min *float64 `json:"min"`
					Max *float64 `json:"max"`
				} `json:"costRange"`
			} `json:"filters"`
			Page      int    `json:"page"`
			Limit     int    `json:"limit"`
			SortBy    string `json:"sortBy"`
			SortOrder string `json:"sortOrder"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		filter := &sr.Filter{
			Status:           body.Filters.Status,
			Priority:         body.Filters.Priority,
			ServiceCategory:  body.Filters.ServiceCategory,
			Urgency:          body.Filters.Urgency,
			AssignedEmployee: body.Filters.AssignedEmployee,
			Source:           body.Filters.Source,
			Search:           body.Query,
			DateFrom:         body.Filters.DateRange.From,
			DateTo:           body.Filters.DateRange.To,
			CostMin:          body.Filters.CostRange.Min,
			CostMax:          body.Filters.CostRange.Max,
		}

		result, err := svc.ServiceRequest.Search(stdCtx, filter, body.SortBy, body.SortOrder, sr.Page{Number: body.Page, Limit: body.Limit})
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		response.NewResponse[any](stdCtx, "", result.Items).
			WithListMeta(result.Total, result.Page, result.Limit).
			Write(ctx)
	})

	// Bulk partial update
	r.POST("/api/service-requests/bulk-update", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		var body struct {
			IDs           []uuid.UUID                     `json:"ids"`
			Updates       *sr.UpdateServiceRequestRequest `json:"updates"`
			LastUpdatedBy *uuid.UUID                      `json:"lastUpdatedBy"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Updates != nil && body.LastUpdatedBy != nil {
			body.Updates.LastUpdatedBy = body.LastUpdatedBy
		}
		if body.Updates == nil {
			body.Updates = &sr.UpdateServiceRequestRequest{}
		}

		modified, err := svc.ServiceRequest.BulkUpdate(stdCtx, body.IDs, body.Updates)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		response.NewResponse[any](stdCtx, "Updated "+strconv.FormatInt(modified, 10)+" service requests", nil).
			WithModifiedCount(modified).
			Write(ctx)
	})

	// Jobs assigned to one employee profile
	r.GET("/api/service-requests/employee/{employeeId}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		employeeID, err := pathParamUUID(ctx, "employeeId")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid employee ID", perrors.NewErrInvalidRequest("Invalid employee ID", err))
			return
		}

		jobs, err := svc.ServiceRequest.EmployeeJobs(stdCtx, employeeID, queryString(ctx, "status"))
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "", jobs)
	})

	r.GET("/api/service-requests/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		found, err := svc.ServiceRequest.Get(stdCtx, id)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "", found)
	})

	// Generic update. Status changes go through the transition table.
	r.PUT("/api/service-requests/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		req, err := parseUpdatePayload(ctx, svc)
		if err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.Update(stdCtx, id, req)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Service request updated successfully", updated)
	})

	r.DELETE("/api/service-requests/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		if err := svc.ServiceRequest.Delete(stdCtx, id); err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Deleted", nil)
	})

	// Assignee accepts the job
	r.POST("/api/service-requests/{id}/accept", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		var body struct {
			EmployeeID uuid.UUID `json:"employeeId"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.Accept(stdCtx, id, body.EmployeeID)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Job accepted successfully", updated)
	})

	// Assignee completes the job
	r.POST("/api/service-requests/{id}/complete", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		var body struct {
			EmployeeID      uuid.UUID `json:"employeeId"`
			CompletionNotes string    `json:"completionNotes"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.Complete(stdCtx, id, body.EmployeeID, body.CompletionNotes)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Job completed successfully", updated)
	})

	// Assignee's working notes
	r.POST("/api/service-requests/{id}/remarks", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		var body struct {
			EmployeeID uuid.UUID `json:"employeeId"`
			Remarks    string    `json:"remarks"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.SetRemarks(stdCtx, id, body.EmployeeID, body.Remarks)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Remarks updated successfully", updated)
	})

	// Hand the job to an employee and reset it to pending
	r.POST("/api/service-requests/{id}/assign", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		var body struct {
			EmployeeID uuid.UUID `json:"employeeId"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.Assign(stdCtx, id, body.EmployeeID)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Service request assigned successfully", updated)
	})

	// Swap or clear the assignee without touching status
	r.PATCH("/api/service-requests/{id}/assigned-employee", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		var body struct {
			AssignedEmployee *uuid.UUID `json:"assignedEmployee"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.SetAssignedEmployee(stdCtx, id, body.AssignedEmployee)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Assigned employee updated successfully", updated)
	})

	// Customer rating
	r.POST("/api/service-requests/{id}/rating", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		var body struct {
			Rating   int    `json:"rating"`
			Feedback string `json:"feedback"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.Rate(stdCtx, id, body.Rating, body.Feedback)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Rating submitted successfully", updated)
	})

	// Admin notes
	r.PATCH("/api/service-requests/{id}/admin-notes", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID", perrors.NewErrInvalidRequest("Invalid ID", err))
			return
		}

		var body struct {
			AdminNotes    string     `json:"adminNotes"`
			LastUpdatedBy *uuid.UUID `json:"lastUpdatedBy"`
		}
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.ServiceRequest.SetAdminNotes(stdCtx, id, body.AdminNotes, body.LastUpdatedBy)
		if err != nil {
			writeRequestError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Admin notes updated successfully", updated)
	})
}
