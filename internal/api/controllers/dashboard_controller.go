package controllers

import (
	"github.com/fasthttp/router"
	"github.com/fieldserve/backoffice/internal/perrors"
	"github.com/fieldserve/backoffice/internal/services"
	"github.com/valyala/fasthttp"
)

func RegisterDashboardRoutes(r *router.Router, svc *services.Services) {
	// Landing-page rollup
	r.GET("/api/dashboard/stats", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		stats, err := svc.Dashboard.GetStats(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get stats", perrors.NewErrInternalServerError("Failed to get stats", err))
			return
		}

		writeOK(ctx, stdCtx, "", stats)
	})

	r.GET("/api/dashboard/recent-requests", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		requests, err := svc.Dashboard.GetRecentRequests(stdCtx, queryInt(ctx, "limit", 4))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get recent requests", perrors.NewErrInternalServerError("Failed to get recent requests", err))
			return
		}

		writeOK(ctx, stdCtx, "", requests)
	})

	r.GET("/api/dashboard/recent-applications", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		applications, err := svc.Dashboard.GetRecentApplications(stdCtx, queryInt(ctx, "limit", 3))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get recent applications", perrors.NewErrInternalServerError("Failed to get recent applications", err))
			return
		}

		writeOK(ctx, stdCtx, "", applications)
	})

	// Stats plus both recent lists in one round trip
	r.GET("/api/dashboard/overview", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		overview, err := svc.Dashboard.GetOverview(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get overview", perrors.NewErrInternalServerError("Failed to get overview", err))
			return
		}

		writeOK(ctx, stdCtx, "", overview)
	})

	// The caller's own workload view
	r.GET("/api/dashboard/employee-stats", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		account, err := currentUser(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Not authenticated", perrors.NewErrUnauthorized("Not authenticated", err))
			return
		}

		stats, err := svc.Dashboard.GetEmployeeStats(stdCtx, account.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get employee stats", perrors.NewErrInternalServerError("Failed to get employee stats", err))
			return
		}

		writeOK(ctx, stdCtx, "", stats)
	})
}
