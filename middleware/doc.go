// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path) and completion (status, duration_ms).

# Admin Guard

Admin routes require an "Authorization: Bearer <token>" header carrying a
token issued by auth.IssueAdminToken:

	mux.HandleFunc("GET /admin/dashboard",
		middleware.WithLogging(middleware.RequireAdmin(cfg.AdminTokenSecret, h.Dashboard)))

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization. Content-Disposition is exposed so browsers
can read export file names.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.KindErrorResponse(w, http.StatusUnprocessableEntity, "quota_exceeded", "message")

Parse JSON request bodies:

	var req models.SubmitSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Logged only as auth.HashIP(ip, salt).
*/
package middleware
