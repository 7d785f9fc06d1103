// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap a router with request logging:

	r.Use(middleware.WithLogging(logger))

Logs one line per request with method, path, remote, status, and duration_ms.

# CORS Middleware

Enable cross-origin requests for the website frontends:

	handler := middleware.CORS(cfg.AllowedOrigins)(r)

Allows GET, POST, OPTIONS. "*" allows any origin; otherwise only listed
origins get the Access-Control-Allow-Origin header.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var records []models.VoteRecord
	if err := middleware.ParseJSONBody(r, &records); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
