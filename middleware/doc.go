// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, status, remote address and duration_ms once the
handler returns.

# CORS and Recovery

	server := http.Server{
		Handler: middleware.Recover(middleware.CORS(mux)),
	}

CORS allows GET, POST and OPTIONS with Content-Type, X-Admin-Key and
X-Voter-Token. Recover answers 500 when a handler panics.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ParseJSONBody rejects unknown fields, trailing data and bodies over 1 MiB:

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used for IP hashing on ballot submission.
*/
package middleware
