// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# CORS Middleware

The portal UI may be served from another origin:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Session-Token.

# Session Token

Each browser tab holds its own token and sends it on every request:

	token := middleware.SessionToken(r)

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ParseJSONBody rejects an empty body. ParseOptionalJSONBody accepts one,
for endpoints such as POST /ballot/submit whose body is optional.
*/
package middleware
