// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers for the keep-alive server.

# Logging

WithLogging wraps a handler and logs method, path, status and duration at
debug level:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

# JSON Helpers

JSONResponse writes a JSON body with status code:

	middleware.JSONResponse(w, http.StatusOK, status)

ErrorResponse writes a standard error shape:

	middleware.ErrorResponse(w, http.StatusNotFound, "no such route")

	{"error": "Not Found", "message": "no such route"}
*/
package middleware
