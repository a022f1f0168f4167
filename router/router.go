// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/roll-call/middleware"
	"github.com/danielhkuo/roll-call/models"
	"github.com/danielhkuo/roll-call/registry"
)

// AliveMessage is what uptime monitors see on the root route.
const AliveMessage = "✅ Bot is alive"

func NewRouter(reg *registry.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// Keep-alive for external uptime monitors
	mux.HandleFunc("GET /{$}", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(AliveMessage))
	}))

	// Health check
	mux.HandleFunc("GET /health", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	// Registry size and last sync
	mux.HandleFunc("GET /status", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		resp := models.StatusResponse{Registered: reg.Len()}
		if t := reg.LastHydrated(); !t.IsZero() {
			resp.LastSyncedAt = &t
		}
		middleware.JSONResponse(w, http.StatusOK, resp)
	}))

	mux.HandleFunc("/", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "no such route")
	}))

	return mux
}
