// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the keep-alive HTTP routes.

# Routes

	GET /        → "✅ Bot is alive" (for uptime monitors)
	GET /health  → "OK"
	GET /status  → {"registered": n, "last_synced_at": "..."}

Anything else gets a JSON 404.

# Usage

	mux := router.NewRouter(reg)
	server := http.Server{Handler: mux, Addr: ":8080"}

The server is unrelated to attendance logic; it only keeps hosting
platforms that idle inactive processes from putting the bot to sleep.
*/
package router
