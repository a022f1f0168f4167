// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster talks to the external system of record for attendance.

# Gateway

Gateway has three operations, each allowed to fail independently:

	Submit(ctx, row)  → push one newly registered row
	FetchAll(ctx)     → every complete row (incomplete rows are skipped)
	ClearAll(ctx)     → wipe the remote rows

Failures wrap one of ErrNetwork, ErrRemoteRejected, ErrMalformedResponse or
ErrNotConfigured, so callers can use errors.Is. None of them are retried
here; a manual resync is the retry.

# Backends

HTTPGateway targets a spreadsheet-backed form:

	POST SubmitURL   form-encoded {NameField: name, TimeField: choice}
	GET  FetchURL    JSON array of objects with NameKey and TimeKey
	GET  ClearURL    clear trigger

Calls are bounded by HTTPConfig.Timeout (default 5s) and the caller's
context.

SQLGateway stores rows in the roster_row table on PostgreSQL (lib/pq) or
SQLite (modernc.org/sqlite) for self-hosted deployments.
*/
package roster
