// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"errors"
	"strings"

	"github.com/danielhkuo/roll-call/models"
)

var (
	ErrNetwork           = errors.New("roster unreachable")
	ErrRemoteRejected    = errors.New("roster rejected request")
	ErrMalformedResponse = errors.New("malformed roster response")
	ErrNotConfigured     = errors.New("roster endpoint not configured")
)

// Gateway is the external system of record. Every call may fail; callers
// treat failures as non-fatal and keep their local state.
type Gateway interface {
	// Submit pushes one newly registered row.
	Submit(ctx context.Context, row models.Row) error
	// FetchAll returns every row that has both a name and a choice.
	FetchAll(ctx context.Context) ([]models.Row, error)
	// ClearAll wipes the remote rows.
	ClearAll(ctx context.Context) error
}

// keepRow reports whether a fetched row is complete enough to use
func keepRow(name, choice string) (models.Row, bool) {
	name = strings.TrimSpace(name)
	choice = strings.TrimSpace(choice)
	if name == "" || choice == "" {
		return models.Row{}, false
	}
	return models.Row{Name: name, Choice: models.Choice(choice)}, true
}
