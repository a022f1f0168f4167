// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/roll-call/models"
)

// SQLGateway keeps the roster in the roster_row table (see db.CreateSchema).
// Works with the postgres and sqlite drivers.
type SQLGateway struct {
	db *sql.DB
}

func NewSQLGateway(db *sql.DB) *SQLGateway {
	return &SQLGateway{db: db}
}

func (g *SQLGateway) Submit(ctx context.Context, row models.Row) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO roster_row (id, name, choice, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), row.Name, string(row.Choice), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: insert roster row: %v", ErrNetwork, err)
	}

	slog.Info("roster row stored", "name", row.Name, "choice", row.Choice)
	return nil
}

func (g *SQLGateway) FetchAll(ctx context.Context) ([]models.Row, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT name, choice FROM roster_row ORDER BY submitted_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query roster: %v", ErrNetwork, err)
	}
	defer rows.Close()

	var out []models.Row
	for rows.Next() {
		var name, choice sql.NullString
		if err := rows.Scan(&name, &choice); err != nil {
			return nil, fmt.Errorf("%w: scan roster row: %v", ErrMalformedResponse, err)
		}
		if row, ok := keepRow(name.String, choice.String); ok {
			out = append(out, row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate roster: %v", ErrNetwork, err)
	}

	return out, nil
}

func (g *SQLGateway) ClearAll(ctx context.Context) error {
	res, err := g.db.ExecContext(ctx, `DELETE FROM roster_row`)
	if err != nil {
		return fmt.Errorf("%w: clear roster: %v", ErrNetwork, err)
	}

	n, _ := res.RowsAffected()
	slog.Info("roster cleared", "rows", n)
	return nil
}
