// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/roll-call/models"
	"github.com/danielhkuo/roll-call/testutil"
)

func TestSQLGateway_RoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	g := NewSQLGateway(conn)
	ctx := context.Background()

	require.NoError(t, g.Submit(ctx, models.Row{Name: "Alice", Choice: "19:45"}))
	require.NoError(t, g.Submit(ctx, models.Row{Name: "Bob", Choice: models.ChoiceCannotAttend}))

	rows, err := g.FetchAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Row{
		{Name: "Alice", Choice: "19:45"},
		{Name: "Bob", Choice: models.ChoiceCannotAttend},
	}, rows)

	require.NoError(t, g.ClearAll(ctx))
	rows, err = g.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLGateway_SkipsIncompleteRows(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	_, err := conn.Exec(`
		INSERT INTO roster_row (id, name, choice) VALUES
			('1', 'Alice', '19:30'),
			('2', '', '19:45'),
			('3', 'Bob', '')
	`)
	require.NoError(t, err)

	rows, err := NewSQLGateway(conn).FetchAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Row{{Name: "Alice", Choice: "19:30"}}, rows)
}

func TestSQLGateway_ClosedDB(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	conn.Close()
	g := NewSQLGateway(conn)
	ctx := context.Background()

	assert.ErrorIs(t, g.Submit(ctx, models.Row{Name: "A", Choice: "19:30"}), ErrNetwork)
	_, err := g.FetchAll(ctx)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, g.ClearAll(ctx), ErrNetwork)
}
