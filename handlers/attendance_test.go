// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/roll-call/auth"
	"github.com/danielhkuo/roll-call/locale"
	"github.com/danielhkuo/roll-call/models"
	"github.com/danielhkuo/roll-call/prompt"
	"github.com/danielhkuo/roll-call/registry"
	"github.com/danielhkuo/roll-call/roster"
	"github.com/danielhkuo/roll-call/testutil"
)

type fixture struct {
	handler  *AttendanceHandler
	registry *registry.Registry
	gateway  *testutil.FakeGateway
	locales  *locale.Provider
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := testutil.GetTestConfig()
	locales, err := locale.NewProvider()
	require.NoError(t, err)
	builder, err := prompt.NewBuilder(cfg.Times, cfg.UTCOffset)
	require.NoError(t, err)

	reg := registry.New()
	gw := &testutil.FakeGateway{}
	h := NewAttendanceHandler(reg, gw, auth.NewPolicy(cfg.AdminRoleIDs), locales, builder, cfg)

	return fixture{handler: h, registry: reg, gateway: gw, locales: locales}
}

func (f fixture) msg(tag, key string, vars locale.Vars) string {
	return f.locales.Resolve(tag).Format(key, vars)
}

func TestShowPrompt(t *testing.T) {
	f := newFixture(t)

	reply := f.handler.ShowPrompt(testutil.NewActor("A", "Alice", "en-US"))

	require.NotNil(t, reply.Prompt)
	assert.True(t, reply.Ephemeral)
	assert.Equal(t, f.msg("en-US", locale.KeyPrompt, nil), reply.Text)
	assert.Len(t, reply.Prompt.Options, 5)
	assert.Equal(t, "11:45", reply.Prompt.Options[1].Label)
	assert.Equal(t, models.Choice("19:45"), reply.Prompt.Options[1].Choice)
}

func TestHandleSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("first selection registers and submits", func(t *testing.T) {
		f := newFixture(t)
		alice := testutil.NewActor("A", "Alice", "en")

		reply := f.handler.HandleSelection(ctx, alice, "19:45")

		assert.Equal(t, f.msg("en", locale.KeySuccess, locale.Vars{"name": "Alice", "time": "19:45"}), reply.Text)
		assert.True(t, reply.Ephemeral)
		assert.Equal(t, map[models.ResponderKey]models.Choice{"A": "19:45"}, f.registry.Snapshot())
		assert.Equal(t, []models.Row{{Name: "Alice", Choice: "19:45"}}, f.gateway.Submitted)
	})

	t.Run("second selection is already checked", func(t *testing.T) {
		f := newFixture(t)
		alice := testutil.NewActor("A", "Alice", "en")
		f.handler.HandleSelection(ctx, alice, "19:45")

		reply := f.handler.HandleSelection(ctx, alice, models.ChoiceCannotAttend)

		assert.Equal(t, f.msg("en", locale.KeyAlreadyChecked, locale.Vars{"name": "Alice"}), reply.Text)
		assert.Equal(t, map[models.ResponderKey]models.Choice{"A": "19:45"}, f.registry.Snapshot())
		submits, _, _ := f.gateway.Calls()
		assert.Equal(t, 1, submits, "duplicate must not reach the roster")
	})

	t.Run("name keyed record blocks and moves to user key", func(t *testing.T) {
		f := newFixture(t)
		f.registry.Hydrate([]models.Record{{Key: models.NameKey("Alice"), Choice: "19:30"}})

		reply := f.handler.HandleSelection(ctx, testutil.NewActor("A", "Alice", "en"), "20:00")

		assert.Equal(t, f.msg("en", locale.KeyAlreadyChecked, locale.Vars{"name": "Alice"}), reply.Text)
		assert.Equal(t, map[models.ResponderKey]models.Choice{"A": "19:30"}, f.registry.Snapshot())
		submits, _, _ := f.gateway.Calls()
		assert.Equal(t, 0, submits)
	})

	t.Run("submit failure still confirms", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.SubmitErr = fmt.Errorf("%w: boom", roster.ErrNetwork)

		reply := f.handler.HandleSelection(ctx, testutil.NewActor("A", "Alice", "zh-TW"), models.ChoiceConflictPeriod)

		assert.Equal(t, f.msg("zh-TW", locale.KeySuccess, locale.Vars{"name": "Alice", "time": "領土期間"}), reply.Text)
		c, ok := f.registry.Lookup("A")
		assert.True(t, ok)
		assert.Equal(t, models.ChoiceConflictPeriod, c)
	})

	t.Run("slow roster is cut off by the timeout", func(t *testing.T) {
		f := newFixture(t)
		f.handler.cfg.RosterTimeout = 20 * time.Millisecond
		f.gateway.Block = true

		start := time.Now()
		reply := f.handler.HandleSelection(ctx, testutil.NewActor("A", "Alice", "en"), "20:00")

		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, f.msg("en", locale.KeySuccess, locale.Vars{"name": "Alice", "time": "20:00"}), reply.Text)
		assert.Equal(t, 1, f.registry.Len())
	})

	t.Run("unknown choice is rejected", func(t *testing.T) {
		f := newFixture(t)

		reply := f.handler.HandleSelection(ctx, testutil.NewActor("A", "Alice", "en"), "11:45")

		assert.Equal(t, f.msg("en", locale.KeyInvalidChoice, locale.Vars{"time": "11:45"}), reply.Text)
		assert.Equal(t, 0, f.registry.Len())
		submits, _, _ := f.gateway.Calls()
		assert.Equal(t, 0, submits)
	})

	t.Run("roster-only row by display name blocks re-registration", func(t *testing.T) {
		f := newFixture(t)
		f.registry.Hydrate([]models.Record{{Key: models.NameKey("Alice"), Choice: "19:30"}})

		reply := f.handler.HandleSelection(ctx, testutil.NewActor("A", "Alice", "en"), "20:00")

		assert.Equal(t, f.msg("en", locale.KeyAlreadyChecked, locale.Vars{"name": "Alice"}), reply.Text)
		assert.Equal(t, map[models.ResponderKey]models.Choice{"A": "19:30"}, f.registry.Snapshot())
	})
}

// TestHandleSelection_Concurrent has one user click many times at once;
// exactly one click may register and reach the roster
func TestHandleSelection_Concurrent(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewActor("A", "Alice", "en")
	success := f.msg("en", locale.KeySuccess, locale.Vars{"name": "Alice", "time": "19:30"})

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.handler.HandleSelection(context.Background(), alice, "19:30").Text == success {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load())
	submits, _, _ := f.gateway.Calls()
	assert.Equal(t, 1, submits)
}

func TestHandleReset(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin is denied", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("A", "19:45")

		reply := f.handler.HandleReset(ctx, testutil.NewActor("B", "Bob", "en", "role-other"))

		assert.Equal(t, f.msg("en", locale.KeyPermissionDenied, nil), reply.Text)
		assert.True(t, reply.Ephemeral)
		assert.Equal(t, 1, f.registry.Len())
		_, _, clears := f.gateway.Calls()
		assert.Equal(t, 0, clears)
	})

	t.Run("admin clears registry and roster once", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("A", "19:45")
		f.registry.TryRegister("B", models.ChoiceConflictPeriod)

		reply := f.handler.HandleReset(ctx, testutil.NewAdmin("X", "Admin", "zh-TW"))

		assert.Equal(t, f.msg("zh-TW", locale.KeyResetDone, nil), reply.Text)
		assert.False(t, reply.Ephemeral)
		assert.Empty(t, f.registry.Snapshot())
		_, _, clears := f.gateway.Calls()
		assert.Equal(t, 1, clears)
	})

	t.Run("allow-listed role may reset", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("A", "19:45")

		reply := f.handler.HandleReset(ctx, testutil.NewActor("X", "Mod", "en", "role-admin"))

		assert.Equal(t, f.msg("en", locale.KeyResetDone, nil), reply.Text)
		assert.Equal(t, 0, f.registry.Len())
	})

	t.Run("roster clear failure still confirms", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("A", "19:45")
		f.gateway.ClearErr = roster.ErrNetwork

		reply := f.handler.HandleReset(ctx, testutil.NewAdmin("X", "Admin", "en"))

		assert.Equal(t, f.msg("en", locale.KeyResetDone, nil), reply.Text)
		assert.Equal(t, 0, f.registry.Len())
		_, _, clears := f.gateway.Calls()
		assert.Equal(t, 1, clears)
	})
}

func members(names ...string) []models.Member {
	out := make([]models.Member, len(names))
	for i, n := range names {
		out[i] = models.Member{Key: models.ResponderKey(n), DisplayName: n}
	}
	return out
}

func TestHandleReport(t *testing.T) {
	ctx := context.Background()
	admin := testutil.NewAdmin("X", "Admin", "en")

	t.Run("non-admin is denied", func(t *testing.T) {
		f := newFixture(t)

		reply := f.handler.HandleReport(ctx, testutil.NewActor("B", "Bob", "en"), "Raid", members("A"), ReportOptions{Resync: true})

		assert.Equal(t, f.msg("en", locale.KeyPermissionDenied, nil), reply.Text)
		assert.Nil(t, reply.Report)
		_, fetches, _ := f.gateway.Calls()
		assert.Equal(t, 0, fetches)
	})

	t.Run("partitions members", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("A", "19:45")

		reply := f.handler.HandleReport(ctx, admin, "Raid", members("A", "B", "C"), ReportOptions{})

		require.NotNil(t, reply.Report)
		assert.Equal(t, []string{"A"}, reply.Report.SignedIn)
		assert.Equal(t, []string{"B", "C"}, reply.Report.NotSignedIn)
		assert.Equal(t, 1, reply.Report.SignedInCount())
		assert.Equal(t, 2, reply.Report.NotSignedInCount())
		assert.False(t, reply.Report.SyncFailed)
		assert.False(t, reply.Report.MembersFailed)
		assert.Equal(t,
			"📊 **1** members of **Raid** have checked in.\n"+
				"✅ Checked in (1): A\n"+
				"⏳ Not checked in (2): B, C",
			reply.Text)
	})

	t.Run("empty partitions render none", func(t *testing.T) {
		f := newFixture(t)

		reply := f.handler.HandleReport(ctx, admin, "Raid", nil, ReportOptions{})

		require.NotNil(t, reply.Report)
		assert.Empty(t, reply.Report.SignedIn)
		assert.Contains(t, reply.Text, "(none)")
	})

	t.Run("incomplete member list carries a notice", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("1001", "19:45")

		reply := f.handler.HandleReport(ctx, admin, "Raid", nil, ReportOptions{MembersIncomplete: true})

		require.NotNil(t, reply.Report)
		assert.True(t, reply.Report.MembersFailed)
		assert.Equal(t,
			f.msg("en", locale.KeyMembersFailed, nil)+"\n"+
				"📊 **0** members of **Raid** have checked in.\n"+
				"✅ Checked in (0): (none)\n"+
				"⏳ Not checked in (0): (none)",
			reply.Text)
		assert.Equal(t, 1, f.registry.Len())
	})

	t.Run("resync hydrates by display name", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("local-only", "19:30")
		f.gateway.Rows = []models.Row{
			{Name: "B", Choice: "20:00"},
			{Name: "Outsider", Choice: "19:30"},
		}

		reply := f.handler.HandleReport(ctx, admin, "Raid", members("A", "B", "C"), ReportOptions{Resync: true})

		require.NotNil(t, reply.Report)
		assert.Equal(t, []string{"B"}, reply.Report.SignedIn)
		assert.Equal(t, []string{"A", "C"}, reply.Report.NotSignedIn)
		assert.Equal(t, map[models.ResponderKey]models.Choice{
			"B":                         "20:00",
			models.NameKey("Outsider"): "19:30",
		}, f.registry.Snapshot())
		assert.False(t, f.registry.LastHydrated().IsZero())
	})

	t.Run("resync replaces registrations the roster has not seen", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("A", "19:45")
		f.gateway.Rows = []models.Row{}

		f.handler.HandleReport(ctx, admin, "Raid", members("A"), ReportOptions{Resync: true})

		_, ok := f.registry.Lookup("A")
		assert.False(t, ok)
		assert.Equal(t, models.Registered, f.registry.TryRegister("A", "20:00"))
	})

	t.Run("resync failure falls back to local state", func(t *testing.T) {
		f := newFixture(t)
		f.registry.TryRegister("A", "19:45")
		f.gateway.FetchErr = roster.ErrMalformedResponse

		reply := f.handler.HandleReport(ctx, admin, "Raid", members("A", "B"), ReportOptions{Resync: true})

		require.NotNil(t, reply.Report)
		assert.True(t, reply.Report.SyncFailed)
		assert.Equal(t, []string{"A"}, reply.Report.SignedIn)
		assert.Contains(t, reply.Text, f.msg("en", locale.KeySyncFailed, nil))
		assert.Equal(t, 1, f.registry.Len())
	})
}

func TestJoinRows(t *testing.T) {
	ms := []models.Member{
		{Key: "1", DisplayName: "Alice"},
		{Key: "2", DisplayName: "Sam"},
		{Key: "3", DisplayName: "Sam"},
		{Key: "4", DisplayName: ""},
	}
	rows := []models.Row{
		{Name: "Alice", Choice: "19:30"},
		{Name: "Sam", Choice: "19:45"},
		{Name: "Zoe", Choice: "20:00"},
	}

	got := joinRows(rows, ms)

	assert.Equal(t, []models.Record{
		{Key: "1", Choice: "19:30"},
		{Key: models.NameKey("Sam"), Choice: "19:45"},
		{Key: models.NameKey("Zoe"), Choice: "20:00"},
	}, got)
}

func TestIsAdmin(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.handler.IsAdmin(testutil.NewAdmin("X", "Admin", "en")))
	assert.True(t, f.handler.IsAdmin(testutil.NewActor("M", "Mod", "en", "role-admin")))
	assert.False(t, f.handler.IsAdmin(testutil.NewActor("B", "Bob", "en", "role-other")))
}
