// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/danielhkuo/roll-call/auth"
	"github.com/danielhkuo/roll-call/locale"
	"github.com/danielhkuo/roll-call/models"
	"github.com/danielhkuo/roll-call/prompt"
	"github.com/danielhkuo/roll-call/registry"
	"github.com/danielhkuo/roll-call/roster"
	"github.com/danielhkuo/roll-call/testutil"
)

// TestConcurrentSelectionsManyUsers has every user click every button at
// once. Each user must end up with exactly one roster row.
func TestConcurrentSelectionsManyUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	locales, err := locale.NewProvider()
	if err != nil {
		t.Fatal(err)
	}
	builder, err := prompt.NewBuilder(cfg.Times, cfg.UTCOffset)
	if err != nil {
		t.Fatal(err)
	}
	gw := roster.NewSQLGateway(db)
	h := NewAttendanceHandler(registry.New(), gw, auth.NewPolicy(cfg.AdminRoleIDs), locales, builder, cfg)

	numUsers := 10
	choices := builder.Times()

	var wg sync.WaitGroup
	for u := 0; u < numUsers; u++ {
		actor := testutil.NewActor(fmt.Sprintf("u%d", u), fmt.Sprintf("User%d", u), "en")
		for _, c := range choices {
			wg.Add(1)
			go func(c models.Choice) {
				defer wg.Done()
				h.HandleSelection(context.Background(), actor, c)
			}(c)
		}
	}
	wg.Wait()

	if got := h.Registry().Len(); got != numUsers {
		t.Errorf("expected %d registrations, got %d", numUsers, got)
	}

	rows, err := gw.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	perUser := make(map[string]int)
	for _, r := range rows {
		perUser[r.Name]++
	}
	if len(perUser) != numUsers {
		t.Errorf("expected rows for %d users, got %d", numUsers, len(perUser))
	}
	for name, n := range perUser {
		if n != 1 {
			t.Errorf("%s has %d roster rows, want 1", name, n)
		}
	}
}

// TestConcurrentSelectionsAndReset races clicks against resets. Afterwards
// the registry and a fresh round of clicks must still behave.
func TestConcurrentSelectionsAndReset(t *testing.T) {
	f := newFixture(t)
	admin := testutil.NewAdmin("X", "Admin", "en")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%10 == 0 {
				f.handler.HandleReset(ctx, admin)
				return
			}
			f.handler.HandleSelection(ctx, testutil.NewActor(fmt.Sprintf("u%d", i), "User", "en"), "19:30")
		}(i)
	}
	wg.Wait()

	f.handler.HandleReset(ctx, admin)
	if f.registry.Len() != 0 {
		t.Fatalf("registry not empty after reset: %d", f.registry.Len())
	}

	success := f.msg("en", locale.KeySuccess, locale.Vars{"name": "User", "time": "20:00"})
	reply := f.handler.HandleSelection(ctx, testutil.NewActor("u1", "User", "en"), "20:00")
	if reply.Text != success {
		t.Errorf("click after reset: got %q, want %q", reply.Text, success)
	}
}
