// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/roll-call/auth"
	"github.com/danielhkuo/roll-call/cliparse"
	"github.com/danielhkuo/roll-call/locale"
	"github.com/danielhkuo/roll-call/models"
	"github.com/danielhkuo/roll-call/prompt"
	"github.com/danielhkuo/roll-call/registry"
	"github.com/danielhkuo/roll-call/roster"
)

// ReportOptions tunes HandleReport.
type ReportOptions struct {
	// Resync re-hydrates the registry from the roster before reporting.
	Resync bool
	// MembersIncomplete marks members as a partial list; the report then
	// carries a notice instead of passing for a complete count.
	MembersIncomplete bool
}

type AttendanceHandler struct {
	registry *registry.Registry
	roster   roster.Gateway
	policy   *auth.Policy
	locales  *locale.Provider
	prompts  *prompt.Builder
	cfg      cliparse.Config
}

func NewAttendanceHandler(
	reg *registry.Registry,
	gw roster.Gateway,
	policy *auth.Policy,
	locales *locale.Provider,
	prompts *prompt.Builder,
	cfg cliparse.Config,
) *AttendanceHandler {
	return &AttendanceHandler{
		registry: reg,
		roster:   gw,
		policy:   policy,
		locales:  locales,
		prompts:  prompts,
		cfg:      cfg,
	}
}

// IsAdmin reports whether actor may reset or report.
func (h *AttendanceHandler) IsAdmin(actor models.Actor) bool {
	return h.policy.IsAdmin(actor)
}

// ShowPrompt returns the choice prompt localized for actor
func (h *AttendanceHandler) ShowPrompt(actor models.Actor) models.Reply {
	p := h.prompts.Build(h.locales.Resolve(actor.Locale))
	return models.Reply{Text: p.Text, Ephemeral: true, Prompt: &p}
}

// HandleSelection registers actor's choice once. Repeats only get the
// "already checked" reply. The roster submit happens after the local write
// and its failure never changes the reply.
//
// A repeat leaves the stored choice alone and submits nothing. The one
// write on that path is the registry moving a record found under the
// actor's NameKey (left by a resync) to actor.Key, which completes the
// name join for that user.
func (h *AttendanceHandler) HandleSelection(ctx context.Context, actor models.Actor, choice models.Choice) models.Reply {
	bundle := h.locales.Resolve(actor.Locale)
	vars := locale.Vars{"name": actor.DisplayName, "time": string(choice)}

	if !h.prompts.Valid(choice) {
		slog.Warn("unknown attendance choice", "user", actor.Key, "choice", choice)
		return models.Reply{Text: bundle.Format(locale.KeyInvalidChoice, vars), Ephemeral: true}
	}

	var aliases []models.ResponderKey
	if actor.DisplayName != "" {
		aliases = append(aliases, models.NameKey(actor.DisplayName))
	}

	if h.registry.TryRegister(actor.Key, choice, aliases...) == models.AlreadyRegistered {
		slog.Info("duplicate attendance ignored", "user", actor.Key, "choice", choice)
		return models.Reply{Text: bundle.Format(locale.KeyAlreadyChecked, vars), Ephemeral: true}
	}

	ctx, cancel := context.WithTimeout(ctx, h.cfg.RosterTimeout)
	defer cancel()
	if err := h.roster.Submit(ctx, models.Row{Name: actor.DisplayName, Choice: choice}); err != nil {
		// Non-fatal: the local registration stands, a resync can repair the roster
		slog.Warn("roster submit failed", "error", err, "user", actor.Key, "choice", choice)
	}

	slog.Info("attendance registered", "user", actor.Key, "name", actor.DisplayName, "choice", choice)
	return models.Reply{Text: bundle.Format(locale.KeySuccess, vars), Ephemeral: true}
}

// HandleReset clears the registry and asks the roster to do the same.
// Only administrators may reset.
func (h *AttendanceHandler) HandleReset(ctx context.Context, actor models.Actor) models.Reply {
	bundle := h.locales.Resolve(actor.Locale)

	if err := h.policy.RequireAdmin(actor); err != nil {
		slog.Warn("reset denied", "user", actor.Key)
		return models.Reply{Text: bundle.Format(locale.KeyPermissionDenied, nil), Ephemeral: true}
	}

	h.registry.Clear()

	ctx, cancel := context.WithTimeout(ctx, h.cfg.RosterTimeout)
	defer cancel()
	if err := h.roster.ClearAll(ctx); err != nil {
		slog.Warn("roster clear failed", "error", err)
	}

	slog.Info("attendance reset", "user", actor.Key)
	return models.Reply{Text: bundle.Format(locale.KeyResetDone, nil), Ephemeral: false}
}

// HandleReport splits members into signed-in and not-signed-in. With
// Resync the registry is first replaced by the roster content; if that
// fetch fails the current registry is used and the report says so.
func (h *AttendanceHandler) HandleReport(ctx context.Context, actor models.Actor, role string, members []models.Member, opts ReportOptions) models.Reply {
	bundle := h.locales.Resolve(actor.Locale)

	if err := h.policy.RequireAdmin(actor); err != nil {
		slog.Warn("report denied", "user", actor.Key)
		return models.Reply{Text: bundle.Format(locale.KeyPermissionDenied, nil), Ephemeral: true}
	}

	report := models.Report{Role: role, MembersFailed: opts.MembersIncomplete}

	if opts.Resync {
		fetchCtx, cancel := context.WithTimeout(ctx, h.cfg.RosterTimeout)
		rows, err := h.roster.FetchAll(fetchCtx)
		cancel()
		if err != nil {
			slog.Warn("roster fetch failed, reporting local state", "error", err)
			report.SyncFailed = true
		} else {
			// Replaces, not merges: a Submit still in flight when FetchAll ran
			// is lost locally until the next resync.
			h.registry.Hydrate(joinRows(rows, members))
			slog.Info("registry hydrated from roster", "rows", len(rows))
		}
	}

	snapshot := h.registry.Snapshot()
	report.SignedIn = []string{}
	report.NotSignedIn = []string{}
	for _, m := range members {
		if _, ok := snapshot[m.Key]; ok {
			report.SignedIn = append(report.SignedIn, m.DisplayName)
		} else {
			report.NotSignedIn = append(report.NotSignedIn, m.DisplayName)
		}
	}

	slog.Info("attendance report",
		"role", role,
		"signed_in", report.SignedInCount(),
		"not_signed_in", report.NotSignedInCount(),
		"sync_failed", report.SyncFailed,
		"members_failed", report.MembersFailed,
	)

	return models.Reply{Text: renderReport(bundle, report), Ephemeral: true, Report: &report}
}

// Registry exposes the handler's registry for status reporting.
func (h *AttendanceHandler) Registry() *registry.Registry {
	return h.registry
}
