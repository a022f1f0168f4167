// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/roll-call/locale"
	"github.com/danielhkuo/roll-call/models"
)

// joinRows maps roster rows (keyed by display name) onto registry records.
// A name that belongs to exactly one member takes that member's key; any
// other name is kept under its NameKey. Display names are not unique, so
// this join is best-effort.
func joinRows(rows []models.Row, members []models.Member) []models.Record {
	byName := make(map[string]models.ResponderKey, len(members))
	ambiguous := make(map[string]bool)
	for _, m := range members {
		if m.DisplayName == "" {
			continue
		}
		if prev, ok := byName[m.DisplayName]; ok && prev != m.Key {
			ambiguous[m.DisplayName] = true
			continue
		}
		byName[m.DisplayName] = m.Key
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		key, ok := byName[row.Name]
		if !ok || ambiguous[row.Name] {
			key = models.NameKey(row.Name)
		}
		records = append(records, models.Record{Key: key, Choice: row.Choice})
	}
	return records
}

func renderReport(bundle locale.Bundle, r models.Report) string {
	var lines []string
	if r.SyncFailed {
		lines = append(lines, bundle.Format(locale.KeySyncFailed, nil))
	}
	if r.MembersFailed {
		lines = append(lines, bundle.Format(locale.KeyMembersFailed, nil))
	}

	lines = append(lines,
		bundle.Format(locale.KeyReportHeader, locale.Vars{
			"role":  r.Role,
			"count": strconv.Itoa(r.SignedInCount()),
		}),
		bundle.Format(locale.KeyReportSignedIn, locale.Vars{
			"count": strconv.Itoa(r.SignedInCount()),
			"names": joinNames(bundle, r.SignedIn),
		}),
		bundle.Format(locale.KeyReportNotSignedIn, locale.Vars{
			"count": strconv.Itoa(r.NotSignedInCount()),
			"names": joinNames(bundle, r.NotSignedIn),
		}),
	)
	return strings.Join(lines, "\n")
}

func joinNames(bundle locale.Bundle, names []string) string {
	if len(names) == 0 {
		return bundle.Format(locale.KeyReportNone, nil)
	}
	return strings.Join(names, bundle.Format(locale.KeySeparator, nil))
}
