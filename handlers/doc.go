// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the attendance service.

# AttendanceHandler

AttendanceHandler owns the registry and is built with every dependency it
needs:

	h := handlers.NewAttendanceHandler(reg, gateway, policy, locales, prompts, cfg)

It is front-end agnostic. Callers describe the user as a models.Actor and
get a models.Reply back, which the discord package renders.

# Operations

	ShowPrompt      → localized time buttons
	HandleSelection → register once, then submit to the roster
	HandleReset     → clear registry and roster (administrators)
	HandleReport    → signed-in / not-signed-in split for a role (administrators)

The registry decides duplicates. Roster calls are bounded by
Config.RosterTimeout and their failures are logged, never shown to the user,
except that a failed resync marks the report as built from local data.

# Roster Join

A resync keys roster rows by the role member whose display name matches
exactly once. Other rows keep a name key (see models.NameKey), which
HandleSelection passes as an alias so a returning user is still
recognized.
*/
package handlers
