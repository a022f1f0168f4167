// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and response types shared by the bot.

# Domain Types

  - ResponderKey: registry key (platform user ID, or NameKey for roster-only rows)
  - Choice: canonical attendance value ("19:45", "領土期間", "無法出席")
  - Actor: who triggered an interaction, with roles, admin flag and locale
  - Member: a role member considered by a report
  - Record: one registry entry
  - Row: one external roster entry (display name + choice)
  - Prompt / Option: the ordered, localized choice prompt
  - Report: signed-in / not-signed-in partition of a role
  - Reply: what a handler returns to the front-end

# Response Types

Types for the status endpoint:

  - StatusResponse: registered, last_synced_at
  - ErrorResponse: error, message

# Constants

Fixed alternatives:

	ChoiceConflictPeriod = "領土期間"
	ChoiceCannotAttend   = "無法出席"

Registration outcomes:

	Registered
	AlreadyRegistered
*/
package models
