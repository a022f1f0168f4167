// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package discord connects the attendance service to Discord.

# Commands

Three slash commands are registered when the session becomes ready:

  - /attendance: shows the time prompt to the caller only
  - /attendance-reset: clears all attendance (administrators)
  - /attendance-report role [resync]: signed-in report for a role (administrators)

The legacy text command !clear_attendance behaves like /attendance-reset.

# Interactions

Every interaction is acknowledged with a deferred response before the
service runs, and the reply is sent as a follow-up. Prompt buttons carry
the canonical choice in their custom ID (see prompt.CustomID), so the
label a user sees never feeds back into the registry.

The Dispatcher works against the Session interface, which
*discordgo.Session satisfies.
*/
package discord
