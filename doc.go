// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Roll Call attendance bot.

Roll Call is a Discord bot that lets members pick an attendance time from a
button prompt, mirrors every pick to an external roster (a Google Form or a
SQL table) and gives administrators a per-role signed-in report.

# Starting the Bot

The bot reads a .env file, environment variables or CLI flags:

	DISCORD_TOKEN=... GOOGLE_FORM_URL=... go run .

Or with flags:

	go run . --token ... -b sql -t sqlite -d roll-call.db

# Configuration

Required settings:

  - DISCORD_TOKEN (--token): Bot token
  - GOOGLE_FORM_URL, DISCORD_NAME_ENTRY, TIME_ENTRY: http backend target
  - DATABASE_URL (-d), DATABASE_TYPE (-t): sql backend target

Optional settings:

  - PORT (-p): Keep-alive server port (default: 8080)
  - DISCORD_GUILD_ID (--guild): Register commands in one guild only
  - ROSTER_BACKEND (-b): http or sql (default: http)
  - ROSTER_FETCH_URL, ROSTER_CLEAR_URL: Roster read and clear endpoints
  - ADMIN_ROLE_IDS (--admin-roles): Role IDs allowed to reset and report
  - ATTENDANCE_TIMES (--times): Offered times (default: 19:30,19:45,20:00)
  - ATTENDANCE_UTC_OFFSET (--utc-offset): Zone of the times (default: 8)
  - ROSTER_TIMEOUT (--roster-timeout): Roster call bound (default: 5s)

# Architecture

  - discord: Session bootstrap, command registration, event dispatch
  - handlers: Attendance service
  - registry: In-memory duplicate guard
  - roster: External roster gateways (http, sql)
  - prompt: Button prompt construction
  - locale: Message bundles
  - auth: Administrator policy
  - router: Keep-alive HTTP routes
  - middleware: Logging and JSON helpers
  - models: Shared types
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
