// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p, --port            Keep-alive HTTP port
	--token               Discord bot token
	--guild               Register commands in one guild only
	-b, --backend         Roster backend (http or sql)
	--submit-url          Roster form submit URL
	--fetch-url           Roster JSON export URL
	--clear-url           Roster clear trigger URL
	--name-field          Form field for the display name
	--time-field          Form field for the choice
	--name-key            JSON key for the display name
	--time-key            JSON key for the choice
	--roster-timeout      Timeout for roster calls
	-d, --database-url    Database URL (sql backend)
	-t, --database-type   sqlite or postgres
	--admin-roles         Allow-listed admin role IDs
	--times               Canonical attendance times
	--utc-offset          UTC offset of the canonical times

# Environment Variables

Flags fall back to environment variables (optionally loaded from .env):

	PORT                   → -p (default 8080)
	DISCORD_TOKEN          → --token
	DISCORD_GUILD_ID       → --guild
	ROSTER_BACKEND         → -b (default http)
	GOOGLE_FORM_URL        → --submit-url
	ROSTER_FETCH_URL       → --fetch-url
	ROSTER_CLEAR_URL       → --clear-url
	DISCORD_NAME_ENTRY     → --name-field
	TIME_ENTRY             → --time-field
	ROSTER_NAME_KEY        → --name-key (default name)
	ROSTER_TIME_KEY        → --time-key (default time)
	ROSTER_TIMEOUT         → --roster-timeout (default 5s)
	DATABASE_URL           → -d
	DATABASE_TYPE          → -t (default sqlite)
	ADMIN_ROLE_IDS         → --admin-roles (comma separated)
	ATTENDANCE_TIMES       → --times (default 19:30,19:45,20:00)
	ATTENDANCE_UTC_OFFSET  → --utc-offset (default 8)

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DISCORD_TOKEN is missing
  - the http backend lacks GOOGLE_FORM_URL, DISCORD_NAME_ENTRY or TIME_ENTRY
  - the sql backend lacks DATABASE_URL or has an unknown DATABASE_TYPE
  - a numeric or duration value does not parse
*/
package cliparse
