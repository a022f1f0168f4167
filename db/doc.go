// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation for the SQL roster backend.

# Schema Creation

CreateSchema initializes the roster table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

  - roster_row: one row per attendance submission (name, choice, submitted_at)

The SQL backend is an alternative system of record to the spreadsheet form.
The bot itself never persists its in-memory registry.
*/
package db
