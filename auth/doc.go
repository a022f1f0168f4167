// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth decides whether an actor may run administrative commands.

# Policy

An actor is an administrator when the platform says so, or when any of
their roles is in the allow-list configured at startup:

	policy := auth.NewPolicy(cfg.AdminRoleIDs)
	if !policy.IsAdmin(actor) {
		// reply with the permission-denied message
	}

RequireAdmin returns ErrPermissionDenied instead of false.

The policy is a pure predicate: no I/O, no mutation after construction.
*/
package auth
