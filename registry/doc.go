// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry holds who has checked in during the current session.

The Registry is the only place duplicates are decided. It starts empty on
every process start and is refilled from the external roster by Hydrate
when an administrator asks for a resync.

	reg := registry.New()
	if reg.TryRegister(key, "19:45") == models.AlreadyRegistered {
		// ignore the click
	}
*/
package registry
