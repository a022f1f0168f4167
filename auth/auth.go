// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"

	"github.com/danielhkuo/roll-call/models"
)

var ErrPermissionDenied = errors.New("permission denied")

// Policy decides who may run administrative commands. It is built once at
// startup and never changes.
type Policy struct {
	allowedRoles map[string]struct{}
}

// NewPolicy returns a Policy granting admin rights to the given role IDs in
// addition to the platform's administrator flag. Blank IDs are ignored.
func NewPolicy(allowedRoleIDs []string) *Policy {
	p := &Policy{allowedRoles: make(map[string]struct{}, len(allowedRoleIDs))}
	for _, id := range allowedRoleIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			p.allowedRoles[id] = struct{}{}
		}
	}
	return p
}

// IsAdmin reports whether actor holds the native administrator capability
// or any allow-listed role.
func (p *Policy) IsAdmin(actor models.Actor) bool {
	if actor.IsAdmin {
		return true
	}
	for _, role := range actor.Roles {
		if _, ok := p.allowedRoles[role]; ok {
			return true
		}
	}
	return false
}

// RequireAdmin is IsAdmin as an error.
func (p *Policy) RequireAdmin(actor models.Actor) error {
	if !p.IsAdmin(actor) {
		return ErrPermissionDenied
	}
	return nil
}
