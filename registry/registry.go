// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"sync"
	"time"

	"github.com/danielhkuo/roll-call/models"
)

// Registry is the in-memory responder → choice mapping. It caches the
// external roster and is the fast path for duplicate prevention.
//
// Every method holds the same mutex for its whole body, so a Clear or
// Hydrate never interleaves with the check-then-set of TryRegister.
type Registry struct {
	mu           sync.Mutex
	records      map[models.ResponderKey]models.Choice
	lastHydrated time.Time
	now          func() time.Time
}

func New() *Registry {
	return &Registry{
		records: make(map[models.ResponderKey]models.Choice),
		now:     time.Now,
	}
}

// TryRegister stores choice under key unless the responder already has a
// record. The first write wins.
//
// aliases are other keys the same responder may be stored under, such as a
// NameKey left by Hydrate. A hit on an alias counts as already registered and
// the record is moved to key so later lookups by key find it.
func (r *Registry) TryRegister(key models.ResponderKey, choice models.Choice, aliases ...models.ResponderKey) models.RegistrationResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[key]; ok {
		return models.AlreadyRegistered
	}
	for _, alias := range aliases {
		if alias == key {
			continue
		}
		if existing, ok := r.records[alias]; ok {
			delete(r.records, alias)
			r.records[key] = existing
			return models.AlreadyRegistered
		}
	}

	r.records[key] = choice
	return models.Registered
}

// Clear removes every record.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.records)
}

// Hydrate replaces the whole content with records. The last record for a
// key wins; anything not in records is dropped.
func (r *Registry) Hydrate(records []models.Record) {
	next := make(map[models.ResponderKey]models.Choice, len(records))
	for _, rec := range records {
		next[rec.Key] = rec.Choice
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = next
	r.lastHydrated = r.now()
}

// Snapshot returns a copy of the current content.
func (r *Registry) Snapshot() map[models.ResponderKey]models.Choice {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[models.ResponderKey]models.Choice, len(r.records))
	for k, v := range r.records {
		out[k] = v
	}
	return out
}

func (r *Registry) Lookup(key models.ResponderKey) (models.Choice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.records[key]
	return c, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// LastHydrated is the time of the last Hydrate, zero if there was none.
func (r *Registry) LastHydrated() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastHydrated
}
