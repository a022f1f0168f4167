package models

import (
	"strings"
	"time"
)

// Fixed non-time choices. They are stored and shown as-is in every locale.
const (
	ChoiceConflictPeriod Choice = "領土期間"
	ChoiceCannotAttend   Choice = "無法出席"
)

// Registration outcomes
const (
	Registered RegistrationResult = iota + 1
	AlreadyRegistered
)

// Option styles, mapped to button styles by the front-end
const (
	StylePrimary   = "primary"
	StyleSecondary = "secondary"
	StyleDanger    = "danger"
)

// ResponderKey identifies a responder in the registry. Platform user IDs are
// the canonical form; NameKey builds the fallback form used for roster rows
// that could not be matched to a user.
type ResponderKey string

// Choice is a canonical, locale-independent attendance value such as "19:45".
type Choice string

type RegistrationResult int

func (r RegistrationResult) String() string {
	switch r {
	case Registered:
		return "registered"
	case AlreadyRegistered:
		return "already_registered"
	default:
		return "unknown"
	}
}

const nameKeyPrefix = "name:"

// NameKey returns the registry key for a responder only known by display name.
func NameKey(displayName string) ResponderKey {
	return ResponderKey(nameKeyPrefix + displayName)
}

// IsNameKey reports whether k was built by NameKey.
func (k ResponderKey) IsNameKey() bool {
	return strings.HasPrefix(string(k), nameKeyPrefix)
}

// Domain types

// Actor is whoever triggered an interaction.
type Actor struct {
	Key         ResponderKey
	DisplayName string
	Roles       []string
	IsAdmin     bool // platform-native administrator capability
	Locale      string
}

// Member is a role member considered by a report.
type Member struct {
	Key         ResponderKey
	DisplayName string
}

type Record struct {
	Key    ResponderKey
	Choice Choice
}

// Row is one entry of the external roster, keyed by display name.
type Row struct {
	Name   string `json:"name"`
	Choice Choice `json:"time"`
}

type Option struct {
	Label  string `json:"label"`
	Choice Choice `json:"choice"`
	Style  string `json:"style"`
}

// Prompt is the ordered set of selectable options shown to one user.
type Prompt struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

type Report struct {
	Role        string   `json:"role"`
	SignedIn    []string `json:"signed_in"`
	NotSignedIn []string `json:"not_signed_in"`
	SyncFailed  bool     `json:"sync_failed"`

	// MembersFailed means the role member list could not be read in full.
	MembersFailed bool `json:"members_failed"`
}

func (r Report) SignedInCount() int    { return len(r.SignedIn) }
func (r Report) NotSignedInCount() int { return len(r.NotSignedIn) }

// Reply is what a handler hands back to the front-end for rendering.
type Reply struct {
	Text      string
	Ephemeral bool
	Prompt    *Prompt
	Report    *Report
}

// Response types

type StatusResponse struct {
	Registered   int        `json:"registered"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
