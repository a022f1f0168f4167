// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package prompt builds the localized attendance buttons.
package prompt

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/roll-call/locale"
	"github.com/danielhkuo/roll-call/models"
)

const (
	clockLayout    = "15:04"
	customIDPrefix = "attendance:"
)

var (
	ErrNoTimes     = errors.New("at least one attendance time is required")
	ErrBadTime     = errors.New("attendance time must look like HH:MM")
	ErrNotPromptID = errors.New("not an attendance custom ID")
)

// Builder produces the choice prompt. Times are canonical clock values in
// the reference UTC offset; only their labels move with the reader's locale.
type Builder struct {
	times           []models.Choice
	referenceOffset int
}

// NewBuilder validates and sorts times ("19:45") and returns a Builder.
func NewBuilder(times []string, referenceOffset int) (*Builder, error) {
	if len(times) == 0 {
		return nil, ErrNoTimes
	}

	parsed := make([]time.Time, 0, len(times))
	for _, raw := range times {
		t, err := time.Parse(clockLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadTime, raw)
		}
		parsed = append(parsed, t)
	}
	slices.SortFunc(parsed, func(a, b time.Time) int { return a.Compare(b) })
	parsed = slices.Compact(parsed)

	b := &Builder{referenceOffset: referenceOffset}
	for _, t := range parsed {
		b.times = append(b.times, models.Choice(t.Format(clockLayout)))
	}
	return b, nil
}

// Build returns the options for one reader: the times in ascending order,
// then the conflict-period option, then cannot-attend.
func (b *Builder) Build(bundle locale.Bundle) models.Prompt {
	p := models.Prompt{
		Text:    bundle.Format(locale.KeyPrompt, nil),
		Options: make([]models.Option, 0, len(b.times)+2),
	}
	shift := time.Duration(bundle.UTCOffset-b.referenceOffset) * time.Hour
	for _, c := range b.times {
		p.Options = append(p.Options, models.Option{
			Label:  shiftLabel(c, shift),
			Choice: c,
			Style:  models.StylePrimary,
		})
	}
	p.Options = append(p.Options,
		models.Option{Label: string(models.ChoiceConflictPeriod), Choice: models.ChoiceConflictPeriod, Style: models.StyleSecondary},
		models.Option{Label: string(models.ChoiceCannotAttend), Choice: models.ChoiceCannotAttend, Style: models.StyleDanger},
	)
	return p
}

// Valid reports whether c belongs to the closed choice set.
func (b *Builder) Valid(c models.Choice) bool {
	if c == models.ChoiceConflictPeriod || c == models.ChoiceCannotAttend {
		return true
	}
	return slices.Contains(b.times, c)
}

func (b *Builder) Times() []models.Choice {
	return slices.Clone(b.times)
}

// shiftLabel moves a canonical clock value by d, wrapping past midnight
func shiftLabel(c models.Choice, d time.Duration) string {
	t, err := time.Parse(clockLayout, string(c))
	if err != nil {
		return string(c)
	}
	return t.Add(d).Format(clockLayout)
}

// CustomID encodes a canonical choice for a UI component.
func CustomID(c models.Choice) string {
	return customIDPrefix + string(c)
}

// ParseCustomID is the inverse of CustomID.
func ParseCustomID(id string) (models.Choice, error) {
	c, ok := strings.CutPrefix(id, customIDPrefix)
	if !ok || c == "" {
		return "", fmt.Errorf("%w: %q", ErrNotPromptID, id)
	}
	return models.Choice(c), nil
}
