// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package locale

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template keys
const (
	KeyPrompt            = "prompt"
	KeyAlreadyChecked    = "already_checked"
	KeySuccess           = "success"
	KeyInvalidChoice     = "invalid_choice"
	KeyPermissionDenied  = "permission_denied"
	KeyResetDone         = "reset_done"
	KeyReportHeader      = "report_header"
	KeyReportSignedIn    = "report_signed_in"
	KeyReportNotSignedIn = "report_not_signed_in"
	KeyReportNone        = "report_none"
	KeySeparator         = "separator"
	KeySyncFailed        = "sync_failed"
	KeyMembersFailed     = "members_failed"
)

//go:embed bundles.yaml
var defaultBundles []byte

var ErrNoDefaultBundle = errors.New("default bundle not defined")

// Bundle is the set of message templates for one language family.
type Bundle struct {
	Family    string            `yaml:"-"`
	UTCOffset int               `yaml:"utc_offset"`
	Messages  map[string]string `yaml:"messages"`
}

// Vars are the placeholder values substituted by Format.
type Vars map[string]string

// Format fills the template stored under key. Placeholders look like {name}.
// A missing key formats to the key itself so a gap in a bundle stays visible.
func (b Bundle) Format(key string, vars Vars) string {
	tmpl, ok := b.Messages[key]
	if !ok {
		return key
	}
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

type file struct {
	Default string             `yaml:"default"`
	Order   []string           `yaml:"order"`
	Bundles map[string]*Bundle `yaml:"bundles"`
}

// Provider resolves locale tags to bundles. It is immutable once built.
type Provider struct {
	order    []string
	bundles  map[string]Bundle
	fallback Bundle
}

// NewProvider returns a Provider over the embedded bundles.
func NewProvider() (*Provider, error) {
	return Parse(defaultBundles)
}

// Parse builds a Provider from YAML bundle data.
func Parse(data []byte) (*Provider, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse locale bundles: %w", err)
	}

	p := &Provider{bundles: make(map[string]Bundle, len(f.Bundles))}
	for family, b := range f.Bundles {
		if b == nil {
			continue
		}
		b.Family = family
		p.bundles[family] = *b
	}

	fallback, ok := p.bundles[f.Default]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDefaultBundle, f.Default)
	}
	p.fallback = fallback

	for _, family := range f.Order {
		if _, ok := p.bundles[family]; ok {
			p.order = append(p.order, family)
		}
	}
	return p, nil
}

// Resolve returns the bundle for the first family whose tag is contained in
// the locale tag ("zh-TW" → zh). Unmatched tags get the default bundle.
func (p *Provider) Resolve(tag string) Bundle {
	tag = strings.ToLower(tag)
	for _, family := range p.order {
		if strings.Contains(tag, family) {
			return p.bundles[family]
		}
	}
	return p.fallback
}
