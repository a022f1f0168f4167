// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/roll-call/models"
)

const (
	DefaultTimeout = 5 * time.Second

	// cap on how much of an error body ends up in logs
	maxErrorBody = 512
)

// HTTPConfig describes the spreadsheet-backed form endpoints. Field and key
// names are whatever the form and the sheet export use.
type HTTPConfig struct {
	SubmitURL string
	FetchURL  string
	ClearURL  string

	// form fields for Submit
	NameField string
	TimeField string

	// JSON object keys for FetchAll
	NameKey string
	TimeKey string

	Timeout time.Duration
}

type HTTPGateway struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTPGateway returns a gateway over cfg. A nil client gets a default
// one bounded by cfg.Timeout.
func NewHTTPGateway(cfg HTTPConfig, client *http.Client) *HTTPGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPGateway{cfg: cfg, client: client}
}

// Submit posts the row as form-encoded fields
func (g *HTTPGateway) Submit(ctx context.Context, row models.Row) error {
	if g.cfg.SubmitURL == "" {
		return fmt.Errorf("%w: submit", ErrNotConfigured)
	}

	form := url.Values{}
	form.Set(g.cfg.NameField, row.Name)
	form.Set(g.cfg.TimeField, string(row.Choice))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.SubmitURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	slog.Info("roster row submitted", "name", row.Name, "choice", row.Choice, "status", resp.StatusCode)
	return nil
}

// FetchAll reads the roster as a JSON array of objects. Elements that are
// not objects, or lack a name or time, are skipped.
func (g *HTTPGateway) FetchAll(ctx context.Context) ([]models.Row, error) {
	if g.cfg.FetchURL == "" {
		return nil, fmt.Errorf("%w: fetch", ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.FetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	rows := make([]models.Row, 0, len(elems))
	skipped := 0
	for _, raw := range elems {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		var obj map[string]any
		if err := dec.Decode(&obj); err != nil || obj == nil {
			skipped++
			continue
		}
		row, ok := keepRow(scalar(obj[g.cfg.NameKey]), scalar(obj[g.cfg.TimeKey]))
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		slog.Warn("skipped incomplete roster rows", "skipped", skipped, "kept", len(rows))
	}
	return rows, nil
}

// ClearAll triggers the remote wipe endpoint
func (g *HTTPGateway) ClearAll(ctx context.Context) error {
	if g.cfg.ClearURL == "" {
		return fmt.Errorf("%w: clear", ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.ClearURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build clear request: %w", err)
	}

	resp, err := g.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	slog.Info("roster cleared", "status", resp.StatusCode)
	return nil
}

// do sends req and maps transport failures and non-2xx answers onto the
// gateway errors. On success the caller owns resp.Body.
func (g *HTTPGateway) do(req *http.Request) (*http.Response, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, req.Method, req.URL.Host, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s %s: status %d: %s",
			ErrRemoteRejected, req.Method, req.URL.Host, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

// scalar renders a JSON scalar as text; anything else becomes empty
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
