// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/roll-call/cliparse"
	"github.com/danielhkuo/roll-call/db"
	"github.com/danielhkuo/roll-call/models"
)

// SetupTestDB opens an in-memory SQLite database with the roster schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8080,
		DiscordToken:  "test-token",
		RosterBackend: cliparse.BackendHTTP,
		SubmitURL:     "http://roster.invalid/submit",
		NameField:     "entry.1",
		TimeField:     "entry.2",
		NameKey:       "name",
		TimeKey:       "time",
		RosterTimeout: time.Second,
		AdminRoleIDs:  []string{"role-admin"},
		Times:         []string{"19:30", "19:45", "20:00"},
		UTCOffset:     8,
	}
}

// NewActor returns a non-admin actor keyed by id
func NewActor(id, name, loc string, roles ...string) models.Actor {
	return models.Actor{
		Key:         models.ResponderKey(id),
		DisplayName: name,
		Roles:       roles,
		Locale:      loc,
	}
}

// NewAdmin returns an actor with the native administrator flag
func NewAdmin(id, name, loc string) models.Actor {
	a := NewActor(id, name, loc)
	a.IsAdmin = true
	return a
}

// FakeGateway is an in-memory roster gateway that records calls.
// Set the *Err fields to make the matching call fail.
type FakeGateway struct {
	mu sync.Mutex

	Rows []models.Row

	SubmitErr error
	FetchErr  error
	ClearErr  error

	// Block, when set, makes every call wait on ctx before returning
	Block bool

	SubmitCalls int
	FetchCalls  int
	ClearCalls  int
	Submitted   []models.Row
}

func (f *FakeGateway) Submit(ctx context.Context, row models.Row) error {
	f.mu.Lock()
	f.SubmitCalls++
	block, err := f.Block, f.SubmitErr
	if err == nil && !block {
		f.Submitted = append(f.Submitted, row)
		f.Rows = append(f.Rows, row)
	}
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *FakeGateway) FetchAll(ctx context.Context) ([]models.Row, error) {
	f.mu.Lock()
	f.FetchCalls++
	block, err := f.Block, f.FetchErr
	rows := append([]models.Row(nil), f.Rows...)
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (f *FakeGateway) ClearAll(ctx context.Context) error {
	f.mu.Lock()
	f.ClearCalls++
	block, err := f.Block, f.ClearErr
	if err == nil && !block {
		f.Rows = nil
	}
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// Calls returns the submit, fetch and clear counts
func (f *FakeGateway) Calls() (submit, fetch, clear int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SubmitCalls, f.FetchCalls, f.ClearCalls
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
