// Package client is the HTTP binding of the session API consumed by the
// planner. It authenticates against the server, persists tokens through a
// TokenStore and maps transport failures to the remote error code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/planner"
)

const clockLayout = "15:04"

// Client talks to the tutorboard API. It implements planner.API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore replaces the credential store. The default keeps tokens in
// memory only.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// New constructs a Client for the API at baseURL, which should include the
// API prefix (e.g. "http://localhost:8080/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

// LoginResult is the identity returned by a successful login.
type LoginResult struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Login authenticates and stores the issued tokens. With remember set the
// server issues a long-lived refresh token; pair it with a FileTokenStore
// to keep the session across restarts.
func (c *Client) Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"remember": remember,
	}

	var out struct {
		Token        string      `json:"token"`
		RefreshToken string      `json:"refresh_token"`
		User         LoginResult `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &out, false); err != nil {
		return nil, err
	}

	if err := c.tokens.Save(Credentials{Token: out.Token, RefreshToken: out.RefreshToken}); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	return &out.User, nil
}

// Logout revokes the stored refresh token and clears the store.
func (c *Client) Logout(ctx context.Context) error {
	creds, ok := c.tokens.Load()
	if !ok {
		return nil
	}
	payload := map[string]string{"refresh_token": creds.RefreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/logout", payload, nil, true); err != nil {
		return err
	}
	return c.tokens.Clear()
}

// ListSessions returns every session of the authenticated teacher.
func (c *Client) ListSessions(ctx context.Context) ([]planner.Session, error) {
	var sessions []planner.Session
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &sessions, true); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession stores a new session and returns it with its assigned ID.
func (c *Client) CreateSession(ctx context.Context, in planner.CreateSessionInput) (*planner.Session, error) {
	payload := map[string]interface{}{
		"student_id":  in.StudentID,
		"subject":     in.Subject,
		"topic":       in.Topic,
		"date":        in.Date,
		"start_clock": in.StartClock,
		"end_clock":   in.EndClock,
	}
	var session planner.Session
	if err := c.do(ctx, http.MethodPost, "/sessions", payload, &session, true); err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSession applies a partial update. Time fields are split into the
// server's date and wall-clock form.
func (c *Client) UpdateSession(ctx context.Context, id string, in planner.UpdateSessionInput) (*planner.Session, error) {
	payload := map[string]interface{}{}
	if in.StudentID != nil {
		payload["student_id"] = *in.StudentID
	}
	if in.Subject != nil {
		payload["subject"] = *in.Subject
	}
	if in.Topic != nil {
		payload["topic"] = *in.Topic
	}
	if in.StartTime != nil {
		payload["date"] = planner.KeyOf(*in.StartTime).String()
		payload["start_clock"] = in.StartTime.Format(clockLayout)
	}
	if in.EndTime != nil {
		payload["end_clock"] = in.EndTime.Format(clockLayout)
	}

	var session planner.Session
	if err := c.do(ctx, http.MethodPatch, "/sessions/"+id, payload, &session, true); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+id, nil, nil, true)
}

// AgendaDay mirrors the server's day view payload.
type AgendaDay struct {
	Date     string            `json:"date"`
	Sessions []planner.Session `json:"sessions"`
}

// Day fetches the day view for the given date.
func (c *Client) Day(ctx context.Context, date string) (*AgendaDay, error) {
	var day AgendaDay
	if err := c.do(ctx, http.MethodGet, "/agenda/day?date="+date, nil, &day, true); err != nil {
		return nil, err
	}
	return &day, nil
}

// AgendaCell mirrors one cell of the server's month grid.
type AgendaCell struct {
	Date       string `json:"date"`
	InMonth    bool   `json:"in_month"`
	Today      bool   `json:"today"`
	HasEvents  bool   `json:"has_events"`
	EventCount int    `json:"event_count"`
}

// AgendaMonth mirrors the server's month view payload.
type AgendaMonth struct {
	Month string       `json:"month"`
	Cells []AgendaCell `json:"cells"`
}

// Month fetches the 42-cell grid for the given YYYY-MM month.
func (c *Client) Month(ctx context.Context, month string) (*AgendaMonth, error) {
	var grid AgendaMonth
	if err := c.do(ctx, http.MethodGet, "/agenda/month?month="+month, nil, &grid, true); err != nil {
		return nil, err
	}
	return &grid, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}, authed bool) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		creds, ok := c.tokens.Load()
		if !ok {
			return appErrors.Clone(appErrors.ErrUnauthorized, "not logged in")
		}
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, "read response")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, "decode response")
	}

	if resp.StatusCode >= 400 {
		if env.Error != nil {
			return env.Error
		}
		return appErrors.Clone(appErrors.ErrRemote, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, "decode payload")
		}
	}
	return nil
}
