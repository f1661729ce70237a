package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/planner"
)

func writeData(t *testing.T, w http.ResponseWriter, status int, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"data": data}))
}

func loginServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeData(t, w, http.StatusOK, map[string]interface{}{
				"token":         "access-token",
				"refresh_token": "refresh-token",
				"user":          map[string]string{"id": "u1", "email": req["email"].(string), "full_name": "Teacher One"},
			})
		case "/sessions":
			if r.Header.Get("Authorization") != "Bearer access-token" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": appErrors.ErrUnauthorized})
				return
			}
			writeData(t, w, http.StatusOK, []planner.Session{
				{ID: "s1", StudentID: "st1", Subject: "Math", StartTime: time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClientLoginAndList(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()

	c := New(srv.URL)

	user, err := c.Login(context.Background(), "teacher@example.com", "secret123", false)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	sessions, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID)
}

func TestClientRequiresLogin(t *testing.T) {
	c := New("http://127.0.0.1:0")

	_, err := c.ListSessions(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestClientCreateSessionWireFormat(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeData(t, w, http.StatusCreated, planner.Session{ID: "s1", StudentID: "st1", Subject: "Math"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.tokens.Save(Credentials{Token: "access-token"}))

	created, err := c.CreateSession(context.Background(), planner.CreateSessionInput{
		StudentID:  "st1",
		Subject:    "Math",
		Topic:      "Algebra",
		Date:       "2024-03-15",
		StartClock: "14:00",
		EndClock:   "15:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)
	assert.Equal(t, "2024-03-15", got["date"])
	assert.Equal(t, "14:00", got["start_clock"])
	assert.Equal(t, "15:00", got["end_clock"])
}

func TestClientUpdateSplitsTimes(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeData(t, w, http.StatusOK, planner.Session{ID: "s1"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.tokens.Save(Credentials{Token: "access-token"}))

	start := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC)
	_, err := c.UpdateSession(context.Background(), "s1", planner.UpdateSessionInput{
		StartTime: &start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", got["date"])
	assert.Equal(t, "09:30", got["start_clock"])
	assert.Equal(t, "11:00", got["end_clock"])
	_, hasSubject := got["subject"]
	assert.False(t, hasSubject)
}

func TestClientMapsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": appErrors.ErrRemote})
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.tokens.Save(Credentials{Token: "access-token"}))

	_, err := c.ListSessions(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrRemote))
}

func TestClientMapsConnectionFailure(t *testing.T) {
	c := New("http://127.0.0.1:1")
	require.NoError(t, c.tokens.Save(Credentials{Token: "access-token"}))

	_, err := c.ListSessions(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrRemote))
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileTokenStore(path)

	_, ok := store.Load()
	assert.False(t, ok)

	require.NoError(t, store.Save(Credentials{Token: "a", RefreshToken: "r"}))

	creds, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "a", creds.Token)
	assert.Equal(t, "r", creds.RefreshToken)

	require.NoError(t, store.Clear())
	_, ok = store.Load()
	assert.False(t, ok)
}
