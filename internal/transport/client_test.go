package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recordingObserver struct {
	events []RequestEvent
}

func (o *recordingObserver) OnRequest(_ context.Context, e RequestEvent) {
	o.events = append(o.events, e)
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource, obs Observer) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(Config{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second}, tokens, obs)
	t.Cleanup(c.CloseIdleConnections)
	return c
}

func TestClient_Do_SendsJSONAndBearer(t *testing.T) {
	var gotAuth, gotAccept, gotCT, gotPath, gotMethod string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotCT = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotMethod = r.Method
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 5, "name": "Q1"}`))
	}, staticToken("secret"), nil)

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	err := c.Do(context.Background(), http.MethodPost, "/estimates", map[string]string{"name": "Q1"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "/api/estimates", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Q1", gotBody["name"])
	assert.Equal(t, 5, out.ID)
}

func TestClient_Do_NoTokenNoAuthorization(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, staticToken(""), nil)

	require.NoError(t, c.Do(context.Background(), http.MethodDelete, "/estimates/1", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClient_Do_StatusError(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"missing"}`, http.StatusNotFound)
	}, nil, obs)

	err := c.Do(context.Background(), http.MethodGet, "/templates/9", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "/templates/9", se.Path)
	assert.Contains(t, se.Error(), "missing")

	require.Len(t, obs.events, 1)
	assert.Equal(t, http.StatusNotFound, obs.events[0].Status)
	assert.Equal(t, "HTTP_404", errorCode(obs.events[0].Err))
}

func TestClient_Do_EmptyBodyWithOut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, nil, nil)

	var out map[string]any
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/estimates", nil, &out))
	assert.Nil(t, out)
}

func TestClient_Do_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, nil, nil)

	var out map[string]any
	err := c.Do(context.Background(), http.MethodGet, "/estimates", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_Do_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Timeout: time.Second}, nil, nil)
	t.Cleanup(c.CloseIdleConnections)

	err := c.Do(context.Background(), http.MethodGet, "/estimates", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Do_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, nil, nil)
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Do(ctx, http.MethodGet, "/estimates", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_CookiesAreKept(t *testing.T) {
	var sawCookie bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err == nil {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	}, nil, nil)

	ctx := context.Background()
	require.NoError(t, c.Do(ctx, http.MethodGet, "/user", nil, nil))
	require.NoError(t, c.Do(ctx, http.MethodGet, "/user", nil, nil))
	assert.True(t, sawCookie)
}
