package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/profcli/internal/client/models"
	"github.com/vkuzmenko/profcli/internal/client/session"
	"github.com/vkuzmenko/profcli/internal/common"
	"github.com/vkuzmenko/profcli/internal/logging"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeStore is an in-memory tokenstore.Store.
type fakeStore struct {
	token  string
	getErr error

	clearCalled bool
}

func (f *fakeStore) Get(context.Context) (string, error) { return f.token, f.getErr }
func (f *fakeStore) Set(_ context.Context, t string) error {
	f.token = t
	return nil
}
func (f *fakeStore) Clear(context.Context) error {
	f.token = ""
	f.clearCalled = true
	return nil
}

func newRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

// ---- TESTS ----

func TestDo_TokenPresent_AttachesBearerHeader(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := NewAuthorizer(srv.Client(), &fakeStore{token: "tok1"}, session.New(), testLogger())

	resp, err := a.Do(newRequest(t, srv.URL))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer tok1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestDo_TokenAbsent_SendsUnauthenticated(t *testing.T) {
	var gotAuth string
	hasAuth := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := NewAuthorizer(srv.Client(), &fakeStore{}, session.New(), testLogger())

	resp, err := a.Do(newRequest(t, srv.URL))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, gotAuth)
	assert.False(t, hasAuth)
}

func TestDo_UnauthorizedWithToken_ExpiresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &fakeStore{token: "tok1"}
	state := session.New()
	state.Set("tok1", &models.User{ID: 1})

	a := NewAuthorizer(srv.Client(), store, state, testLogger())

	_, err := a.Do(newRequest(t, srv.URL))
	require.ErrorIs(t, err, common.ErrSessionExpired)

	assert.True(t, store.clearCalled)
	assert.Empty(t, store.token)
	assert.False(t, state.Read().Authenticated)
	assert.Nil(t, state.Read().User)
}

func TestDo_UnauthorizedWithoutToken_PassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &fakeStore{}
	a := NewAuthorizer(srv.Client(), store, session.New(), testLogger())

	resp, err := a.Do(newRequest(t, srv.URL))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, store.clearCalled, "an unauthenticated 401 must not touch the stores")
}

func TestDo_StoreReadError_Fails(t *testing.T) {
	a := NewAuthorizer(http.DefaultClient, &fakeStore{getErr: errors.New("disk gone")}, session.New(), testLogger())

	_, err := a.Do(newRequest(t, "http://127.0.0.1:0"))
	require.Error(t, err)
}
