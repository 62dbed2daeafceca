package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/profcli/internal/client/models"
	"github.com/vkuzmenko/profcli/internal/common"
)

// ---- helpers ----

func newClient(t *testing.T, srv *httptest.Server) *HTTPClient {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return NewHTTPClient(srv.Client(), *u)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ---- Login ----

func TestLogin_SendsFormEncodedCredentials(t *testing.T) {
	var gotPath, gotContentType, gotUsername, gotPassword string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotUsername = r.PostForm.Get("username")
		gotPassword = r.PostForm.Get("password")
		writeJSON(t, w, http.StatusOK, models.AuthResult{AccessToken: "tok1", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := newClient(t, srv)
	res, err := c.Login(context.Background(), models.LoginCredentials{
		Email:    "a@b.com",
		Password: []byte("secret123"),
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/auth/login", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "a@b.com", gotUsername)
	assert.Equal(t, "secret123", gotPassword)
	assert.Equal(t, "tok1", res.AccessToken)
}

func TestLogin_Rejected_InvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := newClient(t, srv)
		_, err := c.Login(context.Background(), models.LoginCredentials{Email: "a@b.com", Password: []byte("x")})
		require.ErrorIs(t, err, common.ErrInvalidCredentials, "status %d", status)
		srv.Close()
	}
}

func TestLogin_ServerFailure_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClient(t, srv)
	_, err := c.Login(context.Background(), models.LoginCredentials{Email: "a@b.com", Password: []byte("x")})
	require.ErrorIs(t, err, common.ErrServer)
}

func TestLogin_ServerUnreachable_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens any more

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	c := NewHTTPClient(http.DefaultClient, *u)

	_, err = c.Login(context.Background(), models.LoginCredentials{Email: "a@b.com", Password: []byte("x")})
	require.ErrorIs(t, err, common.ErrNetwork)
}

func TestLogin_EmptyToken_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.AuthResult{})
	}))
	defer srv.Close()

	c := newClient(t, srv)
	_, err := c.Login(context.Background(), models.LoginCredentials{Email: "a@b.com", Password: []byte("x")})
	require.ErrorIs(t, err, common.ErrServer)
}

// ---- Signup ----

func TestSignup_SendsJSONBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		writeJSON(t, w, http.StatusCreated, models.AuthResult{AccessToken: "tok2"})
	}))
	defer srv.Close()

	c := newClient(t, srv)
	res, err := c.Signup(context.Background(), models.SignupData{
		Email:    "a@b.com",
		Password: "secret123",
		FullName: "Ann",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/auth/signup", gotPath)
	assert.Equal(t, "a@b.com", gotBody["email"])
	assert.Equal(t, "Ann", gotBody["full_name"])
	_, phoneSent := gotBody["phone_number"]
	assert.False(t, phoneSent, "empty phone number must be omitted")
	assert.Equal(t, "tok2", res.AccessToken)
}

func TestSignup_Rejected_ValidationErrorWithDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"detail": "email already registered"})
	}))
	defer srv.Close()

	c := newClient(t, srv)
	_, err := c.Signup(context.Background(), models.SignupData{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email already registered")
}

// ---- CurrentUser ----

func TestCurrentUser_DecodesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.User{ID: 1, Email: "a@b.com", FullName: "Ann"})
	}))
	defer srv.Close()

	c := newClient(t, srv)
	u, err := c.CurrentUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Ann", u.FullName)
}

func TestCurrentUser_Unauthorized_SessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newClient(t, srv)
	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, common.ErrSessionExpired)
}

// ---- UpdateProfile ----

func TestUpdateProfile_SendsOnlySuppliedFields(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		writeJSON(t, w, http.StatusOK, models.User{ID: 1, FullName: "Ann", PhoneNumber: "555"})
	}))
	defer srv.Close()

	phone := "555"
	c := newClient(t, srv)
	u, err := c.UpdateProfile(context.Background(), models.ProfileUpdate{PhoneNumber: &phone})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "555", gotBody["phone_number"])
	_, nameSent := gotBody["full_name"]
	assert.False(t, nameSent, "unsupplied fields must be omitted from a partial update")
	assert.Equal(t, "555", u.PhoneNumber)
	assert.Equal(t, "Ann", u.FullName, "server returns the full updated record")
}

func TestUpdateProfile_Rejected_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	name := ""
	c := newClient(t, srv)
	_, err := c.UpdateProfile(context.Background(), models.ProfileUpdate{FullName: &name})
	require.ErrorIs(t, err, common.ErrValidation)
}
