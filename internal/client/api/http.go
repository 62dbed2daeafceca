package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/vkuzmenko/profcli/internal/client/models"
	"github.com/vkuzmenko/profcli/internal/common"
)

const (
	loginPath  = "api/v1/auth/login"
	signupPath = "api/v1/auth/signup"
	mePath     = "api/v1/auth/me"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient implements Client over the REST wire contract of the account
// service. The injected httpClient is expected to be a transport.Authorizer.
type HTTPClient struct {
	client  httpClient
	baseURL url.URL
}

func NewHTTPClient(client httpClient, baseURL url.URL) *HTTPClient {
	return &HTTPClient{client: client, baseURL: baseURL}
}

// Login exchanges credentials for an access token. The backend expects a
// form-urlencoded body with the email passed as "username".
func (c *HTTPClient) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResult, error) {
	form := url.Values{}
	form.Set("username", creds.Email)
	form.Set("password", string(creds.Password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL.JoinPath(loginPath).String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return decodeAuthResult(resp.Body)
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, common.ErrInvalidCredentials
	default:
		return nil, serverError(resp)
	}
}

// Signup creates a new account. Validation is server-determined (duplicate
// email, weak password) and surfaces as common.ErrValidation.
func (c *HTTPClient) Signup(ctx context.Context, data models.SignupData) (*models.AuthResult, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL.JoinPath(signupPath).String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated:
		return decodeAuthResult(resp.Body)
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, validationError(resp)
	default:
		return nil, serverError(resp)
	}
}

// CurrentUser fetches the authenticated identity's full profile. It is only
// meaningful once a token has been persisted.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL.JoinPath(mePath).String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return decodeUser(resp.Body)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, common.ErrSessionExpired
	default:
		return nil, serverError(resp)
	}
}

// UpdateProfile sends a partial profile change and returns the full updated
// profile. Fields left nil in upd are not touched server-side.
func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	body, err := json.Marshal(upd)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL.JoinPath(mePath).String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return decodeUser(resp.Body)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, common.ErrSessionExpired
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, validationError(resp)
	default:
		return nil, serverError(resp)
	}
}

// ---- response helpers ----

func decodeAuthResult(r io.Reader) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: malformed auth response: %v", common.ErrServer, err)
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", common.ErrServer)
	}
	return &out, nil
}

func decodeUser(r io.Reader) (*models.User, error) {
	var out models.User
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: malformed user response: %v", common.ErrServer, err)
	}
	return &out, nil
}

// transportError maps a Do error onto the taxonomy. A session expiry signaled
// by the authorizer passes through untouched; everything else means the
// request never produced a response.
func transportError(err error) error {
	if errors.Is(err, common.ErrSessionExpired) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrNetwork, err)
}

func serverError(resp *http.Response) error {
	return fmt.Errorf("%w: status %d", common.ErrServer, resp.StatusCode)
}

// validationError includes the server's detail message when one is present.
func validationError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		return fmt.Errorf("%w: %s", common.ErrValidation, payload.Detail)
	}
	return common.ErrValidation
}
