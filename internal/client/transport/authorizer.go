// Package transport wraps outbound HTTP with credential handling. Every API
// wrapper sends its requests through the Authorizer, so attaching the bearer
// token and reacting to an unauthorized response live in exactly one place.
package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/vkuzmenko/profcli/internal/client/session"
	"github.com/vkuzmenko/profcli/internal/client/tokenstore"
	"github.com/vkuzmenko/profcli/internal/common"
	"github.com/vkuzmenko/profcli/internal/logging"
)

// Doer is the subset of *http.Client used for outbound requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Authorizer decorates a Doer. Before sending it reads the durable token
// store and, if a token is present, attaches it as a bearer credential.
// If an authorized request comes back 401, the credential is no longer valid:
// the session and the durable token are dropped and the call fails with
// common.ErrSessionExpired instead of the raw response.
//
// A 401 on a request that carried no token is passed through untouched, so
// the login gateway can map it to an invalid-credentials failure.
type Authorizer struct {
	base   Doer
	tokens tokenstore.Store
	state  *session.State
	log    logging.Logger
}

func NewAuthorizer(base Doer, tokens tokenstore.Store, state *session.State, log logging.Logger) *Authorizer {
	return &Authorizer{base: base, tokens: tokens, state: state, log: log}
}

func (a *Authorizer) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := a.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := a.base.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		_ = resp.Body.Close()
		a.expireSession(ctx)
		return nil, common.ErrSessionExpired
	}

	return resp, nil
}

// expireSession drops the in-memory session first, then the durable copy,
// mirroring the logout ordering. Cleanup must run even if the request's
// context is already canceled.
func (a *Authorizer) expireSession(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	a.state.Clear()
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear expired token", "error", err)
	}
	a.log.Warn(ctx, "session expired, credentials cleared")
}
