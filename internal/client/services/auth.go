// Package services contains application services for the profcli client.
// This file defines the authentication service: the two-phase session
// bootstrap (credential exchange, then identity fetch), session restore on
// startup, profile updates, and logout.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vkuzmenko/profcli/internal/client/api"
	"github.com/vkuzmenko/profcli/internal/client/models"
	"github.com/vkuzmenko/profcli/internal/client/session"
	"github.com/vkuzmenko/profcli/internal/client/tokenstore"
	"github.com/vkuzmenko/profcli/internal/common"
	"github.com/vkuzmenko/profcli/internal/logging"
)

// AuthService defines the session lifecycle operations for the CLI.
//
// Contract:
//   - Login / Signup: authenticate against the server and establish a full
//     session (token persisted, identity fetched, session state populated).
//     A half-completed attempt is rolled back; the durable token and the
//     session never disagree for longer than one step.
//   - Restore: rebuild the session from a token persisted by a previous run.
//   - UpdateProfile: partial profile change; the session user is replaced on
//     success and untouched on failure.
//   - Logout: drop the session and the durable token; idempotent.
//
// Only one Login/Signup/Restore attempt may be in flight at a time; a second
// call while one is pending fails with common.ErrLoginInProgress.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error)
	Signup(ctx context.Context, data models.SignupData) (*models.User, error)
	Restore(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	Logout(ctx context.Context) error
}

// authService is the concrete AuthService composing the API gateway with the
// durable token store and the in-memory session state.
type authService struct {
	api    api.Client
	tokens tokenstore.Store
	state  *session.State
	log    logging.Logger

	// serializes bootstrap attempts; two interleaved bootstraps could commit
	// a token from one attempt and the user from another
	bootstrapMu sync.Mutex
}

// NewAuthService constructs an AuthService bound to the given gateway,
// token store, and session state.
func NewAuthService(apiClient api.Client, tokens tokenstore.Store, state *session.State, log logging.Logger) AuthService {
	return &authService{api: apiClient, tokens: tokens, state: state, log: log}
}

// Login runs the bootstrap with a credential exchange against the login
// endpoint. On credential rejection nothing has been persisted or mutated.
func (a *authService) Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error) {
	return a.bootstrap(ctx, func(ctx context.Context) (*models.AuthResult, error) {
		return a.api.Login(ctx, creds)
	})
}

// Signup runs the same bootstrap as Login, seeded by the signup endpoint.
func (a *authService) Signup(ctx context.Context, data models.SignupData) (*models.User, error) {
	return a.bootstrap(ctx, func(ctx context.Context) (*models.AuthResult, error) {
		return a.api.Signup(ctx, data)
	})
}

// bootstrap is the two-phase protocol that turns a successful credential
// exchange into a fully-populated session.
//
// The identity fetch is authorized by the durable token (the authorizer reads
// only the durable store), so the token must be persisted before the fetch is
// issued. That ordering creates the rollback duty: if the fetch fails, the
// persisted token is cleared again, otherwise a later run would pick up a
// token this client never finished validating.
func (a *authService) bootstrap(ctx context.Context, authenticate func(context.Context) (*models.AuthResult, error)) (*models.User, error) {
	if !a.bootstrapMu.TryLock() {
		return nil, common.ErrLoginInProgress
	}
	defer a.bootstrapMu.Unlock()

	res, err := authenticate(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.tokens.Set(ctx, res.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		a.rollback(ctx)
		return nil, err
	}

	// The attempt may have been abandoned while the fetch was in flight;
	// a stale result must not resurrect the session.
	if err := ctx.Err(); err != nil {
		a.rollback(ctx)
		return nil, err
	}

	a.state.Set(res.AccessToken, user)
	a.log.Info(ctx, "session established", "user", user.Email)
	return user, nil
}

// rollback clears the persisted token after a failed bootstrap. Clearing is
// idempotent, so it is safe even when the authorizer already wiped the slot.
// It must run even if the attempt's context is canceled.
func (a *authService) rollback(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to roll back persisted token", "error", err)
	}
}

// Restore rebuilds the session from a previously persisted token. With no
// token present it is a no-op returning (nil, nil). An expired token is
// cleared by the authorizer during the fetch; on a transient network or
// server failure the token is kept for the next run, since it was validated
// by the run that persisted it.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	if !a.bootstrapMu.TryLock() {
		return nil, common.ErrLoginInProgress
	}
	defer a.bootstrapMu.Unlock()

	token, err := a.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	a.state.Set(token, user)
	a.log.Info(ctx, "session restored", "user", user.Email)
	return user, nil
}

// UpdateProfile applies a partial profile change. The token is untouched;
// on success the session user is replaced with the server's updated record,
// on failure the prior user remains current.
func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	user, err := a.api.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}

	if err := a.state.SetUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout drops the in-memory session first, then the durable token. It needs
// no network call and is safe to invoke when already unauthenticated.
func (a *authService) Logout(ctx context.Context) error {
	a.state.Clear()
	if err := a.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}
