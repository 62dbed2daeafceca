// Package api is the typed gateway to the account service. Each method wraps
// exactly one backend endpoint and maps HTTP outcomes onto the shared error
// taxonomy. Authentication is invisible here: requests are sent through the
// transport.Authorizer, which owns the bearer token.
package api

import (
	"context"

	"github.com/vkuzmenko/profcli/internal/client/models"
)

// Client defines the identity operations against the account service.
//
// Failure modes, matched with errors.Is:
//   - Login: common.ErrInvalidCredentials, ErrNetwork, ErrServer.
//   - Signup: common.ErrValidation, ErrNetwork, ErrServer.
//   - CurrentUser, UpdateProfile: common.ErrSessionExpired, ErrValidation
//     (update only), ErrNetwork, ErrServer.
type Client interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResult, error)
	Signup(ctx context.Context, data models.SignupData) (*models.AuthResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
}
