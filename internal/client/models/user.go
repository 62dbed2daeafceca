// Package models defines the data shapes exchanged with the account service.
package models

// User is the authenticated identity's profile as returned by the server.
// It is held in memory only; on every start the client re-fetches it using
// the persisted access token.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// LoginCredentials is the transient input for the login call. The client does
// not retain it after the call returns.
type LoginCredentials struct {
	Email    string
	Password []byte
}

// SignupData is the transient input for the signup call.
type SignupData struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ProfileUpdate carries a partial profile change. Nil fields are omitted from
// the request body and left untouched server-side.
type ProfileUpdate struct {
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// AuthResult is the payload of a successful login or signup. It carries the
// access token and token metadata but never the full User, which is always
// fetched in a separate call.
type AuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
