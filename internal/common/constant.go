package common

// AccessTokenKey is the durable storage key under which the raw access token
// is persisted between runs.
const AccessTokenKey = "access_token"

// AuthorizationHeader and BearerPrefix define how the access token is carried
// on outbound HTTP requests.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)
