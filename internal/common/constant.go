package common

// AuthorizationHeaderName is the HTTP header carrying the access token on
// protected requests. The raw token is sent as is; a "Bearer " prefix is
// tolerated by the server.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is stripped from the Authorization header when present.
const BearerPrefix = "Bearer "
