package common

// Credential store service names. The token service holds the raw session
// token, the user service holds the JSON-serialized user object.
const (
	TokenService = "token"
	UserService  = "user"
)

const (
	// AuthorizationHeaderName carries the bearer token on outbound API requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
