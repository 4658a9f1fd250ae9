package server

// Route path constants
const (
	// Exchange API, called by browser code with the code and verifier
	RouteTokenExchange = "/api/token-exchange"

	// Browser flow
	RouteLogin    = "/oauth/login"
	RouteCallback = "/oauth-callback"

	RouteHealth = "/healthz"
)
