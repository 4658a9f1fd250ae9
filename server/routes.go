package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	// The exchange endpoint answers OPTIONS and 405 itself, so it is registered without a method.
	s.RegisterRouteHandler(RouteTokenExchange, ChainMiddleware(s.TokenExchange(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.OAuthLogin(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.OAuthCallback(), s.HTMLMiddleWare()...))

	s.RegisterRouteFunc("GET "+RouteHealth, s.Health())
}

func (s *Server) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
