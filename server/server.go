package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-pkce-exchange/exchange"
	"github.com/jrsteele09/go-pkce-exchange/internal/config"
	"github.com/jrsteele09/go-pkce-exchange/store"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	exchange *exchange.Service
	store    store.Store
}

type ServerOption func(*Server)

// WithExchangeService replaces the exchange pipeline built from config.
func WithExchangeService(svc *exchange.Service) ServerOption {
	return func(s *Server) {
		s.exchange = svc
	}
}

func New(ctx context.Context, config config.Config, kv store.Store, opts ...ServerOption) (*Server, error) {
	if kv == nil {
		return nil, fmt.Errorf("[Server New] key-value store is required")
	}
	if config.GetClientID() == "" {
		log.Warn().Msg("OAUTH_CLIENT_ID is not set; the identity provider will reject every exchange")
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		store:    kv,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.exchange == nil {
		s.exchange = newExchangeService(ctx, config)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) isDev() bool {
	return s.env == "DEV"
}

func (s *Server) logRoutes() {
	if !s.isDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("*", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
