package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/finwallet/wallet-server/auth"
	"github.com/finwallet/wallet-server/categories"
	"github.com/finwallet/wallet-server/groups"
	"github.com/finwallet/wallet-server/internal/config"
	"github.com/finwallet/wallet-server/token"
	"github.com/finwallet/wallet-server/transactions"
	"github.com/finwallet/wallet-server/users"
)

// Repos holds the document-store collaborators the handlers query.
type Repos struct {
	Users        users.Repo
	Groups       groups.Repo
	Categories   categories.Repo
	Transactions transactions.Repo
}

type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	config config.Config
	repos  Repos
	codec  *token.Codec
	policy *auth.Policy
	auth   *auth.Service
	cors   *cors.Cors
}

func New(cfg config.Config, repos Repos) (*Server, error) {
	codec := token.NewCodec(cfg.GetTokenSecret())

	authService, err := auth.NewService(repos.Users, codec, cfg.GetAccessTokenExpiry(), cfg.GetRefreshTokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		repos:  repos,
		codec:  codec,
		policy: auth.NewPolicy(codec, cfg.GetAccessTokenExpiry()),
		auth:   authService,
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.GetAllowedOrigins(),
			AllowedMethods:   cfg.GetAllowedMethods(),
			AllowedHeaders:   cfg.GetAllowedHeaders(),
			AllowCredentials: true,
		}),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.cors.Handler(s.mux).ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
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
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
