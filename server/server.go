package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/sfmc-session-broker/auth"
	"github.com/jrsteele09/sfmc-session-broker/internal/config"
	"github.com/jrsteele09/sfmc-session-broker/sessions"
	"github.com/jrsteele09/sfmc-session-broker/tenants"
	"github.com/jrsteele09/sfmc-session-broker/token"
	"github.com/rs/zerolog/log"
)

// cookieSalt separates the cookie signing key from any other key derived from SECRET_KEY
const cookieSalt = "sfmc-session-cookies"

type Server struct {
	devMode  bool
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	hosts    tenants.Hosts
	states   *token.StateSigner
	sfmc     *auth.SFMCClient
	laasie   *auth.LaasieClient
	callback *auth.Validator

	sfmcCookies   *sessions.SFMCCookies
	laasieCookies *sessions.LaasieCookies
	forwarder     *Forwarder

	errorTmpl *template.Template
}

// New wires the broker from a validated configuration. httpClient is shared by
// the token exchanges and the proxy; nil means http.DefaultClient.
func New(cfg config.Config, httpClient *http.Client) (*Server, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	codec, err := token.NewCodec(cfg.GetSecretKey(), cookieSalt)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create cookie codec: %w", err)
	}

	states, err := token.NewStateSigner(cfg.GetSecretKey(), cfg.GetStateTimeout())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create state signer: %w", err)
	}

	errorTmpl, err := ParseTemplate(errorTemplateName)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse error template: %w", err)
	}

	s := &Server{
		devMode:       cfg.IsDevMode(),
		mux:           http.NewServeMux(),
		config:        cfg,
		hosts:         cfg.GetSFMCHosts(),
		states:        states,
		sfmc:          auth.NewSFMCClient(cfg, httpClient),
		laasie:        auth.NewLaasieClient(cfg, httpClient),
		callback:      auth.NewValidator(states, cfg.GetSFMCDefaultTenant()),
		sfmcCookies:   sessions.NewSFMCCookies(codec, cfg),
		laasieCookies: sessions.NewLaasieCookies(codec, cfg),
		forwarder:     NewForwarder(httpClient),
		errorTmpl:     errorTmpl,
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

func (s *Server) logRoutes() {
	if !s.devMode {
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
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
