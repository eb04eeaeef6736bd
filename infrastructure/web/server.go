package web

import (
	"log"
	"net/http"
	"time"

	"github.com/hearthkeep/hearthkeep/sdk/environment"
)

// ServerConfig holds web server configuration.
type ServerConfig struct {
	Port            string        `env:"PORT" default:":3000"`
	APIRoute        string        `env:"API_ROUTE" default:"/api/v1"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" default:"*" separator:","`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"20s"`
}

// LoadServerConfig reads server configuration from prefixed env vars.
func LoadServerConfig(prefix string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// WebServer wraps http.Server with its resolved configuration.
type WebServer struct {
	*http.Server
	Config ServerConfig
}

// NewWebServer creates the underlying http.Server from configuration.
func NewWebServer(cfg ServerConfig, handler http.Handler, errorLog *log.Logger) *WebServer {
	return &WebServer{
		Server: &http.Server{
			Addr:         cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     errorLog,
		},
		Config: cfg,
	}
}
