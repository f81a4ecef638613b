package config

import (
	"fmt"
	"strings"
)

type EnvVars struct {
	Port       string `env:"PORT" envDefault:"8080"`
	AppName    string `env:"APP_NAME" envDefault:"SFMC Broker"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	SecretKey  string `env:"SECRET_KEY,required,notEmpty"`
	SelfDomain string `env:"SELF_DOMAIN" envDefault:"https://localhost:8080"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" || port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) GetSecretKey() string {
	return e.SecretKey
}

// GetSelfDomain returns the externally visible origin of this service,
// used to build the OAuth2 redirect URI (e.g. "https://app.example.com").
func (e EnvVars) GetSelfDomain() string {
	return strings.TrimSuffix(e.SelfDomain, "/")
}

func (e EnvVars) validate() error {
	if strings.TrimSpace(e.SecretKey) == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	return nil
}
