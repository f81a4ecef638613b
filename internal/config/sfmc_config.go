package config

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/sfmc-session-broker/tenants"
)

type SFMCConfig interface {
	GetSFMCClientID() string
	GetSFMCClientSecret() string
	GetSFMCDefaultTenant() tenants.Subdomain
	GetSFMCCallbackPath() string
	GetSFMCHosts() tenants.Hosts
}

type SFMC struct {
	ClientID        string `env:"SFMC_CLIENT_ID,required,notEmpty"`
	ClientSecret    string `env:"SFMC_CLIENT_SECRET,required,notEmpty"`
	DefaultTenant   string `env:"SFMC_DEFAULT_TENANT_SUBDOMAIN,required,notEmpty"`
	CallbackPath    string `env:"SFMC_OAUTH2_CALLBACK_PATH" envDefault:"/callback"`
	AuthURLTemplate string `env:"SFMC_AUTH_URL_TEMPLATE" envDefault:"https://{tssd}.auth.marketingcloudapis.com"`
	RestURLTemplate string `env:"SFMC_REST_URL_TEMPLATE" envDefault:"https://{tssd}.rest.marketingcloudapis.com"`
}

var _ SFMCConfig = SFMC{}

func (s SFMC) GetSFMCClientID() string {
	return s.ClientID
}

func (s SFMC) GetSFMCClientSecret() string {
	return s.ClientSecret
}

// GetSFMCDefaultTenant is only safe to call on a validated config
func (s SFMC) GetSFMCDefaultTenant() tenants.Subdomain {
	return tenants.Subdomain(s.DefaultTenant)
}

func (s SFMC) GetSFMCCallbackPath() string {
	if !strings.HasPrefix(s.CallbackPath, "/") {
		return "/" + s.CallbackPath
	}
	return s.CallbackPath
}

func (s SFMC) GetSFMCHosts() tenants.Hosts {
	return tenants.Hosts{
		AuthURLTemplate: s.AuthURLTemplate,
		RestURLTemplate: s.RestURLTemplate,
	}
}

func (s SFMC) validate() error {
	if strings.TrimSpace(s.ClientID) == "" || strings.TrimSpace(s.ClientSecret) == "" {
		return fmt.Errorf("SFMC_CLIENT_ID and SFMC_CLIENT_SECRET are required")
	}
	if _, err := tenants.Parse(s.DefaultTenant); err != nil {
		return fmt.Errorf("SFMC_DEFAULT_TENANT_SUBDOMAIN: %w", err)
	}
	return nil
}
