package config

import (
	"fmt"
	"net/url"
	"strings"
)

type LaasieConfig interface {
	GetLaasieBaseURL() string
	GetLaasieUsername() string
	GetLaasiePassword() string
}

type Laasie struct {
	BaseURL  string `env:"LAASIE_API_BASE_URL,required,notEmpty"`
	Username string `env:"LAASIE_API_USERNAME,required,notEmpty"`
	Password string `env:"LAASIE_API_PASSWORD,required,notEmpty"`
}

var _ LaasieConfig = Laasie{}

func (l Laasie) GetLaasieBaseURL() string {
	return strings.TrimSuffix(l.BaseURL, "/")
}

func (l Laasie) GetLaasieUsername() string {
	return l.Username
}

func (l Laasie) GetLaasiePassword() string {
	return l.Password
}

func (l Laasie) validate() error {
	u, err := url.Parse(l.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("LAASIE_API_BASE_URL must be an absolute URL, got %q", l.BaseURL)
	}
	return nil
}
