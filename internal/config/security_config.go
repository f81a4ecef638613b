package config

type SecurityConfig interface {
	IsDevMode() bool
	GetSecureCookies() bool
	GetFrameAncestors() string
}

type Security struct {
	DevMode        bool   `env:"DEV_MODE" envDefault:"false"`
	FrameAncestors string `env:"FRAME_ANCESTORS" envDefault:"https://*.exacttarget.com https://*.marketingcloudapps.com"`
}

var _ SecurityConfig = Security{}

func (s Security) IsDevMode() bool {
	return s.DevMode
}

// GetSecureCookies is false only in dev mode, where the app is served over plain http
func (s Security) GetSecureCookies() bool {
	return !s.DevMode
}

// GetFrameAncestors lists the origins allowed to embed the app
func (s Security) GetFrameAncestors() string {
	return s.FrameAncestors
}
