package tenants

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
)

// tssd is the tenant sub-domain: the customer's SFMC sub-domain.
// https://developer.salesforce.com/docs/marketing/marketing-cloud/guide/authorization-code.html#authorization-code-return
var subdomainRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

const subdomainPlaceholder = "{tssd}"

// Subdomain is a validated tenant sub-domain.
// Values only come from the provider (callback tssd) or from the tenant cookie,
// both of which are attacker controllable, so build them with Parse.
type Subdomain string

// Parse validates candidate as a whole-string match of [A-Za-z0-9-]+
func Parse(candidate string) (Subdomain, error) {
	if !subdomainRegex.MatchString(candidate) {
		return "", errors.ErrInvalidTenant
	}
	return Subdomain(candidate), nil
}

func (s Subdomain) String() string {
	return string(s)
}

// Hosts builds tenant-scoped upstream base URLs from templates
// containing the {tssd} placeholder.
type Hosts struct {
	AuthURLTemplate string // e.g. "https://{tssd}.auth.marketingcloudapis.com"
	RestURLTemplate string // e.g. "https://{tssd}.rest.marketingcloudapis.com"
}

// AuthBaseURL is the tenant's authentication host (authorize, token, userinfo)
func (h Hosts) AuthBaseURL(s Subdomain) string {
	return expand(h.AuthURLTemplate, s)
}

// RestBaseURL is the tenant's REST API host
func (h Hosts) RestBaseURL(s Subdomain) string {
	return expand(h.RestURLTemplate, s)
}

func expand(template string, s Subdomain) string {
	return strings.TrimSuffix(strings.ReplaceAll(template, subdomainPlaceholder, string(s)), "/")
}

// TokenURL is the tenant's OAuth2 token endpoint
func (h Hosts) TokenURL(s Subdomain) string {
	return fmt.Sprintf("%s/v2/token", h.AuthBaseURL(s))
}

// AuthorizeURL is the tenant's OAuth2 authorization endpoint
func (h Hosts) AuthorizeURL(s Subdomain) string {
	return fmt.Sprintf("%s/v2/authorize", h.AuthBaseURL(s))
}

// UserInfoURL is the tenant's userinfo endpoint
// https://developer.salesforce.com/docs/marketing/marketing-cloud/guide/getUserInfo.html
func (h Hosts) UserInfoURL(s Subdomain) string {
	return fmt.Sprintf("%s/v2/userinfo", h.AuthBaseURL(s))
}
