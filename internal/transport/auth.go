package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {
	// No authentication applied
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// QueryAuth implements token as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, token string) {
	if req.URL == nil {
		return
	}

	query := req.URL.Query()
	query.Set(a.Param, token)
	req.URL.RawQuery = query.Encode()
}

// AuthScheme is the prefix written before a token in a header.
type AuthScheme string

// Supported auth schemes.
const (
	AuthSchemeBearer AuthScheme = "bearer"
	AuthSchemeBasic  AuthScheme = "basic"
	AuthSchemeDirect AuthScheme = "direct"
)

// AuthConfig describes how the comparison API expects its token.
type AuthConfig struct {
	Scheme     AuthScheme `json:"scheme,omitempty" yaml:"scheme,omitempty" mapstructure:"scheme"`
	Header     string     `json:"header,omitempty" yaml:"header,omitempty" mapstructure:"header"`
	QueryParam string     `json:"query_param,omitempty" yaml:"query_param,omitempty" mapstructure:"query_param"`
}

// SchemeAuth implements authentication driven by an AuthConfig.
type SchemeAuth struct {
	Config AuthConfig
}

// Apply implements the Authenticator interface for SchemeAuth.
func (a *SchemeAuth) Apply(req *http.Request, token string) {
	if a.Config.QueryParam != "" {
		(&QueryAuth{Param: a.Config.QueryParam}).Apply(req, token)
		return
	}

	header := a.Config.Header
	if header == "" {
		header = "Authorization"
	}

	var value string
	switch AuthScheme(strings.ToLower(string(a.Config.Scheme))) {
	case AuthSchemeBasic:
		value = "Basic " + token
	case AuthSchemeDirect:
		value = token
	case AuthSchemeBearer, "":
		// Bearer is the default when a token is sent in the Authorization header.
		if header == "Authorization" {
			value = "Bearer " + token
		} else {
			value = token
		}
	default:
		// Unknown scheme - treat as direct
		value = token
	}

	req.Header.Set(header, value)
}

// NewAuthenticator returns the Authenticator for cfg.
func NewAuthenticator(cfg AuthConfig) Authenticator {
	switch {
	case cfg.QueryParam != "":
		return &QueryAuth{Param: cfg.QueryParam}
	case cfg.Header == "" && (cfg.Scheme == "" || cfg.Scheme == AuthSchemeBearer):
		return &BearerAuth{}
	case cfg.Scheme == AuthSchemeDirect && cfg.Header != "":
		return &HeaderAuth{Header: cfg.Header}
	default:
		return &SchemeAuth{Config: cfg}
	}
}
