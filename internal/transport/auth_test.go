package transport

import (
	"net/http"
	"net/url"
	"testing"
)

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req, "test-token")

	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

// TestBearerAuth tests Bearer token authentication.
func TestBearerAuth(t *testing.T) {
	auth := &BearerAuth{}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req, "test-token")

	authHeader := req.Header.Get("Authorization")
	expected := "Bearer test-token"
	if authHeader != expected {
		t.Errorf("Expected Authorization header '%s', got '%s'", expected, authHeader)
	}
}

// TestHeaderAuth tests custom header authentication.
func TestHeaderAuth(t *testing.T) {
	auth := &HeaderAuth{Header: "x-session-token"}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req, "test-token")

	if got := req.Header.Get("x-session-token"); got != "test-token" {
		t.Errorf("Expected x-session-token header 'test-token', got '%s'", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header")
	}
}

// TestQueryAuth tests query parameter authentication.
func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "token"}

	reqURL, _ := url.Parse("https://api.example.com/comparison?page=2")
	req := &http.Request{
		URL:    reqURL,
		Header: make(http.Header),
	}

	auth.Apply(req, "test-token")

	if req.URL.Query().Get("token") != "test-token" {
		t.Errorf("Expected query param 'token=test-token', got '%s'", req.URL.RawQuery)
	}
	if req.URL.Query().Get("page") != "2" {
		t.Errorf("Expected existing query param to be kept, got '%s'", req.URL.RawQuery)
	}

	// A request without a URL is left alone.
	auth.Apply(&http.Request{Header: make(http.Header)}, "test-token")
}

// TestSchemeAuth tests config-driven authentication.
func TestSchemeAuth(t *testing.T) {
	tests := []struct {
		name      string
		config    AuthConfig
		header    string
		wantValue string
		wantQuery string
	}{
		{
			name:      "default bearer",
			config:    AuthConfig{},
			header:    "Authorization",
			wantValue: "Bearer tok",
		},
		{
			name:      "basic",
			config:    AuthConfig{Scheme: AuthSchemeBasic},
			header:    "Authorization",
			wantValue: "Basic tok",
		},
		{
			name:      "direct custom header",
			config:    AuthConfig{Scheme: AuthSchemeDirect, Header: "X-Api-Key"},
			header:    "X-Api-Key",
			wantValue: "tok",
		},
		{
			name:      "custom header without scheme",
			config:    AuthConfig{Header: "X-Session"},
			header:    "X-Session",
			wantValue: "tok",
		},
		{
			name:      "uppercase scheme",
			config:    AuthConfig{Scheme: "BASIC"},
			header:    "Authorization",
			wantValue: "Basic tok",
		},
		{
			name:      "query param wins",
			config:    AuthConfig{QueryParam: "key", Header: "X-Ignored"},
			wantQuery: "tok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqURL, _ := url.Parse("https://api.example.com/comparison")
			req := &http.Request{URL: reqURL, Header: make(http.Header)}

			(&SchemeAuth{Config: tt.config}).Apply(req, "tok")

			if tt.wantQuery != "" {
				if got := req.URL.Query().Get(tt.config.QueryParam); got != tt.wantQuery {
					t.Errorf("query %s = %q, want %q", tt.config.QueryParam, got, tt.wantQuery)
				}
				if len(req.Header) != 0 {
					t.Errorf("expected no headers, got %v", req.Header)
				}
				return
			}
			if got := req.Header.Get(tt.header); got != tt.wantValue {
				t.Errorf("header %s = %q, want %q", tt.header, got, tt.wantValue)
			}
		})
	}
}

// TestNewAuthenticator tests that the simplest authenticator is picked for a config.
func TestNewAuthenticator(t *testing.T) {
	if _, ok := NewAuthenticator(AuthConfig{}).(*BearerAuth); !ok {
		t.Error("empty config should use BearerAuth")
	}
	if _, ok := NewAuthenticator(AuthConfig{QueryParam: "key"}).(*QueryAuth); !ok {
		t.Error("query param config should use QueryAuth")
	}
	if a, ok := NewAuthenticator(AuthConfig{Scheme: AuthSchemeDirect, Header: "X-Key"}).(*HeaderAuth); !ok || a.Header != "X-Key" {
		t.Error("direct header config should use HeaderAuth")
	}
	if _, ok := NewAuthenticator(AuthConfig{Scheme: AuthSchemeBasic}).(*SchemeAuth); !ok {
		t.Error("basic config should use SchemeAuth")
	}
}
