// Package transport provides the authenticated HTTP plumbing shared by
// the inventory and directory clients.
package transport

import "net/http"

// Authenticator applies credentials to outgoing HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// TokenAuth implements token header authentication as used by the
// inventory API ("Authorization: Token <token>").
type TokenAuth struct {
	Token string
}

// Apply implements the Authenticator interface for TokenAuth.
func (a *TokenAuth) Apply(req *http.Request) {
	if a.Token != "" {
		req.Header.Set("Authorization", "Token "+a.Token)
	}
}

// BasicAuth implements HTTP basic authentication as used by the
// directory APIs.
type BasicAuth struct {
	Username string
	Password string
}

// Apply implements the Authenticator interface for BasicAuth.
func (a *BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}
