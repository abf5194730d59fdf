package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/netgrove/invsync/internal/transport"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAuthApply(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	auth := &transport.TokenAuth{Token: "abc123"}
	auth.Apply(req)
	assert.Equal(t, "Token abc123", req.Header.Get("Authorization"))
}

func TestTokenAuthEmptyTokenSetsNothing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	auth := &transport.TokenAuth{}
	auth.Apply(req)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBasicAuthApply(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	auth := &transport.BasicAuth{Username: "admin", Password: "secret"}
	auth.Apply(req)

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
}

func TestGetJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"count": 3}`))
	}))
	defer srv.Close()

	client := transport.New("inventory", &transport.TokenAuth{Token: "tok"})
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, client.GetJSON(context.Background(), srv.URL, &out))
	assert.Equal(t, 3, out.Count)
}

func TestGetJSONUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := transport.New("directory", &transport.NoAuth{})
	err := client.GetJSON(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestGetJSONConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refused connection

	client := transport.New("directory", &transport.NoAuth{})
	err := client.GetJSON(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.IsConnectivity(err))
}

func TestPostJSONReturnsLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Location", "https://ise.example.net/ers/config/networkdevice/42")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := transport.New("directory", &transport.BasicAuth{Username: "u", Password: "p"})
	location, err := client.PostJSON(context.Background(), srv.URL, map[string]string{"name": "rtr-01"}, nil)
	require.NoError(t, err)
	assert.Contains(t, location, "/networkdevice/42")
}

func TestServerErrorMapsToConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := transport.New("directory", &transport.NoAuth{})
	err := client.GetJSON(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.IsConnectivity(err))
}
