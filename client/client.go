// Package client is a typed HTTP client for the EventGallery API. Every
// operation issues exactly one request against the configured base URL
// and funnels the response through a single envelope-unwrapping handler.
package client

import (
	"net/http"
	"strings"
)

// TokenSource supplies the bearer credential for outgoing requests. It
// is consulted on every call so a login or logout between two requests
// is always picked up. An empty string means no credential.
type TokenSource interface {
	Token() string
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Tokens:  tokens,
	}
}
