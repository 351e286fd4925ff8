// Package auth acquires bearer tokens for the Spotify Web API using the OAuth2
// client credentials flow.
//
// Tokens are fetched once and never refreshed: the catalog client asks for a
// token at construction and uses it for its whole lifetime.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is the Spotify accounts service token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// ErrMissingCredentials is returned when the client id or secret is empty.
var ErrMissingCredentials = errors.New("spotify client id and secret are required")

// TokenProvider supplies a bearer token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider that always returns itself.
type StaticToken string

// Token returns the static token. An empty token is an error.
func (s StaticToken) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("static token is empty")
	}
	return string(s), nil
}

// ClientCredentials fetches tokens with the client credentials grant.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string

	// TokenURL defaults to DefaultTokenURL
	TokenURL string

	// HTTPClient is used for the token request when set
	HTTPClient *http.Client
}

// Token requests a new access token from the token endpoint.
func (c ClientCredentials) Token(ctx context.Context) (string, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return "", ErrMissingCredentials
	}

	tokenURL := c.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	cfg := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     tokenURL,
	}

	if c.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	}

	token, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("client credentials token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("client credentials token: empty access token")
	}

	return token.AccessToken, nil
}

// GetToken fetches a bearer token from the default Spotify token endpoint.
func GetToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	return ClientCredentials{ClientID: clientID, ClientSecret: clientSecret}.Token(ctx)
}
