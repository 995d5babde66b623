// Package oauth exchanges third-party sign-in credentials for a verified
// external identity.
package oauth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Identity is what an external provider asserts about the person signing in.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

type Provider interface {
	// Exchange validates the provider credential and returns the identity
	// it asserts. The error covers malformed, forged and expired credentials.
	Exchange(ctx context.Context, credential string) (*Identity, error)
}

const googleIssuer = "https://accounts.google.com"

// GoogleProvider verifies Google Sign-In ID tokens against Google's
// published keys.
type GoogleProvider struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleProvider(ctx context.Context, clientID string) (*GoogleProvider, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to reach google oidc discovery: %w", err)
	}
	return &GoogleProvider{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (g *GoogleProvider) Exchange(ctx context.Context, credential string) (*Identity, error) {
	idToken, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("invalid google credential: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode google claims: %w", err)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, fmt.Errorf("google credential has no verified email")
	}

	return &Identity{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
