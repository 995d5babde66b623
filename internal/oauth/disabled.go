package oauth

import (
	"context"
	"errors"
)

// DisabledProvider rejects every credential. Wired when no Google client id
// is configured.
type DisabledProvider struct{}

func (DisabledProvider) Exchange(ctx context.Context, credential string) (*Identity, error) {
	return nil, errors.New("google sign-in is not configured")
}
