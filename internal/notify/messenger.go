// Package notify delivers push notifications to device tokens.
package notify

import (
	"context"
	"errors"

	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/infra"
)

// ErrTokenInvalid marks a token the provider will never deliver to again.
// Such tokens should be removed.
var ErrTokenInvalid = errors.New("push token is invalid")

type Messenger interface {
	// SendMulticast sends msg to every token. The result slice has one entry
	// per token, nil for a successful delivery. The returned error is set only
	// when nothing could be attempted.
	SendMulticast(ctx context.Context, tokens []string, msg domain.Message) ([]error, error)
}

// LogMessenger writes messages to the log instead of delivering them.
type LogMessenger struct {
	Log infra.Logger
}

func (m LogMessenger) SendMulticast(_ context.Context, tokens []string, msg domain.Message) ([]error, error) {
	m.Log.Infof("push %q to %d token(s): %s", msg.Title, len(tokens), msg.Body)
	return make([]error, len(tokens)), nil
}
