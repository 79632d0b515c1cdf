package notify

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/finebook/finebook/internal/domain"
)

const (
	fcmScope = "https://www.googleapis.com/auth/firebase.messaging"
	// SendEachForMulticast accepts at most this many tokens per call.
	maxMulticastTokens = 500
)

var errNoDelivery = errors.New("fcm: message not delivered")

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCM sends through the Firebase Admin SDK messaging client.
type FCM struct {
	client multicastSender
}

// NewFCM authenticates with Google application default credentials.
func NewFCM(ctx context.Context, projectID string) (*FCM, error) {
	creds, err := google.FindDefaultCredentials(ctx, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("fcm credentials: %w", err)
	}
	return newFCM(ctx, projectID, option.WithCredentials(creds))
}

func newFCM(ctx context.Context, projectID string, opts ...option.ClientOption) (*FCM, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("fcm client: %w", err)
	}
	return &FCM{client: client}, nil
}

// SendMulticast sends in batches of maxMulticastTokens. A failed batch marks
// each of its tokens with the batch error.
func (f *FCM) SendMulticast(ctx context.Context, tokens []string, msg domain.Message) ([]error, error) {
	results := make([]error, 0, len(tokens))
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		batch := tokens[start:min(start+maxMulticastTokens, len(tokens))]
		resp, err := f.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       batch,
			Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
		})
		if err == nil && len(resp.Responses) != len(batch) {
			err = fmt.Errorf("fcm: got %d responses for %d tokens", len(resp.Responses), len(batch))
		}
		if err != nil {
			for range batch {
				results = append(results, err)
			}
			continue
		}
		for _, r := range resp.Responses {
			results = append(results, tokenResult(r))
		}
	}
	return results, nil
}

func tokenResult(r *messaging.SendResponse) error {
	switch {
	case r.Success:
		return nil
	case r.Error == nil:
		return errNoDelivery
	case messaging.IsUnregistered(r.Error), messaging.IsInvalidArgument(r.Error):
		return fmt.Errorf("%w: %v", ErrTokenInvalid, r.Error)
	}
	return r.Error
}
