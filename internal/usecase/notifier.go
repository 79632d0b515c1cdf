package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/infra"
	"github.com/finebook/finebook/internal/notify"
	"github.com/finebook/finebook/internal/repository"
)

// Notifier pushes messages to the devices of a signed in person and drops
// tokens the provider rejects for good.
type Notifier struct {
	repo      repository.Repo
	messenger notify.Messenger
	log       infra.Logger
}

func NewNotifier(repo repository.Repo, messenger notify.Messenger, log infra.Logger) *Notifier {
	return &Notifier{repo: repo, messenger: messenger, log: log}
}

// Push sends msg to the person if they are signed in and subscribed to topic.
// Otherwise it does nothing.
func (n *Notifier) Push(ctx context.Context, teamID domain.TeamID, personID domain.PersonID, topic domain.Topic, msg domain.Message) error {
	person, err := n.repo.GetPerson(ctx, teamID, personID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get person: %w", err)
	}
	if person.SignIn == nil || !person.SignIn.Notifications.IsSubscribed(topic) {
		return nil
	}

	ids := make([]domain.TokenID, 0, len(person.SignIn.Notifications.Tokens))
	tokens := make([]string, 0, len(person.SignIn.Notifications.Tokens))
	for id, token := range person.SignIn.Notifications.Tokens {
		ids = append(ids, id)
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return nil
	}

	results, err := n.messenger.SendMulticast(ctx, tokens, msg)
	if err != nil {
		return fmt.Errorf("send %s: %w", topic, err)
	}
	if len(results) != len(tokens) {
		return fmt.Errorf("send %s: got %d results for %d tokens", topic, len(results), len(tokens))
	}

	var invalid []domain.TokenID
	for i, res := range results {
		switch {
		case res == nil:
		case errors.Is(res, notify.ErrTokenInvalid):
			invalid = append(invalid, ids[i])
		default:
			n.log.Warnf("push %s to person %s failed: %v", topic, personID, res)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	return n.prune(ctx, teamID, personID, invalid)
}

// prune rereads the person so tokens registered during the send survive.
func (n *Notifier) prune(ctx context.Context, teamID domain.TeamID, personID domain.PersonID, invalid []domain.TokenID) error {
	person, err := n.repo.GetPerson(ctx, teamID, personID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get person: %w", err)
	}
	if person.SignIn == nil {
		return nil
	}
	for _, id := range invalid {
		delete(person.SignIn.Notifications.Tokens, id)
	}
	if err := n.repo.PutPerson(ctx, teamID, person); err != nil {
		return fmt.Errorf("prune tokens: %w", err)
	}
	n.log.Infof("pruned %d invalid token(s) of person %s", len(invalid), personID)
	return nil
}
