package usecase

import (
	"context"
	"fmt"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
)

// RegisterToken adds a push token to the caller's own person.
func (u *Usecase) RegisterToken(ctx context.Context, id *auth.Identity, teamID domain.TeamID, personID domain.PersonID, token string) (domain.TokenID, error) {
	if token == "" {
		return "", fmt.Errorf("%w: token is required", ErrInvalidArgument)
	}
	person, err := u.signedInPerson(ctx, id, teamID, personID)
	if err != nil {
		return "", err
	}
	tokenID := person.SignIn.Notifications.AddToken(token)
	if err := u.Repo.PutPerson(ctx, teamID, person); err != nil {
		return "", write("person", err)
	}
	return tokenID, nil
}

// Subscribe replaces the topics the caller's own person is subscribed to.
func (u *Usecase) Subscribe(ctx context.Context, id *auth.Identity, teamID domain.TeamID, personID domain.PersonID, topics []domain.Topic) error {
	seen := make(map[domain.Topic]struct{}, len(topics))
	unique := make([]domain.Topic, 0, len(topics))
	for _, t := range topics {
		if err := validate(t); err != nil {
			return err
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	person, err := u.signedInPerson(ctx, id, teamID, personID)
	if err != nil {
		return err
	}
	person.SignIn.Notifications.SubscribedTopics = unique
	return write("person", u.Repo.PutPerson(ctx, teamID, person))
}
