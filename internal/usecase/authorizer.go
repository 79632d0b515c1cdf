package usecase

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/infra"
	"github.com/finebook/finebook/internal/repository"
)

// Authorizer admits callers holding a set of roles in a team. It only reads.
type Authorizer struct {
	repo repository.Repo
	// subject -> user id; bindings never change once written.
	users *lru.Cache[string, domain.UserID]
	log   infra.Logger
}

func NewAuthorizer(repo repository.Repo, cacheSize int, log infra.Logger) (*Authorizer, error) {
	users, err := lru.New[string, domain.UserID](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("identity cache: %w", err)
	}
	return &Authorizer{repo: repo, users: users, log: log}, nil
}

// ResolveUser maps an identity to its user. Missing identities are
// unauthenticated; unknown ones are denied.
func (a *Authorizer) ResolveUser(ctx context.Context, id *auth.Identity) (domain.UserID, error) {
	if id == nil {
		return "", ErrUnauthenticated
	}
	if userID, ok := a.users.Get(id.Subject); ok {
		return userID, nil
	}
	userID, err := a.repo.GetUserIDByIdentity(ctx, id.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%w: no user for identity", ErrPermissionDenied)
	}
	if err != nil {
		return "", fmt.Errorf("resolve identity: %w", err)
	}
	a.users.Add(id.Subject, userID)
	return userID, nil
}

// Authorize checks that the caller is a signed in member of the team whose
// roles include every required role, and returns the caller's user id.
func (a *Authorizer) Authorize(ctx context.Context, id *auth.Identity, teamID domain.TeamID, required ...domain.Role) (domain.UserID, error) {
	userID, err := a.authorize(ctx, id, teamID, required)
	if errors.Is(err, ErrPermissionDenied) {
		a.log.Debugf("deny %s in team %s (need %v): %v", id.Subject, teamID, required, err)
	}
	return userID, err
}

func (a *Authorizer) authorize(ctx context.Context, id *auth.Identity, teamID domain.TeamID, required []domain.Role) (domain.UserID, error) {
	userID, err := a.ResolveUser(ctx, id)
	if err != nil {
		return "", err
	}

	user, err := a.repo.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%w: unknown user", ErrPermissionDenied)
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	membership, ok := user.Membership(teamID)
	if !ok {
		return "", fmt.Errorf("%w: not a member of team %s", ErrPermissionDenied, teamID)
	}

	person, err := a.repo.GetPerson(ctx, teamID, membership.PersonID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%w: member person missing", ErrPermissionDenied)
	}
	if err != nil {
		return "", fmt.Errorf("get person: %w", err)
	}
	if person.SignIn == nil || person.SignIn.UserID != userID {
		return "", fmt.Errorf("%w: person is not signed in", ErrPermissionDenied)
	}
	if !person.SignIn.Roles.Contains(required...) {
		return "", fmt.Errorf("%w: missing role", ErrPermissionDenied)
	}
	return userID, nil
}
