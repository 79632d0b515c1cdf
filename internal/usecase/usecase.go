package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/infra"
	"github.com/finebook/finebook/internal/repository"
)

// Usecase implements the remote procedures. Each call is independent; all
// state lives in the repository.
type Usecase struct {
	Repo     repository.Repo
	Auth     *Authorizer
	Notifier *Notifier
	log      infra.Logger
	now      func() time.Time
	newID    func() domain.UserID
}

func NewUsecase(repo repository.Repo, authz *Authorizer, notifier *Notifier, log infra.Logger) *Usecase {
	return &Usecase{
		Repo:     repo,
		Auth:     authz,
		Notifier: notifier,
		log:      log,
		now:      time.Now,
		newID:    func() domain.UserID { return domain.UserID(uuid.NewString()) },
	}
}

// notify pushes after a committed change. Failures are logged only.
func (u *Usecase) notify(ctx context.Context, teamID domain.TeamID, personID domain.PersonID, topic domain.Topic, msg domain.Message) {
	if err := u.Notifier.Push(ctx, teamID, personID, topic, msg); err != nil {
		u.log.Errorf("notify %s of team %s: %v", topic, teamID, err)
	}
}

// userFor returns the caller's user read through repo, or a new unsaved user
// when the identity is not bound yet. created reports the latter.
func (u *Usecase) userFor(ctx context.Context, repo repository.Repo, id *auth.Identity) (user domain.User, created bool, err error) {
	userID, err := repo.GetUserIDByIdentity(ctx, id.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewUser(u.newID()), true, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("resolve identity: %w", err)
	}
	user, err = repo.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewUser(userID), false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return user, false, nil
}

// saveUser writes user and, for a new user, binds the identity to it.
func saveUser(ctx context.Context, repo repository.Repo, id *auth.Identity, user domain.User, created bool) error {
	if created {
		if err := repo.BindIdentity(ctx, id.Subject, user.ID); err != nil {
			return write("identity", err)
		}
	}
	return write("user", repo.PutUser(ctx, user))
}
