package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

// Login returns the caller's user.
func (u *Usecase) Login(ctx context.Context, id *auth.Identity) (domain.User, error) {
	if id == nil {
		return domain.User{}, ErrUnauthenticated
	}
	userID, err := u.Repo.GetUserIDByIdentity(ctx, id.Subject)
	if err != nil {
		return domain.User{}, lookup("user", err)
	}
	user, err := u.Repo.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, lookup("user "+string(userID), err)
	}
	return user, nil
}

// Register creates a user without teams for the caller.
func (u *Usecase) Register(ctx context.Context, id *auth.Identity) (domain.User, error) {
	if id == nil {
		return domain.User{}, ErrUnauthenticated
	}
	var user domain.User
	err := u.Repo.RunInTx(ctx, func(tx repository.Repo) error {
		_, err := tx.GetUserIDByIdentity(ctx, id.Subject)
		if err := absent("user", err); err != nil {
			return err
		}
		user = domain.NewUser(u.newID())
		return saveUser(ctx, tx, id, user, true)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// EditRoles replaces the roles of a team member. A caller acting on themself
// cannot give up the user role manager role.
func (u *Usecase) EditRoles(ctx context.Context, id *auth.Identity, teamID domain.TeamID, userID domain.UserID, roles domain.RoleSet) error {
	callerID, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleUserRoleManager)
	if err != nil {
		return err
	}
	if callerID == userID && !roles.Contains(domain.RoleUserRoleManager) {
		return fmt.Errorf("%w: cannot remove own %s role", ErrInvalidArgument, domain.RoleUserRoleManager)
	}

	target, err := u.Repo.GetUser(ctx, userID)
	if err != nil {
		return lookup("user "+string(userID), err)
	}
	membership, ok := target.Membership(teamID)
	if !ok {
		return fmt.Errorf("%w: user %s is not in team %s", ErrNotFound, userID, teamID)
	}
	person, err := u.Repo.GetPerson(ctx, teamID, membership.PersonID)
	if err != nil {
		return lookup("person "+string(membership.PersonID), err)
	}
	if person.SignIn == nil || person.SignIn.UserID != userID {
		return fmt.Errorf("%w: person %s is not signed in as %s", ErrFailedPrecondition, person.ID, userID)
	}

	if roles == nil {
		roles = domain.RoleSet{}
	}
	person.SignIn.Roles = roles
	return write("person", u.Repo.PutPerson(ctx, teamID, person))
}

// signedInPerson returns the person of the team the caller is signed in as.
func (u *Usecase) signedInPerson(ctx context.Context, id *auth.Identity, teamID domain.TeamID, personID domain.PersonID) (domain.Person, error) {
	userID, err := u.Auth.ResolveUser(ctx, id)
	if err != nil {
		return domain.Person{}, err
	}
	person, err := u.Repo.GetPerson(ctx, teamID, personID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Person{}, fmt.Errorf("%w: person %s", ErrNotFound, personID)
	}
	if err != nil {
		return domain.Person{}, fmt.Errorf("get person: %w", err)
	}
	if person.SignIn == nil || person.SignIn.UserID != userID {
		return domain.Person{}, fmt.Errorf("%w: not signed in as person %s", ErrPermissionDenied, personID)
	}
	return person, nil
}
