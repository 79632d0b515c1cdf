package usecase

import (
	"context"
	"fmt"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

// Invite creates the invitation for a person who is not signed in yet. At most
// one invitation per person exists; its id is derived from team and person.
func (u *Usecase) Invite(ctx context.Context, id *auth.Identity, teamID domain.TeamID, personID domain.PersonID) (domain.InvitationID, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleTeamManager); err != nil {
		return "", err
	}
	person, err := u.Repo.GetPerson(ctx, teamID, personID)
	if err != nil {
		return "", lookup("person "+string(personID), err)
	}
	if person.IsSignedIn() {
		return "", fmt.Errorf("%w: person %s is already signed in", ErrAlreadyExists, personID)
	}

	inv := domain.Invitation{TeamID: teamID, PersonID: personID}
	if err := u.Repo.CreateInvitation(ctx, inv); err != nil {
		return "", write("invitation", err)
	}
	return inv.ID(), nil
}

// Withdraw deletes the pending invitation of a person.
func (u *Usecase) Withdraw(ctx context.Context, id *auth.Identity, teamID domain.TeamID, personID domain.PersonID) error {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleTeamManager); err != nil {
		return err
	}
	invID := domain.NewInvitationID(teamID, personID)
	if _, err := u.Repo.GetInvitation(ctx, invID); err != nil {
		return lookup("invitation", err)
	}
	return write("invitation", u.Repo.DeleteInvitation(ctx, invID))
}

// InvitedPerson is what an invitee sees before accepting.
type InvitedPerson struct {
	TeamID     domain.TeamID     `json:"teamId"`
	TeamName   string            `json:"teamName"`
	PersonID   domain.PersonID   `json:"personId"`
	PersonName domain.PersonName `json:"personName"`
}

// InvitationPerson looks up the team and person an invitation is for. Any
// authenticated caller holding the invitation id may ask.
func (u *Usecase) InvitationPerson(ctx context.Context, id *auth.Identity, invID domain.InvitationID) (InvitedPerson, error) {
	if id == nil {
		return InvitedPerson{}, ErrUnauthenticated
	}
	inv, err := u.Repo.GetInvitation(ctx, invID)
	if err != nil {
		return InvitedPerson{}, lookup("invitation", err)
	}
	team, err := u.Repo.GetTeam(ctx, inv.TeamID)
	if err != nil {
		return InvitedPerson{}, lookup("team "+string(inv.TeamID), err)
	}
	person, err := u.Repo.GetPerson(ctx, inv.TeamID, inv.PersonID)
	if err != nil {
		return InvitedPerson{}, lookup("person "+string(inv.PersonID), err)
	}
	if person.IsSignedIn() {
		return InvitedPerson{}, fmt.Errorf("%w: person %s is already signed in", ErrAlreadyExists, person.ID)
	}
	return InvitedPerson{TeamID: team.ID, TeamName: team.Name, PersonID: person.ID, PersonName: person.Name}, nil
}

// AcceptInvitation links the caller to the invited person and consumes the
// invitation. The caller's user is created if this is their first team. All
// writes commit together and the invitation is deleted last.
func (u *Usecase) AcceptInvitation(ctx context.Context, id *auth.Identity, invID domain.InvitationID) (domain.User, error) {
	if id == nil {
		return domain.User{}, ErrUnauthenticated
	}

	var (
		user   domain.User
		teamID domain.TeamID
	)
	err := u.Repo.RunInTx(ctx, func(tx repository.Repo) error {
		inv, err := tx.GetInvitation(ctx, invID)
		if err != nil {
			return lookup("invitation", err)
		}
		teamID = inv.TeamID
		var created bool
		user, created, err = u.userFor(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, ok := user.Membership(inv.TeamID); ok {
			return fmt.Errorf("%w: user already in team %s", ErrAlreadyExists, inv.TeamID)
		}
		team, err := tx.GetTeam(ctx, inv.TeamID)
		if err != nil {
			return lookup("team "+string(inv.TeamID), err)
		}
		person, err := tx.GetPerson(ctx, inv.TeamID, inv.PersonID)
		if err != nil {
			return lookup("person "+string(inv.PersonID), err)
		}
		if person.IsSignedIn() {
			return fmt.Errorf("%w: person %s is already signed in", ErrAlreadyExists, person.ID)
		}

		user.Join(team.ID, team.Name, person.ID)
		if err := saveUser(ctx, tx, id, user, created); err != nil {
			return err
		}
		person.SignIn = domain.NewSignInProperties(user.ID, u.now(), nil)
		if err := write("person", tx.PutPerson(ctx, team.ID, person)); err != nil {
			return err
		}
		return write("invitation", tx.DeleteInvitation(ctx, invID))
	})
	if err != nil {
		return domain.User{}, err
	}
	u.log.Infof("user %s joined team %s", user.ID, teamID)
	return user, nil
}
