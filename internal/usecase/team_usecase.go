package usecase

import (
	"context"
	"fmt"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

type NewTeamParams struct {
	TeamID       domain.TeamID
	TeamName     string
	PaypalMeLink *string
	PersonID     domain.PersonID
	PersonName   domain.PersonName
}

// NewTeam creates a team with the caller as its founding member holding every
// role.
func (u *Usecase) NewTeam(ctx context.Context, id *auth.Identity, p NewTeamParams) (domain.Team, error) {
	if id == nil {
		return domain.Team{}, ErrUnauthenticated
	}
	team := domain.Team{ID: p.TeamID, Name: p.TeamName, PaypalMeLink: p.PaypalMeLink}
	if err := validate(team); err != nil {
		return domain.Team{}, err
	}
	person := domain.Person{ID: p.PersonID, Name: p.PersonName, FineIDs: []domain.FineID{}}
	if err := validate(person); err != nil {
		return domain.Team{}, err
	}

	err := u.Repo.RunInTx(ctx, func(tx repository.Repo) error {
		_, err := tx.GetTeam(ctx, team.ID)
		if err := absent("team "+string(team.ID), err); err != nil {
			return err
		}
		user, created, err := u.userFor(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, ok := user.Membership(team.ID); ok {
			return fmt.Errorf("%w: user already in team %s", ErrAlreadyExists, team.ID)
		}

		if err := write("team", tx.CreateTeam(ctx, team)); err != nil {
			return err
		}
		person.SignIn = domain.NewSignInProperties(user.ID, u.now(), domain.AllRoles())
		if err := write("person", tx.PutPerson(ctx, team.ID, person)); err != nil {
			return err
		}
		user.Join(team.ID, team.Name, person.ID)
		return saveUser(ctx, tx, id, user, created)
	})
	if err != nil {
		return domain.Team{}, err
	}
	u.log.Infof("team %s created", team.ID)
	return team, nil
}

// EditPaypalMe sets or, with a nil link, clears the team's payment link.
func (u *Usecase) EditPaypalMe(ctx context.Context, id *auth.Identity, teamID domain.TeamID, link *string) (domain.Team, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleTeamPropertiesManager); err != nil {
		return domain.Team{}, err
	}
	team, err := u.Repo.GetTeam(ctx, teamID)
	if err != nil {
		return domain.Team{}, lookup("team "+string(teamID), err)
	}
	team.PaypalMeLink = link
	if err := validate(team); err != nil {
		return domain.Team{}, err
	}
	if err := u.Repo.UpdateTeam(ctx, team); err != nil {
		return domain.Team{}, write("team", err)
	}
	return team, nil
}
