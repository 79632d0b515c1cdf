package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

// AddPerson creates a person that is not signed in and owns no fines.
func (u *Usecase) AddPerson(ctx context.Context, id *auth.Identity, teamID domain.TeamID, person domain.Person) (domain.Person, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RolePersonManager); err != nil {
		return domain.Person{}, err
	}
	if err := validate(person); err != nil {
		return domain.Person{}, err
	}
	_, err := u.Repo.GetPerson(ctx, teamID, person.ID)
	if err := absent("person "+string(person.ID), err); err != nil {
		return domain.Person{}, err
	}

	person.FineIDs = []domain.FineID{}
	person.SignIn = nil
	if err := u.Repo.PutPerson(ctx, teamID, person); err != nil {
		return domain.Person{}, write("person", err)
	}
	return person, nil
}

// UpdatePerson replaces a person's properties. Owned fines and sign in data
// are kept from the stored person.
func (u *Usecase) UpdatePerson(ctx context.Context, id *auth.Identity, teamID domain.TeamID, person domain.Person) (domain.Person, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RolePersonManager); err != nil {
		return domain.Person{}, err
	}
	if err := validate(person); err != nil {
		return domain.Person{}, err
	}
	existing, err := u.Repo.GetPerson(ctx, teamID, person.ID)
	if err != nil {
		return domain.Person{}, lookup("person "+string(person.ID), err)
	}

	person.FineIDs = existing.FineIDs
	person.SignIn = existing.SignIn
	if err := u.Repo.PutPerson(ctx, teamID, person); err != nil {
		return domain.Person{}, write("person", err)
	}
	return person, nil
}

// DeletePerson removes a person that is not signed in together with the
// fines they own and a pending invitation for them.
func (u *Usecase) DeletePerson(ctx context.Context, id *auth.Identity, teamID domain.TeamID, personID domain.PersonID) error {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RolePersonManager); err != nil {
		return err
	}

	var fines int
	err := u.Repo.RunInTx(ctx, func(tx repository.Repo) error {
		person, err := tx.GetPerson(ctx, teamID, personID)
		if err != nil {
			return lookup("person "+string(personID), err)
		}
		if person.IsSignedIn() {
			return fmt.Errorf("%w: person %s is signed in", ErrFailedPrecondition, personID)
		}

		for _, fineID := range person.FineIDs {
			err := tx.DeleteFine(ctx, teamID, fineID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return write("fine", err)
			}
		}
		fines = len(person.FineIDs)
		if err := write("person", tx.DeletePerson(ctx, teamID, personID)); err != nil {
			return err
		}
		err = tx.DeleteInvitation(ctx, domain.NewInvitationID(teamID, personID))
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return write("invitation", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if fines > 0 {
		u.log.Infof("person %s of team %s deleted with %d fine(s)", personID, teamID, fines)
	}
	return nil
}
