package usecase

import (
	"context"
	"fmt"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

// AddFine stores a new fine and appends it to its person's fines. The caller
// needs the fine manager role; the owning person's roles do not matter.
func (u *Usecase) AddFine(ctx context.Context, id *auth.Identity, teamID domain.TeamID, fine domain.Fine) (domain.Fine, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleFineManager); err != nil {
		return domain.Fine{}, err
	}
	if err := validate(fine); err != nil {
		return domain.Fine{}, err
	}
	if fine.Date.IsZero() {
		fine.Date = u.now().UTC()
	}

	err := u.Repo.RunInTx(ctx, func(tx repository.Repo) error {
		_, err := tx.GetFine(ctx, teamID, fine.ID)
		if err := absent("fine "+string(fine.ID), err); err != nil {
			return err
		}
		person, err := tx.GetPerson(ctx, teamID, fine.PersonID)
		if err != nil {
			return lookup("person "+string(fine.PersonID), err)
		}
		if err := write("fine", tx.PutFine(ctx, teamID, fine)); err != nil {
			return err
		}
		person.AddFine(fine.ID)
		return write("person", tx.PutPerson(ctx, teamID, person))
	})
	if err != nil {
		return domain.Fine{}, err
	}

	u.notify(ctx, teamID, fine.PersonID, domain.TopicNewFine, domain.Message{
		Title: "New fine",
		Body:  fmt.Sprintf("You got a fine of %s for %q.", fine.Amount, fine.Reason),
	})
	return fine, nil
}

// UpdateFine replaces a fine. The owning person cannot change.
func (u *Usecase) UpdateFine(ctx context.Context, id *auth.Identity, teamID domain.TeamID, fine domain.Fine) (domain.Fine, error) {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleFineManager); err != nil {
		return domain.Fine{}, err
	}
	if _, err := u.Repo.GetTeam(ctx, teamID); err != nil {
		return domain.Fine{}, lookup("team "+string(teamID), err)
	}
	existing, err := u.Repo.GetFine(ctx, teamID, fine.ID)
	if err != nil {
		return domain.Fine{}, lookup("fine "+string(fine.ID), err)
	}
	fine.PersonID = existing.PersonID
	if fine.Date.IsZero() {
		fine.Date = existing.Date
	}
	if err := validate(fine); err != nil {
		return domain.Fine{}, err
	}

	if err := u.Repo.PutFine(ctx, teamID, fine); err != nil {
		return domain.Fine{}, write("fine", err)
	}
	if fine.PayedState != existing.PayedState {
		u.notify(ctx, teamID, fine.PersonID, domain.TopicFineStateChange, domain.Message{
			Title: "Fine updated",
			Body:  fmt.Sprintf("Your fine for %q is now %s.", fine.Reason, payedStateText(fine.PayedState)),
		})
	}
	return fine, nil
}

// DeleteFine removes a fine and drops it from its person's fines.
func (u *Usecase) DeleteFine(ctx context.Context, id *auth.Identity, teamID domain.TeamID, fineID domain.FineID) error {
	if _, err := u.Auth.Authorize(ctx, id, teamID, domain.RoleFineManager); err != nil {
		return err
	}

	var fine domain.Fine
	err := u.Repo.RunInTx(ctx, func(tx repository.Repo) error {
		if _, err := tx.GetTeam(ctx, teamID); err != nil {
			return lookup("team "+string(teamID), err)
		}
		var err error
		fine, err = tx.GetFine(ctx, teamID, fineID)
		if err != nil {
			return lookup("fine "+string(fineID), err)
		}
		person, err := tx.GetPerson(ctx, teamID, fine.PersonID)
		if err != nil {
			return lookup("person "+string(fine.PersonID), err)
		}
		if err := write("fine", tx.DeleteFine(ctx, teamID, fineID)); err != nil {
			return err
		}
		person.RemoveFine(fineID)
		return write("person", tx.PutPerson(ctx, teamID, person))
	})
	if err != nil {
		return err
	}

	u.notify(ctx, teamID, fine.PersonID, domain.TopicFineStateChange, domain.Message{
		Title: "Fine deleted",
		Body:  fmt.Sprintf("Your fine for %q was deleted.", fine.Reason),
	})
	return nil
}

func payedStateText(s domain.PayedState) string {
	if s == domain.Payed {
		return "paid"
	}
	return "unpaid"
}
