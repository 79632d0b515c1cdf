package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

func lateFine(id domain.FineID, owner domain.PersonID) domain.Fine {
	return domain.Fine{
		ID:         id,
		PersonID:   owner,
		PayedState: domain.NotPayed,
		Reason:     "Late",
		Amount:     domain.NewAmount(10, 50),
		Importance: domain.ImportanceMedium,
	}
}

// fineTeam is team t1 with person a (fine manager) and person b (not signed in).
func fineTeam(t *testing.T) (*fixture, *auth.Identity) {
	f := newFixture(t)
	f.team("t1", "admin")
	a := f.member("t1", "a", domain.RoleFineManager)
	f.person("t1", "b")
	return f, a
}

func TestAddFine(t *testing.T) {
	f, a := fineTeam(t)

	fine, err := f.uc.AddFine(f.ctx, a, "t1", lateFine("F1", "a"))
	require.NoError(t, err)
	assert.Equal(t, testNow, fine.Date)

	stored, err := f.repo.GetFine(f.ctx, "t1", "F1")
	require.NoError(t, err)
	assert.Equal(t, fine, stored)
	assert.Equal(t, []domain.FineID{"F1"}, f.getPerson("t1", "a").FineIDs)

	_, err = f.uc.AddFine(f.ctx, a, "t1", lateFine("F1", "a"))
	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, []domain.FineID{"F1"}, f.getPerson("t1", "a").FineIDs)
}

func TestAddFine_OwnerWithoutSignIn(t *testing.T) {
	f, a := fineTeam(t)

	_, err := f.uc.AddFine(f.ctx, a, "t1", lateFine("F2", "b"))
	require.NoError(t, err)
	assert.Equal(t, []domain.FineID{"F2"}, f.getPerson("t1", "b").FineIDs)
}

func TestAddFine_MissingPerson(t *testing.T) {
	f, a := fineTeam(t)

	_, err := f.uc.AddFine(f.ctx, a, "t1", lateFine("F3", "ghost"))
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.repo.GetFine(f.ctx, "t1", "F3")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddFine_CallerWithoutRole(t *testing.T) {
	f, _ := fineTeam(t)
	c := f.member("t1", "c", domain.RolePersonManager)

	_, err := f.uc.AddFine(f.ctx, c, "t1", lateFine("F4", "b"))
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAddThenDeleteFine_RestoresFineIDs(t *testing.T) {
	f, a := fineTeam(t)
	p := f.getPerson("t1", "b")
	p.FineIDs = []domain.FineID{"old-1", "old-2"}
	require.NoError(t, f.repo.PutPerson(f.ctx, "t1", p))

	_, err := f.uc.AddFine(f.ctx, a, "t1", lateFine("F5", "b"))
	require.NoError(t, err)
	require.NoError(t, f.uc.DeleteFine(f.ctx, a, "t1", "F5"))

	assert.ElementsMatch(t, []domain.FineID{"old-1", "old-2"}, f.getPerson("t1", "b").FineIDs)
	_, err = f.repo.GetFine(f.ctx, "t1", "F5")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, f.uc.DeleteFine(f.ctx, a, "t1", "F5"), ErrNotFound)
}

func TestUpdateFine(t *testing.T) {
	f, a := fineTeam(t)
	_, err := f.uc.AddFine(f.ctx, a, "t1", lateFine("F6", "b"))
	require.NoError(t, err)

	changed := lateFine("F6", "a")
	changed.PayedState = domain.Payed
	updated, err := f.uc.UpdateFine(f.ctx, a, "t1", changed)
	require.NoError(t, err)
	assert.Equal(t, domain.PersonID("b"), updated.PersonID, "owner cannot change")
	assert.Equal(t, testNow, updated.Date)
	assert.Equal(t, domain.Payed, updated.PayedState)

	_, err = f.uc.UpdateFine(f.ctx, a, "t1", lateFine("missing", "b"))
	require.ErrorIs(t, err, ErrNotFound)
}

func subscribe(f *fixture, teamID domain.TeamID, personID domain.PersonID, token string, topics ...domain.Topic) {
	p := f.getPerson(teamID, personID)
	p.SignIn.Notifications.AddToken(token)
	p.SignIn.Notifications.SubscribedTopics = topics
	require.NoError(f.t, f.repo.PutPerson(f.ctx, teamID, p))
}

func TestFine_Notifications(t *testing.T) {
	f, a := fineTeam(t)
	subscribe(f, "t1", "a", "device-a", domain.TopicNewFine, domain.TopicFineStateChange)

	_, err := f.uc.AddFine(f.ctx, a, "t1", lateFine("F7", "a"))
	require.NoError(t, err)
	require.Len(t, f.msgr.sent, 1)
	assert.Equal(t, []string{"device-a"}, f.msgr.sent[0].tokens)
	assert.Equal(t, "New fine", f.msgr.sent[0].msg.Title)
	assert.Contains(t, f.msgr.sent[0].msg.Body, "10.50")

	// same payed state: no notification
	_, err = f.uc.UpdateFine(f.ctx, a, "t1", lateFine("F7", "a"))
	require.NoError(t, err)
	require.Len(t, f.msgr.sent, 1)

	paid := lateFine("F7", "a")
	paid.PayedState = domain.Payed
	_, err = f.uc.UpdateFine(f.ctx, a, "t1", paid)
	require.NoError(t, err)
	require.Len(t, f.msgr.sent, 2)
	assert.Equal(t, "Fine updated", f.msgr.sent[1].msg.Title)

	require.NoError(t, f.uc.DeleteFine(f.ctx, a, "t1", "F7"))
	require.Len(t, f.msgr.sent, 3)
	assert.Equal(t, "Fine deleted", f.msgr.sent[2].msg.Title)

	// fines of b are never pushed, b is not signed in
	_, err = f.uc.AddFine(f.ctx, a, "t1", lateFine("F8", "b"))
	require.NoError(t, err)
	assert.Len(t, f.msgr.sent, 3)
}
