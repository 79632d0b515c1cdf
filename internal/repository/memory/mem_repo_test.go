package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

func TestRepo_PersonRequiresTeam(t *testing.T) {
	ctx := context.Background()
	r := New()

	err := r.PutPerson(ctx, "t1", domain.Person{ID: "p1"})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, r.CreateTeam(ctx, domain.Team{ID: "t1", Name: "Team"}))
	require.ErrorIs(t, r.CreateTeam(ctx, domain.Team{ID: "t1", Name: "Other"}), repository.ErrAlreadyExists)
	require.NoError(t, r.PutPerson(ctx, "t1", domain.Person{ID: "p1"}))

	_, err = r.GetPerson(ctx, "t1", "p1")
	require.NoError(t, err)
	require.NoError(t, r.DeletePerson(ctx, "t1", "p1"))
	require.ErrorIs(t, r.DeletePerson(ctx, "t1", "p1"), repository.ErrNotFound)
}

func TestRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := New()
	require.NoError(t, r.CreateTeam(ctx, domain.Team{ID: "t1", Name: "Team"}))
	require.NoError(t, r.PutPerson(ctx, "t1", domain.Person{ID: "p1", FineIDs: []domain.FineID{"f1"}}))

	p, err := r.GetPerson(ctx, "t1", "p1")
	require.NoError(t, err)
	p.FineIDs[0] = "changed"

	again, err := r.GetPerson(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.FineID{"f1"}, again.FineIDs)
}

func TestRepo_CreateInvitationOnce(t *testing.T) {
	ctx := context.Background()
	r := New()
	inv := domain.Invitation{TeamID: "t1", PersonID: "p1"}
	require.NoError(t, r.CreateInvitation(ctx, inv))
	require.ErrorIs(t, r.CreateInvitation(ctx, inv), repository.ErrAlreadyExists)

	got, err := r.GetInvitation(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, inv, got)
	require.NoError(t, r.DeleteInvitation(ctx, inv.ID()))
	require.ErrorIs(t, r.DeleteInvitation(ctx, inv.ID()), repository.ErrNotFound)
}

func TestRepo_RunInTx(t *testing.T) {
	ctx := context.Background()
	r := New()
	require.NoError(t, r.PutUser(ctx, domain.NewUser("u1")))

	boom := errors.New("boom")
	err := r.RunInTx(ctx, func(tx repository.Repo) error {
		u, err := tx.GetUser(ctx, "u1")
		require.NoError(t, err)
		u.Join("t1", "Team", "p1")
		require.NoError(t, tx.PutUser(ctx, u))
		return boom
	})
	require.ErrorIs(t, err, boom)
	u, err := r.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.Teams)

	err = r.RunInTx(ctx, func(tx repository.Repo) error {
		u, err := tx.GetUser(ctx, "u1")
		if err != nil {
			return err
		}
		u.Join("t1", "Team", "p1")
		return tx.PutUser(ctx, u)
	})
	require.NoError(t, err)
	u, err = r.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonID("p1"), u.Teams["t1"].PersonID)
}

func TestRepo_BindIdentity(t *testing.T) {
	ctx := context.Background()
	r := New()
	_, err := r.GetUserIDByIdentity(ctx, "sub")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, r.BindIdentity(ctx, "sub", "u1"))
	require.ErrorIs(t, r.BindIdentity(ctx, "sub", "u2"), repository.ErrAlreadyExists)
	id, err := r.GetUserIDByIdentity(ctx, "sub")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("u1"), id)
}
