package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
	"github.com/finebook/finebook/migrations"
)

func setupTestDB(t *testing.T) *PGRepo {
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.Run(ctx, pool, "up"))
	return NewPGRepo(pool)
}

func TestPGRepo_TeamDocuments(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	link := "https://paypal.me/club"
	team := domain.Team{ID: "t1", Name: "Club", PaypalMeLink: &link}
	require.NoError(t, repo.CreateTeam(ctx, team))
	require.ErrorIs(t, repo.CreateTeam(ctx, team), repository.ErrAlreadyExists)

	got, err := repo.GetTeam(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, team, got)

	require.ErrorIs(t, repo.UpdateTeam(ctx, domain.Team{ID: "nope", Name: "x"}), repository.ErrNotFound)

	person := domain.Person{
		ID:      "p1",
		Name:    domain.PersonName{First: "Ann"},
		FineIDs: []domain.FineID{"f1"},
		SignIn:  domain.NewSignInProperties("u1", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), domain.NewRoleSet(domain.RoleFineManager)),
	}
	require.NoError(t, repo.PutPerson(ctx, "t1", person))
	gotPerson, err := repo.GetPerson(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.Equal(t, person, gotPerson)

	err = repo.PutPerson(ctx, "missing-team", person)
	require.ErrorIs(t, err, repository.ErrNotFound)

	fine := domain.Fine{ID: "f1", PersonID: "p1", PayedState: domain.NotPayed, Reason: "Late",
		Amount: domain.NewAmount(10, 50), Importance: domain.ImportanceMedium, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.PutFine(ctx, "t1", fine))
	gotFine, err := repo.GetFine(ctx, "t1", "f1")
	require.NoError(t, err)
	assert.Equal(t, fine, gotFine)

	require.NoError(t, repo.DeleteFine(ctx, "t1", "f1"))
	require.ErrorIs(t, repo.DeleteFine(ctx, "t1", "f1"), repository.ErrNotFound)
	_, err = repo.GetFine(ctx, "t1", "f1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPGRepo_Invitations(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	inv := domain.Invitation{TeamID: "t1", PersonID: "p1"}
	require.NoError(t, repo.CreateInvitation(ctx, inv))
	require.ErrorIs(t, repo.CreateInvitation(ctx, inv), repository.ErrAlreadyExists)

	got, err := repo.GetInvitation(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, inv, got)

	require.NoError(t, repo.DeleteInvitation(ctx, inv.ID()))
	require.ErrorIs(t, repo.DeleteInvitation(ctx, inv.ID()), repository.ErrNotFound)
}

func TestPGRepo_RunInTx_Rollback(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.PutUser(ctx, domain.NewUser("u1")))
	require.NoError(t, repo.BindIdentity(ctx, "sub-1", "u1"))
	require.ErrorIs(t, repo.BindIdentity(ctx, "sub-1", "u2"), repository.ErrAlreadyExists)

	boom := errors.New("boom")
	err := repo.RunInTx(ctx, func(tx repository.Repo) error {
		u, err := tx.GetUser(ctx, "u1")
		if err != nil {
			return err
		}
		u.Join("t1", "Club", "p1")
		if err := tx.PutUser(ctx, u); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.Teams)

	id, err := repo.GetUserIDByIdentity(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("u1"), id)
}
