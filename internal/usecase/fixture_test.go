package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/infra"
	"github.com/finebook/finebook/internal/notify"
	"github.com/finebook/finebook/internal/repository/memory"
)

var testNow = time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)

type sent struct {
	tokens []string
	msg    domain.Message
}

// fakeMessenger records sends and fails the tokens listed in invalid.
type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sent
	invalid map[string]bool
}

func (f *fakeMessenger) SendMulticast(_ context.Context, tokens []string, msg domain.Message) ([]error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{tokens: append([]string{}, tokens...), msg: msg})
	results := make([]error, len(tokens))
	for i, tok := range tokens {
		if f.invalid[tok] {
			results[i] = notify.ErrTokenInvalid
		}
	}
	return results, nil
}

type fixture struct {
	t    *testing.T
	ctx  context.Context
	repo *memory.Repo
	msgr *fakeMessenger
	uc   *Usecase
	ids  int
}

func newFixture(t *testing.T) *fixture {
	repo := memory.New()
	logger := infra.NewNopLogger()
	authz, err := NewAuthorizer(repo, 16, logger)
	require.NoError(t, err)
	msgr := &fakeMessenger{invalid: map[string]bool{}}
	uc := NewUsecase(repo, authz, NewNotifier(repo, msgr, logger), logger)
	f := &fixture{t: t, ctx: context.Background(), repo: repo, msgr: msgr, uc: uc}
	uc.now = func() time.Time { return testNow }
	uc.newID = func() domain.UserID {
		f.ids++
		return domain.UserID(fmt.Sprintf("user-%d", f.ids))
	}
	return f
}

func identity(subject string) *auth.Identity {
	return &auth.Identity{Subject: subject}
}

// team creates a team through team.new with founder as the founding member
// and returns the founder's identity.
func (f *fixture) team(teamID domain.TeamID, founder domain.PersonID) *auth.Identity {
	id := identity("sub-" + string(founder))
	_, err := f.uc.NewTeam(f.ctx, id, NewTeamParams{
		TeamID:     teamID,
		TeamName:   "Team " + string(teamID),
		PersonID:   founder,
		PersonName: domain.PersonName{First: string(founder)},
	})
	require.NoError(f.t, err)
	return id
}

// person stores a person that is not signed in.
func (f *fixture) person(teamID domain.TeamID, personID domain.PersonID) {
	require.NoError(f.t, f.repo.PutPerson(f.ctx, teamID, domain.Person{
		ID:      personID,
		Name:    domain.PersonName{First: string(personID)},
		FineIDs: []domain.FineID{},
	}))
}

// member signs in a new user as personID with the given roles and returns
// their identity.
func (f *fixture) member(teamID domain.TeamID, personID domain.PersonID, roles ...domain.Role) *auth.Identity {
	f.person(teamID, personID)
	id := identity("sub-" + string(personID))
	userID := domain.UserID("uid-" + string(personID))
	user := domain.NewUser(userID)
	user.Join(teamID, "Team "+string(teamID), personID)
	require.NoError(f.t, f.repo.PutUser(f.ctx, user))
	require.NoError(f.t, f.repo.BindIdentity(f.ctx, id.Subject, userID))

	p, err := f.repo.GetPerson(f.ctx, teamID, personID)
	require.NoError(f.t, err)
	p.SignIn = domain.NewSignInProperties(userID, testNow, domain.NewRoleSet(roles...))
	require.NoError(f.t, f.repo.PutPerson(f.ctx, teamID, p))
	return id
}

func (f *fixture) getPerson(teamID domain.TeamID, personID domain.PersonID) domain.Person {
	p, err := f.repo.GetPerson(f.ctx, teamID, personID)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) userOf(id *auth.Identity) domain.User {
	userID, err := f.repo.GetUserIDByIdentity(f.ctx, id.Subject)
	require.NoError(f.t, err)
	u, err := f.repo.GetUser(f.ctx, userID)
	require.NoError(f.t, err)
	return u
}
