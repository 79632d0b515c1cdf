// Package memory is an in-process repository.Repo used by tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

var _ repository.Repo = (*Repo)(nil)

type teamDocs struct {
	persons   map[domain.PersonID]domain.Person
	templates map[domain.FineTemplateID]domain.FineTemplate
	fines     map[domain.FineID]domain.Fine
}

type state struct {
	teams       map[domain.TeamID]domain.Team
	docs        map[domain.TeamID]*teamDocs
	users       map[domain.UserID]domain.User
	identities  map[string]domain.UserID
	invitations map[domain.InvitationID]domain.Invitation
}

func newState() *state {
	return &state{
		teams:       map[domain.TeamID]domain.Team{},
		docs:        map[domain.TeamID]*teamDocs{},
		users:       map[domain.UserID]domain.User{},
		identities:  map[string]domain.UserID{},
		invitations: map[domain.InvitationID]domain.Invitation{},
	}
}

func (s *state) clone() *state {
	c := &state{
		teams:       cloneMap(s.teams, cloneTeam),
		docs:        make(map[domain.TeamID]*teamDocs, len(s.docs)),
		users:       cloneMap(s.users, cloneUser),
		identities:  cloneMap(s.identities, identity[domain.UserID]),
		invitations: cloneMap(s.invitations, identity[domain.Invitation]),
	}
	for id, d := range s.docs {
		c.docs[id] = &teamDocs{
			persons:   cloneMap(d.persons, clonePerson),
			templates: cloneMap(d.templates, cloneFineTemplate),
			fines:     cloneMap(d.fines, identity[domain.Fine]),
		}
	}
	return c
}

// Repo guards a state with a mutex. Transactions run on a copy of the state
// that replaces the original on success.
type Repo struct {
	mu sync.RWMutex
	st *state
}

func New() *Repo {
	return &Repo{st: newState()}
}

func (r *Repo) read(fn func(*state) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(r.st)
}

func (r *Repo) write(fn func(*state) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.st)
}

func (r *Repo) RunInTx(ctx context.Context, fn func(repository.Repo) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := &txRepo{st: r.st.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.st = tx.st
	return nil
}

func (r *Repo) GetTeam(ctx context.Context, teamID domain.TeamID) (t domain.Team, err error) {
	err = r.read(func(s *state) error { t, err = s.getTeam(teamID); return err })
	return t, err
}

func (r *Repo) CreateTeam(ctx context.Context, team domain.Team) error {
	return r.write(func(s *state) error { return s.createTeam(team) })
}

func (r *Repo) UpdateTeam(ctx context.Context, team domain.Team) error {
	return r.write(func(s *state) error { return s.updateTeam(team) })
}

func (r *Repo) GetPerson(ctx context.Context, teamID domain.TeamID, personID domain.PersonID) (p domain.Person, err error) {
	err = r.read(func(s *state) error { p, err = s.getPerson(teamID, personID); return err })
	return p, err
}

func (r *Repo) PutPerson(ctx context.Context, teamID domain.TeamID, person domain.Person) error {
	return r.write(func(s *state) error { return s.putPerson(teamID, person) })
}

func (r *Repo) DeletePerson(ctx context.Context, teamID domain.TeamID, personID domain.PersonID) error {
	return r.write(func(s *state) error { return s.deletePerson(teamID, personID) })
}

func (r *Repo) GetFineTemplate(ctx context.Context, teamID domain.TeamID, id domain.FineTemplateID) (t domain.FineTemplate, err error) {
	err = r.read(func(s *state) error { t, err = s.getFineTemplate(teamID, id); return err })
	return t, err
}

func (r *Repo) PutFineTemplate(ctx context.Context, teamID domain.TeamID, tmpl domain.FineTemplate) error {
	return r.write(func(s *state) error { return s.putFineTemplate(teamID, tmpl) })
}

func (r *Repo) DeleteFineTemplate(ctx context.Context, teamID domain.TeamID, id domain.FineTemplateID) error {
	return r.write(func(s *state) error { return s.deleteFineTemplate(teamID, id) })
}

func (r *Repo) GetFine(ctx context.Context, teamID domain.TeamID, id domain.FineID) (f domain.Fine, err error) {
	err = r.read(func(s *state) error { f, err = s.getFine(teamID, id); return err })
	return f, err
}

func (r *Repo) PutFine(ctx context.Context, teamID domain.TeamID, fine domain.Fine) error {
	return r.write(func(s *state) error { return s.putFine(teamID, fine) })
}

func (r *Repo) DeleteFine(ctx context.Context, teamID domain.TeamID, id domain.FineID) error {
	return r.write(func(s *state) error { return s.deleteFine(teamID, id) })
}

func (r *Repo) GetUser(ctx context.Context, userID domain.UserID) (u domain.User, err error) {
	err = r.read(func(s *state) error { u, err = s.getUser(userID); return err })
	return u, err
}

func (r *Repo) PutUser(ctx context.Context, user domain.User) error {
	return r.write(func(s *state) error { return s.putUser(user) })
}

func (r *Repo) GetUserIDByIdentity(ctx context.Context, subject string) (id domain.UserID, err error) {
	err = r.read(func(s *state) error { id, err = s.getUserIDByIdentity(subject); return err })
	return id, err
}

func (r *Repo) BindIdentity(ctx context.Context, subject string, userID domain.UserID) error {
	return r.write(func(s *state) error { return s.bindIdentity(subject, userID) })
}

func (r *Repo) GetInvitation(ctx context.Context, id domain.InvitationID) (inv domain.Invitation, err error) {
	err = r.read(func(s *state) error { inv, err = s.getInvitation(id); return err })
	return inv, err
}

func (r *Repo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	return r.write(func(s *state) error { return s.createInvitation(inv) })
}

func (r *Repo) DeleteInvitation(ctx context.Context, id domain.InvitationID) error {
	return r.write(func(s *state) error { return s.deleteInvitation(id) })
}
