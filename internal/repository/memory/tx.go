package memory

import (
	"context"

	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

var _ repository.Repo = (*txRepo)(nil)

// txRepo works on a private copy of the state while the owning Repo holds its
// write lock, so it must not lock again.
type txRepo struct {
	st *state
}

func (t *txRepo) RunInTx(ctx context.Context, fn func(repository.Repo) error) error {
	return fn(t)
}

func (t *txRepo) GetTeam(_ context.Context, id domain.TeamID) (domain.Team, error) {
	return t.st.getTeam(id)
}

func (t *txRepo) CreateTeam(_ context.Context, team domain.Team) error {
	return t.st.createTeam(team)
}

func (t *txRepo) UpdateTeam(_ context.Context, team domain.Team) error {
	return t.st.updateTeam(team)
}

func (t *txRepo) GetPerson(_ context.Context, teamID domain.TeamID, id domain.PersonID) (domain.Person, error) {
	return t.st.getPerson(teamID, id)
}

func (t *txRepo) PutPerson(_ context.Context, teamID domain.TeamID, p domain.Person) error {
	return t.st.putPerson(teamID, p)
}

func (t *txRepo) DeletePerson(_ context.Context, teamID domain.TeamID, id domain.PersonID) error {
	return t.st.deletePerson(teamID, id)
}

func (t *txRepo) GetFineTemplate(_ context.Context, teamID domain.TeamID, id domain.FineTemplateID) (domain.FineTemplate, error) {
	return t.st.getFineTemplate(teamID, id)
}

func (t *txRepo) PutFineTemplate(_ context.Context, teamID domain.TeamID, tmpl domain.FineTemplate) error {
	return t.st.putFineTemplate(teamID, tmpl)
}

func (t *txRepo) DeleteFineTemplate(_ context.Context, teamID domain.TeamID, id domain.FineTemplateID) error {
	return t.st.deleteFineTemplate(teamID, id)
}

func (t *txRepo) GetFine(_ context.Context, teamID domain.TeamID, id domain.FineID) (domain.Fine, error) {
	return t.st.getFine(teamID, id)
}

func (t *txRepo) PutFine(_ context.Context, teamID domain.TeamID, f domain.Fine) error {
	return t.st.putFine(teamID, f)
}

func (t *txRepo) DeleteFine(_ context.Context, teamID domain.TeamID, id domain.FineID) error {
	return t.st.deleteFine(teamID, id)
}

func (t *txRepo) GetUser(_ context.Context, id domain.UserID) (domain.User, error) {
	return t.st.getUser(id)
}

func (t *txRepo) PutUser(_ context.Context, u domain.User) error {
	return t.st.putUser(u)
}

func (t *txRepo) GetUserIDByIdentity(_ context.Context, subject string) (domain.UserID, error) {
	return t.st.getUserIDByIdentity(subject)
}

func (t *txRepo) BindIdentity(_ context.Context, subject string, userID domain.UserID) error {
	return t.st.bindIdentity(subject, userID)
}

func (t *txRepo) GetInvitation(_ context.Context, id domain.InvitationID) (domain.Invitation, error) {
	return t.st.getInvitation(id)
}

func (t *txRepo) CreateInvitation(_ context.Context, inv domain.Invitation) error {
	return t.st.createInvitation(inv)
}

func (t *txRepo) DeleteInvitation(_ context.Context, id domain.InvitationID) error {
	return t.st.deleteInvitation(id)
}
