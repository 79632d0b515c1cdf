package repository

import (
	"context"
	"errors"

	"github.com/finebook/finebook/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Repo is the document store. Put methods are upserts of a whole document.
// Delete methods return ErrNotFound when there is nothing to delete.
type Repo interface {
	GetTeam(ctx context.Context, teamID domain.TeamID) (domain.Team, error)
	CreateTeam(ctx context.Context, team domain.Team) error
	UpdateTeam(ctx context.Context, team domain.Team) error

	GetPerson(ctx context.Context, teamID domain.TeamID, personID domain.PersonID) (domain.Person, error)
	PutPerson(ctx context.Context, teamID domain.TeamID, person domain.Person) error
	DeletePerson(ctx context.Context, teamID domain.TeamID, personID domain.PersonID) error

	GetFineTemplate(ctx context.Context, teamID domain.TeamID, id domain.FineTemplateID) (domain.FineTemplate, error)
	PutFineTemplate(ctx context.Context, teamID domain.TeamID, tmpl domain.FineTemplate) error
	DeleteFineTemplate(ctx context.Context, teamID domain.TeamID, id domain.FineTemplateID) error

	GetFine(ctx context.Context, teamID domain.TeamID, id domain.FineID) (domain.Fine, error)
	PutFine(ctx context.Context, teamID domain.TeamID, fine domain.Fine) error
	DeleteFine(ctx context.Context, teamID domain.TeamID, id domain.FineID) error

	GetUser(ctx context.Context, userID domain.UserID) (domain.User, error)
	PutUser(ctx context.Context, user domain.User) error
	// GetUserIDByIdentity maps an authentication subject to its user.
	GetUserIDByIdentity(ctx context.Context, subject string) (domain.UserID, error)
	// BindIdentity returns ErrAlreadyExists if the subject is already bound.
	BindIdentity(ctx context.Context, subject string, userID domain.UserID) error

	GetInvitation(ctx context.Context, id domain.InvitationID) (domain.Invitation, error)
	// CreateInvitation returns ErrAlreadyExists if an invitation for the same
	// team and person is stored.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error
	DeleteInvitation(ctx context.Context, id domain.InvitationID) error

	// RunInTx runs fn against a Repo whose writes are committed together when
	// fn returns nil and discarded otherwise.
	RunInTx(ctx context.Context, fn func(Repo) error) error
}
