package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

var _ repository.Repo = (*PGRepo)(nil)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	maxTxAttempts            = 3
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGRepo stores every entity as a JSONB document. Team scoped documents live
// in tables keyed by (team_id, id) and are removed with their team.
type PGRepo struct {
	pool *pgxpool.Pool
	q    querier
	inTx bool
}

func NewPGRepo(pool *pgxpool.Pool) *PGRepo {
	return &PGRepo{pool: pool, q: pool}
}

func (p *PGRepo) RunInTx(ctx context.Context, fn func(repository.Repo) error) error {
	if p.inTx {
		return fn(p)
	}

	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * 90 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err = p.runTx(ctx, fn)
		if !isCode(err, codeSerializationFailure) {
			return err
		}
	}
	return err
}

func (p *PGRepo) runTx(ctx context.Context, fn func(repository.Repo) error) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&PGRepo{pool: p.pool, q: tx, inTx: true}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// mapErr turns driver errors into repository errors.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return repository.ErrNotFound
	case isCode(err, codeUniqueViolation):
		return repository.ErrAlreadyExists
	case isCode(err, codeForeignKeyViolation):
		return repository.ErrNotFound
	}
	return err
}

func (p *PGRepo) getDoc(ctx context.Context, dst any, query string, args ...any) error {
	var raw []byte
	if err := p.q.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return mapErr(err)
	}
	return json.Unmarshal(raw, dst)
}

func (p *PGRepo) exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	tag, err := p.q.Exec(ctx, query, args...)
	return tag, mapErr(err)
}

func (p *PGRepo) mustAffect(ctx context.Context, notAffected error, query string, args ...any) error {
	tag, err := p.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notAffected
	}
	return nil
}

func (p *PGRepo) GetTeam(ctx context.Context, teamID domain.TeamID) (domain.Team, error) {
	var t domain.Team
	err := p.getDoc(ctx, &t, "SELECT doc FROM teams WHERE id=$1", string(teamID))
	return t, err
}

func (p *PGRepo) CreateTeam(ctx context.Context, team domain.Team) error {
	doc, err := json.Marshal(team)
	if err != nil {
		return err
	}
	return p.mustAffect(ctx, repository.ErrAlreadyExists,
		"INSERT INTO teams (id, doc) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING", string(team.ID), doc)
}

func (p *PGRepo) UpdateTeam(ctx context.Context, team domain.Team) error {
	doc, err := json.Marshal(team)
	if err != nil {
		return err
	}
	return p.mustAffect(ctx, repository.ErrNotFound,
		"UPDATE teams SET doc=$2 WHERE id=$1", string(team.ID), doc)
}

func (p *PGRepo) getTeamDoc(ctx context.Context, table string, dst any, teamID domain.TeamID, id string) error {
	return p.getDoc(ctx, dst, "SELECT doc FROM "+table+" WHERE team_id=$1 AND id=$2", string(teamID), id)
}

func (p *PGRepo) putTeamDoc(ctx context.Context, table string, teamID domain.TeamID, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.exec(ctx, `INSERT INTO `+table+` (team_id, id, doc) VALUES ($1, $2, $3)
		ON CONFLICT (team_id, id) DO UPDATE SET doc=EXCLUDED.doc`, string(teamID), id, doc)
	return err
}

func (p *PGRepo) deleteTeamDoc(ctx context.Context, table string, teamID domain.TeamID, id string) error {
	return p.mustAffect(ctx, repository.ErrNotFound,
		"DELETE FROM "+table+" WHERE team_id=$1 AND id=$2", string(teamID), id)
}

func (p *PGRepo) GetPerson(ctx context.Context, teamID domain.TeamID, personID domain.PersonID) (domain.Person, error) {
	var person domain.Person
	err := p.getTeamDoc(ctx, "persons", &person, teamID, string(personID))
	return person, err
}

func (p *PGRepo) PutPerson(ctx context.Context, teamID domain.TeamID, person domain.Person) error {
	return p.putTeamDoc(ctx, "persons", teamID, string(person.ID), person)
}

func (p *PGRepo) DeletePerson(ctx context.Context, teamID domain.TeamID, personID domain.PersonID) error {
	return p.deleteTeamDoc(ctx, "persons", teamID, string(personID))
}

func (p *PGRepo) GetFineTemplate(ctx context.Context, teamID domain.TeamID, id domain.FineTemplateID) (domain.FineTemplate, error) {
	var tmpl domain.FineTemplate
	err := p.getTeamDoc(ctx, "fine_templates", &tmpl, teamID, string(id))
	return tmpl, err
}

func (p *PGRepo) PutFineTemplate(ctx context.Context, teamID domain.TeamID, tmpl domain.FineTemplate) error {
	return p.putTeamDoc(ctx, "fine_templates", teamID, string(tmpl.ID), tmpl)
}

func (p *PGRepo) DeleteFineTemplate(ctx context.Context, teamID domain.TeamID, id domain.FineTemplateID) error {
	return p.deleteTeamDoc(ctx, "fine_templates", teamID, string(id))
}

func (p *PGRepo) GetFine(ctx context.Context, teamID domain.TeamID, id domain.FineID) (domain.Fine, error) {
	var fine domain.Fine
	err := p.getTeamDoc(ctx, "fines", &fine, teamID, string(id))
	return fine, err
}

func (p *PGRepo) PutFine(ctx context.Context, teamID domain.TeamID, fine domain.Fine) error {
	return p.putTeamDoc(ctx, "fines", teamID, string(fine.ID), fine)
}

func (p *PGRepo) DeleteFine(ctx context.Context, teamID domain.TeamID, id domain.FineID) error {
	return p.deleteTeamDoc(ctx, "fines", teamID, string(id))
}

func (p *PGRepo) GetUser(ctx context.Context, userID domain.UserID) (domain.User, error) {
	var u domain.User
	if err := p.getDoc(ctx, &u, "SELECT doc FROM users WHERE id=$1", string(userID)); err != nil {
		return domain.User{}, err
	}
	if u.Teams == nil {
		u.Teams = map[domain.TeamID]domain.Membership{}
	}
	return u, nil
}

func (p *PGRepo) PutUser(ctx context.Context, user domain.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return err
	}
	_, err = p.exec(ctx, `INSERT INTO users (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc=EXCLUDED.doc`, string(user.ID), doc)
	return err
}

func (p *PGRepo) GetUserIDByIdentity(ctx context.Context, subject string) (domain.UserID, error) {
	var id string
	if err := p.q.QueryRow(ctx, "SELECT user_id FROM identities WHERE subject=$1", subject).Scan(&id); err != nil {
		return "", mapErr(err)
	}
	return domain.UserID(id), nil
}

func (p *PGRepo) BindIdentity(ctx context.Context, subject string, userID domain.UserID) error {
	return p.mustAffect(ctx, repository.ErrAlreadyExists,
		"INSERT INTO identities (subject, user_id) VALUES ($1, $2) ON CONFLICT (subject) DO NOTHING",
		subject, string(userID))
}

func (p *PGRepo) GetInvitation(ctx context.Context, id domain.InvitationID) (domain.Invitation, error) {
	var teamID, personID string
	err := p.q.QueryRow(ctx, "SELECT team_id, person_id FROM invitations WHERE id=$1", string(id)).Scan(&teamID, &personID)
	if err != nil {
		return domain.Invitation{}, mapErr(err)
	}
	return domain.Invitation{TeamID: domain.TeamID(teamID), PersonID: domain.PersonID(personID)}, nil
}

func (p *PGRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	return p.mustAffect(ctx, repository.ErrAlreadyExists,
		"INSERT INTO invitations (id, team_id, person_id) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING",
		string(inv.ID()), string(inv.TeamID), string(inv.PersonID))
}

func (p *PGRepo) DeleteInvitation(ctx context.Context, id domain.InvitationID) error {
	return p.mustAffect(ctx, repository.ErrNotFound, "DELETE FROM invitations WHERE id=$1", string(id))
}
