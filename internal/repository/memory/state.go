package memory

import (
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/repository"
)

func (s *state) getTeam(id domain.TeamID) (domain.Team, error) {
	t, ok := s.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrNotFound
	}
	return cloneTeam(t), nil
}

func (s *state) createTeam(team domain.Team) error {
	if _, ok := s.teams[team.ID]; ok {
		return repository.ErrAlreadyExists
	}
	s.teams[team.ID] = cloneTeam(team)
	s.docs[team.ID] = &teamDocs{
		persons:   map[domain.PersonID]domain.Person{},
		templates: map[domain.FineTemplateID]domain.FineTemplate{},
		fines:     map[domain.FineID]domain.Fine{},
	}
	return nil
}

func (s *state) updateTeam(team domain.Team) error {
	if _, ok := s.teams[team.ID]; !ok {
		return repository.ErrNotFound
	}
	s.teams[team.ID] = cloneTeam(team)
	return nil
}

// team returns the documents of a team. Writes to a missing team fail like a
// foreign key violation would.
func (s *state) team(id domain.TeamID) (*teamDocs, error) {
	d, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (s *state) getPerson(teamID domain.TeamID, id domain.PersonID) (domain.Person, error) {
	d, err := s.team(teamID)
	if err != nil {
		return domain.Person{}, err
	}
	p, ok := d.persons[id]
	if !ok {
		return domain.Person{}, repository.ErrNotFound
	}
	return clonePerson(p), nil
}

func (s *state) putPerson(teamID domain.TeamID, p domain.Person) error {
	d, err := s.team(teamID)
	if err != nil {
		return err
	}
	d.persons[p.ID] = clonePerson(p)
	return nil
}

func (s *state) deletePerson(teamID domain.TeamID, id domain.PersonID) error {
	d, err := s.team(teamID)
	if err != nil {
		return err
	}
	if _, ok := d.persons[id]; !ok {
		return repository.ErrNotFound
	}
	delete(d.persons, id)
	return nil
}

func (s *state) getFineTemplate(teamID domain.TeamID, id domain.FineTemplateID) (domain.FineTemplate, error) {
	d, err := s.team(teamID)
	if err != nil {
		return domain.FineTemplate{}, err
	}
	t, ok := d.templates[id]
	if !ok {
		return domain.FineTemplate{}, repository.ErrNotFound
	}
	return cloneFineTemplate(t), nil
}

func (s *state) putFineTemplate(teamID domain.TeamID, t domain.FineTemplate) error {
	d, err := s.team(teamID)
	if err != nil {
		return err
	}
	d.templates[t.ID] = cloneFineTemplate(t)
	return nil
}

func (s *state) deleteFineTemplate(teamID domain.TeamID, id domain.FineTemplateID) error {
	d, err := s.team(teamID)
	if err != nil {
		return err
	}
	if _, ok := d.templates[id]; !ok {
		return repository.ErrNotFound
	}
	delete(d.templates, id)
	return nil
}

func (s *state) getFine(teamID domain.TeamID, id domain.FineID) (domain.Fine, error) {
	d, err := s.team(teamID)
	if err != nil {
		return domain.Fine{}, err
	}
	f, ok := d.fines[id]
	if !ok {
		return domain.Fine{}, repository.ErrNotFound
	}
	return f, nil
}

func (s *state) putFine(teamID domain.TeamID, f domain.Fine) error {
	d, err := s.team(teamID)
	if err != nil {
		return err
	}
	d.fines[f.ID] = f
	return nil
}

func (s *state) deleteFine(teamID domain.TeamID, id domain.FineID) error {
	d, err := s.team(teamID)
	if err != nil {
		return err
	}
	if _, ok := d.fines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(d.fines, id)
	return nil
}

func (s *state) getUser(id domain.UserID) (domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *state) putUser(u domain.User) error {
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *state) getUserIDByIdentity(subject string) (domain.UserID, error) {
	id, ok := s.identities[subject]
	if !ok {
		return "", repository.ErrNotFound
	}
	return id, nil
}

func (s *state) bindIdentity(subject string, userID domain.UserID) error {
	if _, ok := s.identities[subject]; ok {
		return repository.ErrAlreadyExists
	}
	s.identities[subject] = userID
	return nil
}

func (s *state) getInvitation(id domain.InvitationID) (domain.Invitation, error) {
	inv, ok := s.invitations[id]
	if !ok {
		return domain.Invitation{}, repository.ErrNotFound
	}
	return inv, nil
}

func (s *state) createInvitation(inv domain.Invitation) error {
	id := inv.ID()
	if _, ok := s.invitations[id]; ok {
		return repository.ErrAlreadyExists
	}
	s.invitations[id] = inv
	return nil
}

func (s *state) deleteInvitation(id domain.InvitationID) error {
	if _, ok := s.invitations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.invitations, id)
	return nil
}
