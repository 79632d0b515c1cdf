package memory

import "github.com/finebook/finebook/internal/domain"

func cloneUser(u domain.User) domain.User {
	teams := make(map[domain.TeamID]domain.Membership, len(u.Teams))
	for k, v := range u.Teams {
		teams[k] = v
	}
	u.Teams = teams
	return u
}

func clonePerson(p domain.Person) domain.Person {
	if p.Name.Last != nil {
		last := *p.Name.Last
		p.Name.Last = &last
	}
	p.FineIDs = append([]domain.FineID{}, p.FineIDs...)
	if p.SignIn != nil {
		s := *p.SignIn
		s.Roles = domain.NewRoleSet(s.Roles.Slice()...)
		tokens := make(map[domain.TokenID]string, len(s.Notifications.Tokens))
		for k, v := range s.Notifications.Tokens {
			tokens[k] = v
		}
		s.Notifications.Tokens = tokens
		s.Notifications.SubscribedTopics = append([]domain.Topic{}, s.Notifications.SubscribedTopics...)
		p.SignIn = &s
	}
	return p
}

func cloneTeam(t domain.Team) domain.Team {
	if t.PaypalMeLink != nil {
		link := *t.PaypalMeLink
		t.PaypalMeLink = &link
	}
	return t
}

func cloneFineTemplate(t domain.FineTemplate) domain.FineTemplate {
	if t.Counts != nil {
		c := *t.Counts
		if c.MaxCount != nil {
			m := *c.MaxCount
			c.MaxCount = &m
		}
		t.Counts = &c
	}
	return t
}

func cloneMap[K comparable, V any](m map[K]V, cp func(V) V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = cp(v)
	}
	return out
}

func identity[V any](v V) V { return v }
