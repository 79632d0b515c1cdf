package domain

// Membership is the part of a user that refers to one team. TeamName is a
// snapshot taken when the user joined.
type Membership struct {
	TeamName string   `json:"teamName"`
	PersonID PersonID `json:"personId"`
}

type User struct {
	ID    UserID                `json:"id"`
	Teams map[TeamID]Membership `json:"teams"`
}

func NewUser(id UserID) User {
	return User{ID: id, Teams: map[TeamID]Membership{}}
}

// Membership returns the membership of u in the team, if any.
func (u User) Membership(teamID TeamID) (Membership, bool) {
	m, ok := u.Teams[teamID]
	return m, ok
}

// Join adds a membership to the user. It does not check for an existing one.
func (u *User) Join(teamID TeamID, teamName string, personID PersonID) {
	if u.Teams == nil {
		u.Teams = map[TeamID]Membership{}
	}
	u.Teams[teamID] = Membership{TeamName: teamName, PersonID: personID}
}
