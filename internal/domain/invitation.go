package domain

// Invitation exists between invitation.invite and invitation.register or
// invitation.withdraw. It is stored under NewInvitationID(TeamID, PersonID).
type Invitation struct {
	TeamID   TeamID   `json:"teamId"`
	PersonID PersonID `json:"personId"`
}

func (i Invitation) ID() InvitationID {
	return NewInvitationID(i.TeamID, i.PersonID)
}
