package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

type (
	TeamID         string
	PersonID       string
	UserID         string
	FineID         string
	FineTemplateID string
	InvitationID   string
	TokenID        string
)

// hashedIDLength is the number of hex characters kept from a SHA-256 digest
// for derived IDs. Changing it breaks lookups of already stored invitations
// and tokens.
const hashedIDLength = 16

// NewInvitationID derives the invitation key for a person of a team from the
// team ID bytes followed by the person ID bytes.
func NewInvitationID(teamID TeamID, personID PersonID) InvitationID {
	return InvitationID(hashedID([]byte(teamID), []byte(personID)))
}

// NewTokenID derives the key a push token is stored under, so registering the
// same token twice overwrites the first entry.
func NewTokenID(token string) TokenID {
	return TokenID(hashedID([]byte(token)))
}

func hashedID(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))[:hashedIDLength]
}
