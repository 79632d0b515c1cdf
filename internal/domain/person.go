package domain

import "time"

type PersonName struct {
	First string  `json:"first"`
	Last  *string `json:"last,omitempty"`
}

// SignInProperties link a person to a registered user.
type SignInProperties struct {
	UserID        UserID                 `json:"userId"`
	SignInDate    time.Time              `json:"signInDate"`
	Notifications NotificationProperties `json:"notificationProperties"`
	Roles         RoleSet                `json:"roles"`
}

func NewSignInProperties(userID UserID, now time.Time, roles RoleSet) *SignInProperties {
	if roles == nil {
		roles = RoleSet{}
	}
	return &SignInProperties{
		UserID:        userID,
		SignInDate:    now.UTC(),
		Notifications: NewNotificationProperties(),
		Roles:         roles,
	}
}

type Person struct {
	ID      PersonID          `json:"id"`
	Name    PersonName        `json:"name"`
	FineIDs []FineID          `json:"fineIds"`
	SignIn  *SignInProperties `json:"signInData,omitempty"`
}

func (p Person) Validate() error {
	if err := requireID("person id", p.ID); err != nil {
		return err
	}
	if p.Name.First == "" {
		return invalidf("person first name is required")
	}
	return nil
}

func (p Person) IsSignedIn() bool {
	return p.SignIn != nil
}

// AddFine appends the fine id unless the person already owns it.
func (p *Person) AddFine(id FineID) {
	for _, f := range p.FineIDs {
		if f == id {
			return
		}
	}
	p.FineIDs = append(p.FineIDs, id)
}

func (p *Person) RemoveFine(id FineID) {
	kept := p.FineIDs[:0]
	for _, f := range p.FineIDs {
		if f != id {
			kept = append(kept, f)
		}
	}
	p.FineIDs = kept
}
