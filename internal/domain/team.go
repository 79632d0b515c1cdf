package domain

// Team is created once by team.new. Its name is copied into each member's
// Membership when they join and is not kept in sync afterwards.
type Team struct {
	ID           TeamID  `json:"id"`
	Name         string  `json:"name"`
	PaypalMeLink *string `json:"paypalMeLink,omitempty"`
}

func (t Team) Validate() error {
	if err := requireID("team id", t.ID); err != nil {
		return err
	}
	if t.Name == "" {
		return invalidf("team name is required")
	}
	if t.PaypalMeLink != nil && *t.PaypalMeLink == "" {
		return invalidf("paypal.me link must not be empty")
	}
	return nil
}
