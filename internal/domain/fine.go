package domain

import "time"

type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

func (i Importance) valid() bool {
	return i == ImportanceHigh || i == ImportanceMedium || i == ImportanceLow
}

type PayedState string

const (
	Payed    PayedState = "payed"
	NotPayed PayedState = "notPayed"
)

func (s PayedState) valid() bool {
	return s == Payed || s == NotPayed
}

type Fine struct {
	ID         FineID     `json:"id"`
	PersonID   PersonID   `json:"personId"`
	PayedState PayedState `json:"payedState"`
	Date       time.Time  `json:"date"`
	Reason     string     `json:"reason"`
	Amount     Amount     `json:"amount"`
	Importance Importance `json:"importance"`
}

func (f Fine) Validate() error {
	if err := requireID("fine id", f.ID); err != nil {
		return err
	}
	if err := requireID("person id", f.PersonID); err != nil {
		return err
	}
	if !f.PayedState.valid() {
		return invalidf("unknown payed state %q", string(f.PayedState))
	}
	if f.Reason == "" {
		return invalidf("fine reason is required")
	}
	if f.Amount < 0 {
		return invalidf("fine amount must not be negative")
	}
	if !f.Importance.valid() {
		return invalidf("unknown importance %q", string(f.Importance))
	}
	return nil
}

type CountUnit string

const (
	CountUnitMinute CountUnit = "minute"
	CountUnitDay    CountUnit = "day"
	CountUnitItem   CountUnit = "item"
)

// TemplateCounts makes a template's amount apply per counted item.
type TemplateCounts struct {
	Unit     CountUnit `json:"unit"`
	MaxCount *int      `json:"maxCount,omitempty"`
}

type FineTemplate struct {
	ID         FineTemplateID  `json:"id"`
	Reason     string          `json:"reason"`
	Amount     Amount          `json:"amount"`
	Importance Importance      `json:"importance"`
	Counts     *TemplateCounts `json:"counts,omitempty"`
}

func (t FineTemplate) Validate() error {
	if err := requireID("fine template id", t.ID); err != nil {
		return err
	}
	if t.Reason == "" {
		return invalidf("fine template reason is required")
	}
	if t.Amount < 0 {
		return invalidf("fine template amount must not be negative")
	}
	if !t.Importance.valid() {
		return invalidf("unknown importance %q", string(t.Importance))
	}
	if t.Counts != nil {
		switch t.Counts.Unit {
		case CountUnitMinute, CountUnitDay, CountUnitItem:
		default:
			return invalidf("unknown count item %q", string(t.Counts.Unit))
		}
		if t.Counts.MaxCount != nil && *t.Counts.MaxCount < 1 {
			return invalidf("max count must be positive")
		}
	}
	return nil
}
