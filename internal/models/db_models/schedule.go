package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Place is one stop inside a day plan. Image stays empty on note drafts and
// is filled by the enrichment step on generated guides.
type Place struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type DayPlan struct {
	Day    int     `json:"day"`
	Places []Place `json:"places"`
}

// ItineraryDraft is the unvalidated shape straight out of the generator:
// day count and place fields may not match what was requested.
type ItineraryDraft struct {
	City string    `json:"city"`
	Data []DayPlan `json:"data"`
}

// Schedule is a []DayPlan persisted as jsonb.
type Schedule []DayPlan

func (s Schedule) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Schedule) Scan(value interface{}) error {
	if value == nil {
		*s = Schedule{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported schedule column type %T", value)
	}
}

// DraftColumn is an ItineraryDraft persisted as jsonb.
type DraftColumn ItineraryDraft

func (d DraftColumn) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DraftColumn) Scan(value interface{}) error {
	if value == nil {
		*d = DraftColumn{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported draft column type %T", value)
	}
}
