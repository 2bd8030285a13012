package models

import (
	"encoding/json"
	"fmt"
)

// Series names as they appear in the metrics JSON
const (
	SeriesDailyJobs      = "dailyJobs"
	SeriesAreas          = "areas"
	SeriesTopEmployers   = "topEmployers"
	SeriesEmploymentType = "employmentType"
	SeriesRegions        = "regions"
	SeriesTopOccupations = "topOccupations"
	SeriesWeekday        = "weekday"
	SeriesPositions      = "positionsBucket"
)

// Count is a (label, count) pair. It is encoded as a two-element JSON array.
type Count struct {
	Label string
	N     int
}

// MarshalJSON encodes the pair as [label, count].
func (c Count) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Label, c.N})
}

// UnmarshalJSON decodes a [label, count] array.
func (c *Count) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("count: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Label); err != nil {
		return fmt.Errorf("count label: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.N); err != nil {
		return fmt.Errorf("count value: %w", err)
	}
	return nil
}

// Totals holds the scalar totals of a metrics bundle.
type Totals struct {
	Jobs90d   int `json:"jobs90d"`
	Employers int `json:"employers"`
	Regions   int `json:"regions"`
}

// Metrics is the aggregate bundle served by the metrics endpoint.
type Metrics struct {
	Totals          Totals  `json:"totals"`
	DailyJobs       []Count `json:"dailyJobs"`
	Areas           []Count `json:"areas"`
	TopEmployers    []Count `json:"topEmployers"`
	EmploymentType  []Count `json:"employmentType"`
	Regions         []Count `json:"regions"`
	TopOccupations  []Count `json:"topOccupations"`
	Weekday         []Count `json:"weekday"`
	PositionsBucket []Count `json:"positionsBucket"`
}

// Series returns the named series, or false if the name is unknown.
func (m *Metrics) Series(name string) ([]Count, bool) {
	switch name {
	case SeriesDailyJobs:
		return m.DailyJobs, true
	case SeriesAreas:
		return m.Areas, true
	case SeriesTopEmployers:
		return m.TopEmployers, true
	case SeriesEmploymentType:
		return m.EmploymentType, true
	case SeriesRegions:
		return m.Regions, true
	case SeriesTopOccupations:
		return m.TopOccupations, true
	case SeriesWeekday:
		return m.Weekday, true
	case SeriesPositions:
		return m.PositionsBucket, true
	}
	return nil, false
}
