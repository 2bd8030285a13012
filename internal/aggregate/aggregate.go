// Package aggregate turns fetched job postings into the dashboard metrics.
package aggregate

import (
	"strings"

	"jobmetrics/internal/models"
)

// Limits caps the length of the ranked series. Zero means unlimited.
type Limits struct {
	Employers   int `yaml:"employers"`
	Regions     int `yaml:"regions"`
	Occupations int `yaml:"occupations"`
}

// DefaultLimits returns the output sizes used by the dashboard.
func DefaultLimits() Limits {
	return Limits{
		Employers:   20,
		Regions:     25,
		Occupations: 30,
	}
}

// Build computes the metrics bundle. The two feeds are counted independently;
// areas resolves raw area keys to labels and falls back to the key itself.
func Build(postings []models.Posting, raw []models.RawPosting, areas map[string]string, limits Limits) *models.Metrics {
	var (
		daily       = NewTally()
		employers   = NewTally()
		types       = NewTally()
		regions     = NewTally()
		occupations = NewTally()
		weekdays    = NewTally()
		positions   = NewTally()
		areaCounts  = NewTally()
	)

	for _, p := range postings {
		daily.Add(models.DayLabel(p.PublishedAt))
		employers.Add(models.Label(p.Employer))
		types.Add(models.Label(p.EmploymentType))
		regions.Add(models.Label(p.Region))
		occupations.Add(models.Label(p.Occupation))
		weekdays.Add(models.WeekdayLabel(p.PublishedAt))
		positions.Add(models.PositionsBucket(p.Positions))
	}

	for _, r := range raw {
		if r.AreaID == nil {
			continue
		}
		areaCounts.Add(areaLabel(*r.AreaID, areas))
	}

	return &models.Metrics{
		Totals: models.Totals{
			Jobs90d:   len(postings),
			Employers: employers.Len(),
			Regions:   regions.Len(),
		},
		DailyJobs:       daily.ByLabel(),
		Areas:           areaCounts.Ranked(0),
		TopEmployers:    employers.Ranked(limits.Employers),
		EmploymentType:  types.Ranked(0),
		Regions:         regions.Ranked(limits.Regions),
		TopOccupations:  occupations.Ranked(limits.Occupations),
		Weekday:         weekdays.Entries(),
		PositionsBucket: positions.Ranked(0),
	}
}

func areaLabel(key string, areas map[string]string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.Unknown
	}
	if label := strings.TrimSpace(areas[key]); label != "" {
		return label
	}
	return key
}
