package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Unknown is the label used wherever a source value is missing or blank.
const Unknown = "Unknown"

// Positions bucket labels
const (
	BucketOne     = "1"
	BucketFew     = "2–4"
	BucketSeveral = "5–9"
	BucketMany    = "10+"
)

// Posting is a job ad from the enriched feed. Label fields are normalized
// when the row is scanned, so they are never blank.
type Posting struct {
	ID             uuid.UUID
	PublishedAt    time.Time // zero when the source had no timestamp
	Employer       string
	EmploymentType string
	Region         string
	Occupation     string
	Positions      *int
}

// RawPosting is a job ad from the raw feed. Only the occupation area key is
// aggregated.
type RawPosting struct {
	PublishedOn time.Time
	AreaID      *string
}

// OccupationArea is one row of the occupation area lookup table.
type OccupationArea struct {
	ID    string
	Label string
}

// Label returns the first value that is non-blank after trimming, or Unknown.
func Label(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return Unknown
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PositionsBucket classifies a nullable positions count. Zero and negative
// counts are not branched on and land in Unknown with null.
func PositionsBucket(n *int) string {
	if n == nil {
		return Unknown
	}
	switch v := *n; {
	case v == 1:
		return BucketOne
	case v >= 2 && v <= 4:
		return BucketFew
	case v >= 5 && v <= 9:
		return BucketSeveral
	case v >= 10:
		return BucketMany
	default:
		return Unknown
	}
}

// DayLabel returns the UTC calendar date of t as YYYY-MM-DD.
func DayLabel(t time.Time) string {
	if t.IsZero() {
		return Unknown
	}
	return t.UTC().Format(time.DateOnly)
}

// WeekdayLabel returns the English three-letter weekday of t in UTC.
func WeekdayLabel(t time.Time) string {
	if t.IsZero() {
		return Unknown
	}
	return t.UTC().Format("Mon")
}
