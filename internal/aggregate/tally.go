package aggregate

import (
	"sort"

	"jobmetrics/internal/models"
)

// Tally counts labels while remembering the order they were first seen.
type Tally struct {
	index   map[string]int
	entries []models.Count
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{index: make(map[string]int)}
}

// Add increments the count for label.
func (t *Tally) Add(label string) {
	if i, ok := t.index[label]; ok {
		t.entries[i].N++
		return
	}
	t.index[label] = len(t.entries)
	t.entries = append(t.entries, models.Count{Label: label, N: 1})
}

// Len returns the number of distinct labels.
func (t *Tally) Len() int {
	return len(t.entries)
}

// Entries returns the counts in first-seen order.
func (t *Tally) Entries() []models.Count {
	out := make([]models.Count, len(t.entries))
	copy(out, t.entries)
	return out
}

// Ranked returns the counts sorted by descending count, ties in first-seen
// order, truncated to limit entries. A limit <= 0 keeps everything.
func (t *Tally) Ranked(limit int) []models.Count {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].N > out[j].N
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ByLabel returns the counts sorted ascending by label.
func (t *Tally) ByLabel() []models.Count {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}
