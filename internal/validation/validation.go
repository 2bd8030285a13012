package validation

import (
	"regexp"
	"strings"
)

// IdentifierPattern defines a plain SQL identifier: letters, digits and
// underscores, not starting with a digit.
var IdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MaxQueryLength bounds the free-text filter accepted by the export endpoint.
const MaxQueryLength = 100

// ValidateTableName checks a table name, optionally schema-qualified
// ("schema.table").
func ValidateTableName(name string) bool {
	if name == "" || len(name) > 127 {
		return false
	}
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if len(p) > 63 || !IdentifierPattern.MatchString(p) {
			return false
		}
	}
	return true
}

// NormalizeQuery trims and lowercases a filter so matching is case-insensitive.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ValidateQuery checks the length of a filter string.
func ValidateQuery(q string) (bool, string) {
	if len(q) > MaxQueryLength {
		return false, "query must be at most 100 characters"
	}
	return true, ""
}
