// Package naming expands the {field_name} templates that type schemas use
// for canonical file names and document titles. Rendering is pure string
// substitution: callers validate field values first, and the folder-creation
// flow owns any filesystem-character stripping.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// MissingFieldError reports a template placeholder with no matching value.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("pattern references missing field %q", e.Field)
}

// Render substitutes every {field_name} placeholder in pattern with the
// corresponding entry from values. It fails with a *MissingFieldError on
// the first placeholder that has no value, so callers can name the absent
// field to the user.
func Render(pattern string, values map[string]string) (string, error) {
	var missing *MissingFieldError
	out := placeholderRe.ReplaceAllStringFunc(pattern, func(token string) string {
		name := token[1 : len(token)-1]
		value, ok := values[name]
		if !ok {
			if missing == nil {
				missing = &MissingFieldError{Field: name}
			}
			return token
		}
		return value
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}

// WithDerived returns a copy of values extended with the always-available
// derived fields (current_year), without overriding caller-supplied ones.
func WithDerived(values map[string]string, now time.Time) map[string]string {
	merged := make(map[string]string, len(values)+1)
	for k, v := range values {
		merged[k] = v
	}
	if _, ok := merged["current_year"]; !ok {
		merged["current_year"] = strconv.Itoa(now.Year())
	}
	return merged
}

// Placeholders lists the distinct field names a pattern references, in
// first-appearance order.
func Placeholders(pattern string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

// SourceTitle renders a source type's title pattern and collapses the
// separators left behind by empty optional fields.
func SourceTitle(pattern string, values map[string]string) (string, error) {
	rendered, err := Render(pattern, values)
	if err != nil {
		return "", err
	}
	parts := strings.Split(rendered, " - ")
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " - "), nil
}
