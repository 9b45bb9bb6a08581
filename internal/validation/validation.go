// Package validation evaluates raw form values against the rules a field
// declares in its schema. Results are pass/fail plus a display message,
// never errors: a failed rule is a recoverable condition for the caller.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"source-manager-backend/internal/schema"
)

// ValidateField checks one raw value against a field's rules.
//
// A required field must be non-empty after trimming. An empty optional
// field passes without evaluating any rule. Rules run in declaration order
// and evaluation stops at the first failure, so only the first failing
// rule's message is ever reported for a field.
func ValidateField(field *schema.FieldDefinition, raw string) (bool, string) {
	if field.Required && strings.TrimSpace(raw) == "" {
		return false, fmt.Sprintf("%s is required", field.Label)
	}
	if strings.TrimSpace(raw) == "" {
		return true, ""
	}

	for _, rule := range field.Rules {
		if ok, msg := applyRule(field, rule, raw); !ok {
			return false, msg
		}
	}
	return true, ""
}

func applyRule(field *schema.FieldDefinition, rule schema.Rule, raw string) (bool, string) {
	switch rule.Kind {
	case schema.RulePattern:
		if !matchesAtStart(rule.Pattern, raw) {
			return false, fmt.Sprintf("%s format is invalid", field.Label)
		}
	case schema.RuleMinLength:
		if utf8.RuneCountInString(raw) < rule.Length {
			return false, fmt.Sprintf("%s must be at least %d characters", field.Label, rule.Length)
		}
	case schema.RuleMaxLength:
		if utf8.RuneCountInString(raw) > rule.Length {
			return false, fmt.Sprintf("%s must be no more than %d characters", field.Label, rule.Length)
		}
	case schema.RuleMinValue:
		num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return false, fmt.Sprintf("%s must be a valid number", field.Label)
		}
		if num < rule.Value {
			return false, fmt.Sprintf("%s must be at least %g", field.Label, rule.Value)
		}
	case schema.RuleMaxValue:
		num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return false, fmt.Sprintf("%s must be a valid number", field.Label)
		}
		if num > rule.Value {
			return false, fmt.Sprintf("%s must be no more than %g", field.Label, rule.Value)
		}
	}
	return true, ""
}

// matchesAtStart mirrors Python's re.match: the pattern must match starting
// at the beginning of the value, but need not consume all of it.
func matchesAtStart(pattern, value string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		// an unparseable pattern in the static config can never pass
		return false
	}
	loc := re.FindStringIndex(value)
	return loc != nil && loc[0] == 0
}

// ValidateForm checks every field of a schema against the submitted values,
// using "" for keys the form did not supply. Unlike the per-field
// short-circuit, failures accumulate across fields so the caller can show
// the full list at once.
func ValidateForm(s *schema.TypeSchema, values map[string]string) (bool, []string) {
	var messages []string
	for i := range s.Fields {
		field := &s.Fields[i]
		if ok, msg := ValidateField(field, values[field.Name]); !ok {
			messages = append(messages, msg)
		}
	}
	return len(messages) == 0, messages
}
