// Package schema holds the static field and type configuration that drives
// form validation, filename generation, and the shape of persisted metadata.
// Schemas are defined once at process start and never mutated.
package schema

import (
	"fmt"
	"sort"
)

// FieldKind identifies how a field is rendered and parsed
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldDropdown FieldKind = "dropdown"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldBoolean  FieldKind = "boolean"
)

// RuleKind identifies a validation rule attached to a field
type RuleKind string

const (
	RulePattern   RuleKind = "pattern"
	RuleMinLength RuleKind = "min_length"
	RuleMaxLength RuleKind = "max_length"
	RuleMinValue  RuleKind = "min_value"
	RuleMaxValue  RuleKind = "max_value"
)

// Rule is a single validation rule. Which parameter applies depends on Kind:
// Pattern for RulePattern, Length for the length rules, Value for the value
// rules. Rules on a field are evaluated in declaration order.
type Rule struct {
	Kind    RuleKind
	Pattern string
	Length  int
	Value   float64
}

// DefaultGroup is the layout group for fields that declare none.
const DefaultGroup = "Main"

// FieldDefinition describes one form field. Immutable after construction.
type FieldDefinition struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Hint     string
	Options  []string // dropdown choices, non-empty iff Kind == FieldDropdown
	Rules    []Rule
	Group    string
	Order    int
}

// TypeSchema is the declarative definition of one project type or source
// type: an ordered field list plus the filename/title template for it.
type TypeSchema struct {
	Code            string
	DisplayName     string
	Description     string
	Fields          []FieldDefinition
	FilenamePattern string
}

// Field returns the definition with the given name, or nil.
func (s *TypeSchema) Field(name string) *FieldDefinition {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// FieldsSorted returns the schema's fields ordered by Order ascending.
// Ties keep declaration order.
func FieldsSorted(s *TypeSchema) []FieldDefinition {
	fields := make([]FieldDefinition, len(s.Fields))
	copy(fields, s.Fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}

// FieldsGrouped buckets the schema's fields by layout group, each bucket
// ordered by Order. Fields without a group land in DefaultGroup.
func FieldsGrouped(s *TypeSchema) map[string][]FieldDefinition {
	grouped := make(map[string][]FieldDefinition)
	for _, f := range FieldsSorted(s) {
		group := f.Group
		if group == "" {
			group = DefaultGroup
		}
		grouped[group] = append(grouped[group], f)
	}
	return grouped
}

// GroupNames returns the schema's group names in first-appearance order
// (following field Order), for stable layout iteration.
func GroupNames(s *TypeSchema) []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range FieldsSorted(s) {
		group := f.Group
		if group == "" {
			group = DefaultGroup
		}
		if !seen[group] {
			seen[group] = true
			names = append(names, group)
		}
	}
	return names
}

// checkSchema enforces construction invariants on the static configuration.
func checkSchema(s *TypeSchema) error {
	seen := make(map[string]bool)
	for _, f := range s.Fields {
		if seen[f.Name] {
			return fmt.Errorf("schema %s: duplicate field %q", s.Code, f.Name)
		}
		seen[f.Name] = true
		if f.Kind == FieldDropdown && len(f.Options) == 0 {
			return fmt.Errorf("schema %s: dropdown field %q has no options", s.Code, f.Name)
		}
		if f.Kind != FieldDropdown && len(f.Options) != 0 {
			return fmt.Errorf("schema %s: field %q declares options but is not a dropdown", s.Code, f.Name)
		}
	}
	return nil
}
