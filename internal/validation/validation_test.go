package validation_test

import (
	"testing"

	"source-manager-backend/internal/schema"
	"source-manager-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredFieldRejectsEmpty(t *testing.T) {
	field := &schema.FieldDefinition{Name: "project_title", Label: "Project Title", Required: true}

	for _, raw := range []string{"", "   ", "\t\n"} {
		ok, msg := validation.ValidateField(field, raw)
		assert.False(t, ok, "raw %q", raw)
		assert.Equal(t, "Project Title is required", msg)
	}
}

func TestOptionalEmptySkipsRules(t *testing.T) {
	field := &schema.FieldDefinition{
		Name:  "building_number",
		Label: "Building Number",
		Rules: []schema.Rule{{Kind: schema.RulePattern, Pattern: `^[A-Z]{2}\d{3}$`}},
	}

	ok, msg := validation.ValidateField(field, "")
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestBuildingNumberPattern(t *testing.T) {
	field := &schema.FieldDefinition{
		Name:  "building_number",
		Label: "Building Number",
		Rules: []schema.Rule{{Kind: schema.RulePattern, Pattern: `^[A-Z]{2}\d{3}$`}},
	}

	ok, _ := validation.ValidateField(field, "DC123")
	assert.True(t, ok)

	ok, msg := validation.ValidateField(field, "dc123")
	assert.False(t, ok)
	assert.Equal(t, "Building Number format is invalid", msg)
}

func TestPatternAnchorsAtStartOnly(t *testing.T) {
	// no trailing $: trailing garbage is accepted, a shifted match is not
	field := &schema.FieldDefinition{
		Name:  "code",
		Label: "Code",
		Rules: []schema.Rule{{Kind: schema.RulePattern, Pattern: `\d{4}`}},
	}

	ok, _ := validation.ValidateField(field, "2024-extra")
	assert.True(t, ok)

	ok, _ = validation.ValidateField(field, "x2024")
	assert.False(t, ok)
}

func TestLengthBoundsInclusive(t *testing.T) {
	field := &schema.FieldDefinition{
		Name:  "notes",
		Label: "Notes",
		Rules: []schema.Rule{
			{Kind: schema.RuleMinLength, Length: 3},
			{Kind: schema.RuleMaxLength, Length: 5},
		},
	}

	cases := []struct {
		raw   string
		valid bool
		msg   string
	}{
		{"ab", false, "Notes must be at least 3 characters"},
		{"abc", true, ""},
		{"abcde", true, ""},
		{"abcdef", false, "Notes must be no more than 5 characters"},
	}
	for _, tc := range cases {
		ok, msg := validation.ValidateField(field, tc.raw)
		assert.Equal(t, tc.valid, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.msg, msg, "raw %q", tc.raw)
	}
}

func TestValueBounds(t *testing.T) {
	field := &schema.FieldDefinition{
		Name:  "publication_year",
		Label: "Year",
		Kind:  schema.FieldNumber,
		Rules: []schema.Rule{
			{Kind: schema.RuleMinValue, Value: 1000},
			{Kind: schema.RuleMaxValue, Value: 9999},
		},
	}

	ok, _ := validation.ValidateField(field, "2023")
	assert.True(t, ok)

	// bounds are inclusive
	ok, _ = validation.ValidateField(field, "1000")
	assert.True(t, ok)
	ok, _ = validation.ValidateField(field, "9999")
	assert.True(t, ok)

	ok, msg := validation.ValidateField(field, "999")
	assert.False(t, ok)
	assert.Equal(t, "Year must be at least 1000", msg)

	ok, msg = validation.ValidateField(field, "10000")
	assert.False(t, ok)
	assert.Equal(t, "Year must be no more than 9999", msg)

	ok, msg = validation.ValidateField(field, "next year")
	assert.False(t, ok)
	assert.Equal(t, "Year must be a valid number", msg)
}

func TestRulesShortCircuitInDeclarationOrder(t *testing.T) {
	field := &schema.FieldDefinition{
		Name:  "ident",
		Label: "Identifier",
		Rules: []schema.Rule{
			{Kind: schema.RulePattern, Pattern: `^[A-Z]+$`},
			{Kind: schema.RuleMinLength, Length: 10},
		},
	}

	// both rules fail; only the first rule's message is reported
	ok, msg := validation.ValidateField(field, "abc")
	assert.False(t, ok)
	assert.Equal(t, "Identifier format is invalid", msg)

	// pattern passes, second rule now reports
	ok, msg = validation.ValidateField(field, "ABC")
	assert.False(t, ok)
	assert.Equal(t, "Identifier must be at least 10 characters", msg)
}

func TestValidateFormAccumulatesAcrossFields(t *testing.T) {
	s := schema.GetProjectType("CCR")
	require.NotNil(t, s)

	// missing keys are treated as "", so every required field reports
	ok, messages := validation.ValidateForm(s, map[string]string{
		"building_number": "dc123",
	})
	assert.False(t, ok)
	assert.Contains(t, messages, "Project Title is required")
	assert.Contains(t, messages, "Facility Number is required")
	assert.Contains(t, messages, "Building Number format is invalid")
	assert.GreaterOrEqual(t, len(messages), 3)
}

func TestValidateFormAllValid(t *testing.T) {
	s := schema.GetProjectType("CCR")
	require.NotNil(t, s)

	ok, messages := validation.ValidateForm(s, map[string]string{
		"project_title":   "North Facility Change",
		"facility_number": "1234567890",
		"building_number": "DC123",
		"suffix":          "ABC123",
		"facility_name":   "North Plant",
		"request_year":    "2024",
	})
	assert.True(t, ok)
	assert.Empty(t, messages)
}
