package schema_test

import (
	"testing"

	"source-manager-backend/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProjectTypeUnknownCode(t *testing.T) {
	assert.Nil(t, schema.GetProjectType("BOGUS"))
	assert.Nil(t, schema.GetProjectType(""))
}

func TestGetProjectTypeKnownCodes(t *testing.T) {
	for _, code := range []string{"CCR", "GSC", "STD", "FCR", "COM", "CRS", "OTH"} {
		s := schema.GetProjectType(code)
		require.NotNil(t, s, "project type %s", code)
		assert.Equal(t, code, s.Code)
		assert.NotEmpty(t, s.DisplayName)
		assert.NotEmpty(t, s.FilenamePattern)
		assert.NotEmpty(t, s.Fields)
	}
}

func TestCCRSchemaFields(t *testing.T) {
	ccr := schema.GetProjectType("CCR")
	require.NotNil(t, ccr)

	facility := ccr.Field("facility_number")
	require.NotNil(t, facility)
	assert.True(t, facility.Required)
	require.Len(t, facility.Rules, 1)
	assert.Equal(t, schema.RulePattern, facility.Rules[0].Kind)
	assert.Equal(t, `^\d{10}$`, facility.Rules[0].Pattern)

	building := ccr.Field("building_number")
	require.NotNil(t, building)
	assert.Equal(t, `^[A-Z]{2}\d{3}$`, building.Rules[0].Pattern)

	assert.Nil(t, ccr.Field("no_such_field"))
}

func TestFieldsSortedStable(t *testing.T) {
	s := &schema.TypeSchema{
		Code: "TST",
		Fields: []schema.FieldDefinition{
			{Name: "c", Order: 2},
			{Name: "a", Order: 1},
			{Name: "b", Order: 1},
			{Name: "d", Order: 0},
		},
	}

	sorted := schema.FieldsSorted(s)
	names := make([]string, len(sorted))
	for i, f := range sorted {
		names[i] = f.Name
	}

	// ties on Order keep declaration order: a before b
	assert.Equal(t, []string{"d", "a", "b", "c"}, names)
	// the schema itself is untouched
	assert.Equal(t, "c", s.Fields[0].Name)
}

func TestFieldsGroupedDefaultGroup(t *testing.T) {
	s := &schema.TypeSchema{
		Code: "TST",
		Fields: []schema.FieldDefinition{
			{Name: "grouped", Group: "Facility Information", Order: 0},
			{Name: "loose", Order: 1},
		},
	}

	grouped := schema.FieldsGrouped(s)
	require.Contains(t, grouped, schema.DefaultGroup)
	require.Contains(t, grouped, "Facility Information")
	assert.Equal(t, "loose", grouped[schema.DefaultGroup][0].Name)
}

func TestFieldsGroupedPreservesOrderWithinGroup(t *testing.T) {
	ccr := schema.GetProjectType("CCR")
	grouped := schema.FieldsGrouped(ccr)

	team := grouped["Team"]
	require.NotEmpty(t, team)
	for i := 1; i < len(team); i++ {
		assert.LessOrEqual(t, team[i-1].Order, team[i].Order)
	}
}

func TestGroupNamesFirstAppearanceOrder(t *testing.T) {
	ccr := schema.GetProjectType("CCR")
	names := schema.GroupNames(ccr)

	require.NotEmpty(t, names)
	assert.Equal(t, "Project Info", names[0])
}

func TestSourceTypesRegistry(t *testing.T) {
	for _, code := range []string{"book", "article", "website", "report", "standard", "manual", "image"} {
		s := schema.GetSourceType(code)
		require.NotNil(t, s, "source type %s", code)

		title := s.Field("title")
		require.NotNil(t, title, "source type %s must carry a title field", code)
		assert.True(t, title.Required)
	}

	assert.Nil(t, schema.GetSourceType("vinyl"))
}

func TestDropdownFieldsCarryOptions(t *testing.T) {
	for _, s := range schema.SourceTypes() {
		for _, f := range s.Fields {
			if f.Kind == schema.FieldDropdown {
				assert.NotEmpty(t, f.Options, "%s.%s", s.Code, f.Name)
			} else {
				assert.Empty(t, f.Options, "%s.%s", s.Code, f.Name)
			}
		}
	}
}

func TestProjectTypeDisplayNames(t *testing.T) {
	names := schema.ProjectTypeDisplayNames()
	assert.Equal(t, "Construction Change Request", names["CCR"])
	assert.Len(t, names, len(schema.ProjectTypes()))
}
