package naming_test

import (
	"testing"
	"time"

	"source-manager-backend/internal/naming"
	"source-manager-backend/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCCRFilename(t *testing.T) {
	ccr := schema.GetProjectType("CCR")
	require.NotNil(t, ccr)

	rendered, err := naming.Render(ccr.FilenamePattern, map[string]string{
		"facility_number": "1234567890",
		"building_number": "DC123",
		"suffix":          "ABC123",
		"request_year":    "2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "1234567890 - DC123 - CCR - 2024", rendered)
	assert.Equal(t, "1234567890 - DC123 - CCR - 2024.json", rendered+".json")
}

func TestRenderMissingField(t *testing.T) {
	_, err := naming.Render("{facility_number} - {building_number}", map[string]string{
		"facility_number": "1234567890",
	})
	require.Error(t, err)

	var missing *naming.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "building_number", missing.Field)
}

func TestRenderEmptyValueIsNotMissing(t *testing.T) {
	rendered, err := naming.Render("{a}-{b}", map[string]string{"a": "x", "b": ""})
	require.NoError(t, err)
	assert.Equal(t, "x-", rendered)
}

func TestRenderNoSanitization(t *testing.T) {
	rendered, err := naming.Render("{title}", map[string]string{"title": `a/b:c?`})
	require.NoError(t, err)
	assert.Equal(t, `a/b:c?`, rendered)
}

func TestRenderLeavesNonPlaceholderBracesAlone(t *testing.T) {
	rendered, err := naming.Render("literal {a} {not a token}", map[string]string{"a": "v"})
	require.NoError(t, err)
	assert.Equal(t, "literal v {not a token}", rendered)
}

func TestWithDerivedCurrentYear(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	merged := naming.WithDerived(map[string]string{"facility_number": "1234567890"}, now)
	assert.Equal(t, "2024", merged["current_year"])
	assert.Equal(t, "1234567890", merged["facility_number"])

	// caller-supplied value wins
	merged = naming.WithDerived(map[string]string{"current_year": "1999"}, now)
	assert.Equal(t, "1999", merged["current_year"])
}

func TestPlaceholders(t *testing.T) {
	names := naming.Placeholders("{facility_number} - {building_number} - CCR - {facility_number}")
	assert.Equal(t, []string{"facility_number", "building_number"}, names)
}

func TestSourceTitleSkipsEmptyParts(t *testing.T) {
	title, err := naming.SourceTitle("{title} - {publication_year}", map[string]string{
		"title":            "Soil Mechanics",
		"publication_year": "",
	})
	require.NoError(t, err)
	assert.Equal(t, "Soil Mechanics", title)

	title, err = naming.SourceTitle("{title} - {publication_year}", map[string]string{
		"title":            "Soil Mechanics",
		"publication_year": "1981",
	})
	require.NoError(t, err)
	assert.Equal(t, "Soil Mechanics - 1981", title)
}
