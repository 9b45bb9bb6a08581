package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"source-manager-backend/internal/catalog"
	"source-manager-backend/internal/config"
	apperrors "source-manager-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	resolver := catalog.NewResolver(config.DefaultRegionMappings())
	return catalog.New(t.TempDir(), resolver)
}

func bookFields(title string) map[string]string {
	return map[string]string{
		"title":            title,
		"authors":          "Smith, J.",
		"publication_year": "1981",
		"publisher":        "Wiley",
	}
}

func TestCreateSourceAndLoadShard(t *testing.T) {
	c := newTestCatalog(t)

	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "ROW", record.Region)
	assert.Equal(t, "Soil Mechanics - 1981", record.Title)

	shard, err := c.LoadShard("ROW")
	require.NoError(t, err)
	require.Contains(t, shard, record.ID)
	assert.Equal(t, "Smith, J.", shard[record.ID].Field("authors"))
}

func TestCreateInvalidatesShardCache(t *testing.T) {
	c := newTestCatalog(t)

	// prime the cache with the empty shard
	shard, err := c.LoadShard("ROW")
	require.NoError(t, err)
	assert.Empty(t, shard)

	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)

	// no explicit re-read call: the write must have dropped the cache entry
	shard, err = c.LoadShard("ROW")
	require.NoError(t, err)
	assert.Contains(t, shard, record.ID)
}

func TestLoadShardServesCacheUntilWrite(t *testing.T) {
	dir := t.TempDir()
	c := catalog.New(dir, catalog.NewResolver(config.DefaultRegionMappings()))

	record, err := c.Create("ROW", "website", map[string]string{
		"title": "USGS",
		"url":   "https://usgs.gov",
	})
	require.NoError(t, err)

	_, err = c.LoadShard("ROW")
	require.NoError(t, err)

	// edit the file behind the catalog's back: cached map stays stale
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ROW_sources.json"),
		[]byte(`{"sources": []}`), 0o644))

	shard, err := c.LoadShard("ROW")
	require.NoError(t, err)
	assert.Contains(t, shard, record.ID, "external edits are invisible until the next catalog write")
}

func TestCreateUnknownSourceType(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Create("ROW", "vinyl", map[string]string{"title": "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateValidationFailure(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Create("ROW", "book", map[string]string{"authors": "Smith, J."})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Title is required")
}

func TestMissingShardFileIsEmpty(t *testing.T) {
	c := newTestCatalog(t)

	shard, err := c.LoadShard("Downtown")
	require.NoError(t, err)
	assert.Empty(t, shard)

	records, err := c.Sources("Downtown")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetScansAllRegions(t *testing.T) {
	c := newTestCatalog(t)

	rowRecord, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)
	downtownRecord, err := c.Create("Downtown", "book", bookFields("Steel Design"))
	require.NoError(t, err)

	got, err := c.Get(downtownRecord.ID)
	require.NoError(t, err)
	assert.Equal(t, "Downtown", got.Region)

	got, err = c.Get(rowRecord.ID)
	require.NoError(t, err)
	assert.Equal(t, "ROW", got.Region)

	_, err = c.Get("no-such-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateRewritesOwnRegionOnly(t *testing.T) {
	dir := t.TempDir()
	c := catalog.New(dir, catalog.NewResolver(config.DefaultRegionMappings()))

	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)
	_, err = c.Create("Downtown", "book", bookFields("Steel Design"))
	require.NoError(t, err)

	downtownBefore, err := os.ReadFile(filepath.Join(dir, "Downtown_sources.json"))
	require.NoError(t, err)

	err = c.Update(record.ID, map[string]any{
		"publisher": "CRC Press",
		"title":     "Soil Mechanics, 2nd Ed.",
	})
	require.NoError(t, err)

	got, err := c.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "CRC Press", got.Field("publisher"))
	assert.Equal(t, "Soil Mechanics, 2nd Ed.", got.Title)

	downtownAfter, err := os.ReadFile(filepath.Join(dir, "Downtown_sources.json"))
	require.NoError(t, err)
	assert.Equal(t, downtownBefore, downtownAfter, "other region shards stay untouched")
}

func TestUpdateUnknownSource(t *testing.T) {
	c := newTestCatalog(t)
	err := c.Update("missing", map[string]any{"title": "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateNeverMovesRecordBetweenRegions(t *testing.T) {
	c := newTestCatalog(t)
	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)

	require.NoError(t, c.Update(record.ID, map[string]any{"region": "Downtown"}))

	got, err := c.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "ROW", got.Region, "shard membership is fixed at creation")
}

func TestUsageBacklinksAcrossTwoProjects(t *testing.T) {
	c := newTestCatalog(t)
	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)

	require.NoError(t, c.AddUsage(record.ID, "proj-a", "Project A", "bearing capacity"))
	require.NoError(t, c.AddUsage(record.ID, "proj-b", "Project B", "settlement"))

	got, err := c.Get(record.ID)
	require.NoError(t, err)
	require.Len(t, got.UsedIn, 2)
	assert.Equal(t, "bearing capacity", got.UsedIn[0].Notes)
	assert.Equal(t, "settlement", got.UsedIn[1].Notes)
}

func TestAddUsageDedupesByProjectID(t *testing.T) {
	c := newTestCatalog(t)
	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)

	require.NoError(t, c.AddUsage(record.ID, "proj-a", "Project A", "first"))
	require.NoError(t, c.AddUsage(record.ID, "proj-a", "Project A", "second"))

	got, err := c.Get(record.ID)
	require.NoError(t, err)
	require.Len(t, got.UsedIn, 1)
	// the original notes win; the duplicate add is silently skipped
	assert.Equal(t, "first", got.UsedIn[0].Notes)
}

func TestRemoveUsage(t *testing.T) {
	c := newTestCatalog(t)
	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)

	require.NoError(t, c.AddUsage(record.ID, "proj-a", "Project A", ""))
	require.NoError(t, c.RemoveUsage(record.ID, "proj-a"))

	got, err := c.Get(record.ID)
	require.NoError(t, err)
	assert.Empty(t, got.UsedIn)

	// removing again is a no-op
	require.NoError(t, c.RemoveUsage(record.ID, "proj-a"))
}

func TestShardFileShape(t *testing.T) {
	dir := t.TempDir()
	c := catalog.New(dir, catalog.NewResolver(config.DefaultRegionMappings()))

	record, err := c.Create("ROW", "book", bookFields("Soil Mechanics"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "ROW_sources.json"))
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc["sources"], 1)

	entry := doc["sources"][0]
	assert.Equal(t, record.ID, entry["id"])
	assert.Equal(t, "book", entry["source_type"])
	assert.Equal(t, "ROW", entry["region"])
	// type-specific fields are flattened to the top level
	assert.Equal(t, "Smith, J.", entry["authors"])
	assert.NotNil(t, entry["used_in"])
}

func TestAllSourcesSpansRegions(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Create("ROW", "book", bookFields("A"))
	require.NoError(t, err)
	_, err = c.Create("Downtown", "book", bookFields("B"))
	require.NoError(t, err)

	all, err := c.AllSources()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
