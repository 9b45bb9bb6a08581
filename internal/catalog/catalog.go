// Package catalog manages the region-sharded master source files. Each
// region owns one {region}_sources.json shard; reads go through an
// in-memory cache that is invalidated whenever the catalog itself writes
// the shard. External edits to a shard file are not detected until the next
// catalog write.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "source-manager-backend/internal/errors"
	"source-manager-backend/internal/logger"
	"source-manager-backend/internal/naming"
	"source-manager-backend/internal/schema"
	"source-manager-backend/internal/validation"
)

// Catalog is the region-sharded source store.
type Catalog struct {
	dir      string
	resolver *Resolver
	log      *logger.Logger

	mu    sync.Mutex
	cache map[string]map[string]*SourceRecord
}

// New creates a catalog over the master sources directory.
func New(dir string, resolver *Resolver) *Catalog {
	return &Catalog{
		dir:      dir,
		resolver: resolver,
		log:      logger.New().WithField("component", "catalog"),
		cache:    make(map[string]map[string]*SourceRecord),
	}
}

// Resolver exposes the catalog's region rules.
func (c *Catalog) Resolver() *Resolver {
	return c.resolver
}

func (c *Catalog) shardPath(region string) string {
	return filepath.Join(c.dir, c.resolver.ShardFile(region))
}

// shardDoc is the persisted shard shape.
type shardDoc struct {
	Sources []*SourceRecord `json:"sources"`
}

// readShard reads a shard file from disk, in list order. A missing file is
// an empty shard, not an error.
func (c *Catalog) readShard(region string) ([]*SourceRecord, error) {
	data, err := os.ReadFile(c.shardPath(region))
	if err != nil {
		if os.IsNotExist(err) {
			return []*SourceRecord{}, nil
		}
		return nil, fmt.Errorf("reading shard %s: %w", region, err)
	}
	var doc shardDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewFormatError(c.shardPath(region), false, err.Error())
	}
	if doc.Sources == nil {
		doc.Sources = []*SourceRecord{}
	}
	return doc.Sources, nil
}

// writeShard rewrites a region's whole shard file and drops its cache entry
// so the next read re-parses from disk.
func (c *Catalog) writeShard(region string, records []*SourceRecord) error {
	data, err := json.MarshalIndent(shardDoc{Sources: records}, "", "    ")
	if err != nil {
		return fmt.Errorf("serializing shard %s: %w", region, err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("writing shard %s: %w", region, err)
	}
	if err := os.WriteFile(c.shardPath(region), data, 0o644); err != nil {
		return fmt.Errorf("writing shard %s: %w", region, err)
	}

	c.mu.Lock()
	delete(c.cache, region)
	c.mu.Unlock()
	return nil
}

// LoadShard returns the region's records keyed by id. The first call per
// region reads the shard file; later calls serve the cached map until a
// write invalidates it.
func (c *Catalog) LoadShard(region string) (map[string]*SourceRecord, error) {
	c.mu.Lock()
	if cached, ok := c.cache[region]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	records, err := c.readShard(region)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*SourceRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	c.mu.Lock()
	c.cache[region] = byID
	c.mu.Unlock()
	return byID, nil
}

// Sources returns the region's records in shard file order.
func (c *Catalog) Sources(region string) ([]*SourceRecord, error) {
	// list order matters for display, so read the file rather than the map
	return c.readShard(region)
}

// regionNames returns every region with a shard on disk plus every
// configured region, deduplicated.
func (c *Catalog) regionNames() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, m := range c.resolver.Regions() {
		if !seen[m.Name] {
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	matches, err := filepath.Glob(filepath.Join(c.dir, "*_sources.json"))
	if err != nil {
		return nil, err
	}
	for _, path := range matches {
		region := strings.TrimSuffix(filepath.Base(path), "_sources.json")
		if !seen[region] {
			seen[region] = true
			names = append(names, region)
		}
	}
	return names, nil
}

// AllSources returns every record across all shards.
func (c *Catalog) AllSources() ([]*SourceRecord, error) {
	regions, err := c.regionNames()
	if err != nil {
		return nil, err
	}
	var all []*SourceRecord
	for _, region := range regions {
		records, err := c.readShard(region)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// Get finds a source by id. Ids do not encode their region, so the lookup
// checks cached shards first and then scans every region.
func (c *Catalog) Get(sourceID string) (*SourceRecord, error) {
	c.mu.Lock()
	for _, shard := range c.cache {
		if r, ok := shard[sourceID]; ok {
			c.mu.Unlock()
			return r, nil
		}
	}
	c.mu.Unlock()

	regions, err := c.regionNames()
	if err != nil {
		return nil, err
	}
	for _, region := range regions {
		shard, err := c.LoadShard(region)
		if err != nil {
			return nil, err
		}
		if r, ok := shard[sourceID]; ok {
			return r, nil
		}
	}
	return nil, fmt.Errorf("source %s: %w", sourceID, apperrors.ErrSourceNotFound)
}

// Create validates the field values against the source type's schema,
// assigns a fresh UUID, appends the record to the region's shard, and
// rewrites the shard file.
func (c *Catalog) Create(region, sourceType string, fields map[string]string) (*SourceRecord, error) {
	typeSchema := schema.GetSourceType(sourceType)
	if typeSchema == nil {
		return nil, fmt.Errorf("creating source: %w", apperrors.ErrSourceTypeNotFound)
	}

	if ok, messages := validation.ValidateForm(typeSchema, fields); !ok {
		return nil, apperrors.NewValidationError("", strings.Join(messages, "; "))
	}

	title, err := naming.SourceTitle(typeSchema.FilenamePattern, fieldsWithDefaults(typeSchema, fields))
	if err != nil {
		return nil, fmt.Errorf("creating source: %w", err)
	}

	record := &SourceRecord{
		ID:         uuid.New().String(),
		Title:      title,
		SourceType: sourceType,
		Region:     region,
		UsedIn:     []UsageRef{},
		Fields:     map[string]any{},
	}
	for name, value := range fields {
		if !recordKeys[name] {
			record.Fields[name] = value
		}
	}

	records, err := c.readShard(region)
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := c.writeShard(region, records); err != nil {
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"source_id": record.ID,
		"region":    region,
		"type":      sourceType,
	}).Info("created master source")
	return record, nil
}

// fieldsWithDefaults fills every schema field absent from values with "" so
// title rendering never trips over an optional field.
func fieldsWithDefaults(s *schema.TypeSchema, values map[string]string) map[string]string {
	merged := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		merged[f.Name] = ""
	}
	for k, v := range values {
		merged[k] = v
	}
	return merged
}

// Update locates the record across all regions, applies the field updates,
// and rewrites only the shard of the record's own region. The record's id
// and region are never updatable.
func (c *Catalog) Update(sourceID string, updates map[string]any) error {
	located, err := c.Get(sourceID)
	if err != nil {
		return err
	}
	region := located.Region
	if region == "" {
		return fmt.Errorf("updating source %s: %w", sourceID, apperrors.ErrRegionUnresolved)
	}

	records, err := c.readShard(region)
	if err != nil {
		return err
	}
	var target *SourceRecord
	for _, r := range records {
		if r.ID == sourceID {
			target = r
			break
		}
	}
	if target == nil {
		return fmt.Errorf("source %s missing from shard %s: %w", sourceID, region, apperrors.ErrSourceNotFound)
	}

	for key, value := range updates {
		switch key {
		case "id", "region", "used_in":
			// fixed at creation / catalog-managed
		case "title":
			if s, ok := value.(string); ok {
				target.Title = s
			}
		case "source_type":
			if s, ok := value.(string); ok {
				target.SourceType = s
			}
		default:
			if target.Fields == nil {
				target.Fields = map[string]any{}
			}
			target.Fields[key] = value
		}
	}

	return c.writeShard(region, records)
}

// AddUsage appends a used_in backlink for the project unless one with the
// same project id already exists. Unlike project-side links, backlinks are
// deduplicated here.
func (c *Catalog) AddUsage(sourceID, projectID, projectTitle, notes string) error {
	record, err := c.Get(sourceID)
	if err != nil {
		return err
	}
	region := record.Region
	if region == "" {
		return fmt.Errorf("source %s: %w", sourceID, apperrors.ErrRegionUnresolved)
	}

	records, err := c.readShard(region)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID != sourceID {
			continue
		}
		if r.UsedBy(projectID) {
			return nil
		}
		r.UsedIn = append(r.UsedIn, UsageRef{
			ProjectID:    projectID,
			ProjectTitle: projectTitle,
			Notes:        notes,
		})
		return c.writeShard(region, records)
	}
	return fmt.Errorf("source %s missing from shard %s: %w", sourceID, region, apperrors.ErrSourceNotFound)
}

// RemoveUsage drops every used_in backlink whose project id matches.
func (c *Catalog) RemoveUsage(sourceID, projectID string) error {
	record, err := c.Get(sourceID)
	if err != nil {
		return err
	}
	region := record.Region
	if region == "" {
		return fmt.Errorf("source %s: %w", sourceID, apperrors.ErrRegionUnresolved)
	}

	records, err := c.readShard(region)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID != sourceID {
			continue
		}
		kept := r.UsedIn[:0]
		for _, u := range r.UsedIn {
			if u.ProjectID != projectID {
				kept = append(kept, u)
			}
		}
		r.UsedIn = kept
		return c.writeShard(region, records)
	}
	return fmt.Errorf("source %s missing from shard %s: %w", sourceID, region, apperrors.ErrSourceNotFound)
}
