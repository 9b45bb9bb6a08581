package catalog

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"source-manager-backend/internal/config"
)

// DefaultRegion is the catch-all region used when no pattern matches.
const DefaultRegion = "General"

// Resolver maps a project's file path to its region by matching the
// configured, priority-ordered directory glob rules. Resolution is pure:
// no filesystem access.
type Resolver struct {
	mappings []config.RegionMapping // priority descending
}

// NewResolver builds a resolver over the given rules. Rules with equal
// priority keep their declaration order.
func NewResolver(mappings []config.RegionMapping) *Resolver {
	sorted := make([]config.RegionMapping, len(mappings))
	copy(sorted, mappings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Resolver{mappings: sorted}
}

// Resolve returns the region of the highest-priority rule whose pattern
// matches the project path, or DefaultRegion when nothing matches.
func (r *Resolver) Resolve(projectPath string) string {
	path := filepath.ToSlash(projectPath)
	for _, m := range r.mappings {
		for _, pattern := range m.Patterns {
			if ok, err := doublestar.Match(pattern, path); err == nil && ok {
				return m.Name
			}
		}
	}
	return DefaultRegion
}

// ShardFile returns the shard filename for a region. Regions absent from
// the configured rules use the {region}_sources.json convention.
func (r *Resolver) ShardFile(region string) string {
	for _, m := range r.mappings {
		if m.Name == region {
			return m.SourceFile
		}
	}
	return region + "_sources.json"
}

// Regions returns the configured rules in priority order.
func (r *Resolver) Regions() []config.RegionMapping {
	out := make([]config.RegionMapping, len(r.mappings))
	copy(out, r.mappings)
	return out
}

// Known reports whether a region name appears in the configured rules.
func (r *Resolver) Known(region string) bool {
	for _, m := range r.mappings {
		if m.Name == region {
			return true
		}
	}
	return false
}
