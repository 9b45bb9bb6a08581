package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RegionMapping maps project directory patterns to a regional source file.
// Patterns use path globs (** allowed); higher Priority wins on overlap.
type RegionMapping struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name"`
	Description string   `yaml:"description"`
	Patterns    []string `yaml:"patterns"`
	SourceFile  string   `yaml:"source_file"`
	Priority    int      `yaml:"priority"`
}

// DefaultRegionMappings returns the built-in region rules. "General" is the
// catch-all and must keep the lowest priority.
func DefaultRegionMappings() []RegionMapping {
	return []RegionMapping{
		{
			Name:        "ROW",
			DisplayName: "Right of Way",
			Description: "Sources specific to Right of Way projects",
			Patterns:    []string{"**/ROW/**", "**/Right_of_Way/**", "**/ROW_Projects/**"},
			SourceFile:  "ROW_sources.json",
			Priority:    10,
		},
		{
			Name:        "Downtown",
			DisplayName: "Downtown Projects",
			Description: "Urban and downtown development sources",
			Patterns:    []string{"**/Downtown/**", "**/Downtown_Projects/**", "**/Urban/**"},
			SourceFile:  "Downtown_sources.json",
			Priority:    8,
		},
		{
			Name:        "Regional",
			DisplayName: "Regional Standards",
			Description: "Regional standards and specifications",
			Patterns:    []string{"**/Regional/**", "**/Regional_Projects/**"},
			SourceFile:  "Regional_sources.json",
			Priority:    7,
		},
		{
			Name:        "Other",
			DisplayName: "Other Projects",
			Description: "General project sources",
			Patterns:    []string{"**/Other_Projects/**", "**/Other/**", "**/Miscellaneous/**"},
			SourceFile:  "Other_sources.json",
			Priority:    5,
		},
		{
			Name:        "General",
			DisplayName: "General Sources",
			Description: "Default sources for unclassified projects",
			Patterns:    []string{"**"},
			SourceFile:  "General_sources.json",
			Priority:    1,
		},
	}
}

type regionsFile struct {
	Regions []RegionMapping `yaml:"regions"`
}

// LoadRegionMappings reads region rules from the configured YAML file,
// falling back to the built-in defaults when no file is configured.
func LoadRegionMappings(path string) ([]RegionMapping, error) {
	if path == "" {
		return DefaultRegionMappings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading regions file: %w", err)
	}

	var parsed regionsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing regions file: %w", err)
	}
	if len(parsed.Regions) == 0 {
		return nil, fmt.Errorf("regions file %s defines no regions", path)
	}

	for i, r := range parsed.Regions {
		if r.Name == "" {
			return nil, fmt.Errorf("regions file %s: region %d has no name", path, i)
		}
		if len(r.Patterns) == 0 {
			return nil, fmt.Errorf("regions file %s: region %q has no patterns", path, r.Name)
		}
		if r.SourceFile == "" {
			parsed.Regions[i].SourceFile = r.Name + "_sources.json"
		}
	}

	return parsed.Regions, nil
}
