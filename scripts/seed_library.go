package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"source-manager-backend/internal/catalog"
	"source-manager-backend/internal/config"
	"source-manager-backend/internal/database"
	"source-manager-backend/internal/repository"
	"source-manager-backend/internal/service"
)

// SourceData is one master source in the seed file
type SourceData struct {
	Region     string            `yaml:"region"`
	SourceType string            `yaml:"source_type"`
	Fields     map[string]string `yaml:"fields"`
}

// SeedFile is the top-level seed document
type SeedFile struct {
	Sources []SourceData `yaml:"sources"`
}

// Seeds the master source shards from a YAML file and rebuilds the search
// index. Usage: go run scripts/seed_library.go <seed.yaml>
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: seed_library <seed.yaml>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	mappings, err := config.LoadRegionMappings(cfg.RegionsFile)
	if err != nil {
		log.Fatalf("Failed to load region rules: %v", err)
	}
	cat := catalog.New(cfg.MasterSourcesDir, catalog.NewResolver(mappings))

	created := 0
	for _, s := range seed.Sources {
		record, err := cat.Create(s.Region, s.SourceType, s.Fields)
		if err != nil {
			log.Fatalf("Failed to create source %q: %v", s.Fields["title"], err)
		}
		fmt.Printf("created %s (%s/%s)\n", record.Title, s.Region, s.SourceType)
		created++
	}

	db, err := database.Initialize(cfg.IndexDBPath, nil)
	if err != nil {
		log.Fatalf("Failed to open index database: %v", err)
	}
	index := service.NewIndexService(repository.NewSourceIndexRepository(db), cat)
	result, err := index.Rebuild()
	if err != nil {
		log.Fatalf("Failed to rebuild index: %v", err)
	}

	fmt.Printf("seeded %d sources, indexed %d\n", created, result.Indexed)
}
