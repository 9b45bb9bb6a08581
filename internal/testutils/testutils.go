package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"source-manager-backend/internal/catalog"
	"source-manager-backend/internal/config"
	"source-manager-backend/internal/database"
)

// SetupTestDB opens a throwaway SQLite database for a single test
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "index.db")
	db, err := database.Initialize(path, &database.Options{AutoMigrate: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

// SetupLibrary creates temporary projects and master-sources directories
// and returns a config pointing at them
func SetupLibrary(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		Environment:      "development",
		Port:             "7010",
		LogLevel:         "error",
		ProjectsDir:      filepath.Join(root, "Projects"),
		MasterSourcesDir: filepath.Join(root, "MasterSources"),
		IndexDBPath:      filepath.Join(root, "MasterSources", "source_index.db"),
		JWTSecret:        "test-secret",
		AdminPasscode:    "test-passcode",
		TokenTTLMin:      480,
	}
	if err := os.MkdirAll(cfg.ProjectsDir, 0o755); err != nil {
		t.Fatalf("failed to create projects dir: %v", err)
	}
	if err := os.MkdirAll(cfg.MasterSourcesDir, 0o755); err != nil {
		t.Fatalf("failed to create master sources dir: %v", err)
	}
	return cfg
}

// WriteShard writes a region shard file with the given records
func WriteShard(t *testing.T, dir, file string, records []map[string]any) {
	t.Helper()

	doc := map[string]any{"sources": records}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		t.Fatalf("failed to marshal shard: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
		t.Fatalf("failed to write shard: %v", err)
	}
}

// NewCatalog builds a catalog over the config's master sources directory
// using the default region mappings
func NewCatalog(t *testing.T, cfg *config.Config) *catalog.Catalog {
	t.Helper()

	resolver := catalog.NewResolver(config.DefaultRegionMappings())
	return catalog.New(cfg.MasterSourcesDir, resolver)
}
