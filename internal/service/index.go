package service

import (
	"encoding/json"
	"fmt"

	"source-manager-backend/internal/catalog"
	"source-manager-backend/internal/database/models"
	"source-manager-backend/internal/logger"
	"source-manager-backend/internal/repository"
)

// IndexService maintains the SQLite search index over the master source
// shards. The shards stay authoritative; the index is derived and can be
// rebuilt from them at any time.
type IndexService struct {
	repo    *repository.SourceIndexRepository
	catalog *catalog.Catalog
	log     *logger.Logger
}

// NewIndexService creates a new IndexService
func NewIndexService(repo *repository.SourceIndexRepository, cat *catalog.Catalog) *IndexService {
	return &IndexService{
		repo:    repo,
		catalog: cat,
		log:     logger.New().WithField("component", "index"),
	}
}

// SearchResponse represents a page of index search results
type SearchResponse struct {
	Results []models.SourceIndexEntry `json:"results"`
	Total   int64                     `json:"total"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
}

// RebuildResponse reports the outcome of a full index rebuild
type RebuildResponse struct {
	Indexed int `json:"indexed"`
}

func entryFromRecord(r *catalog.SourceRecord) (*models.SourceIndexEntry, error) {
	metadata, err := json.Marshal(r.Fields)
	if err != nil {
		return nil, fmt.Errorf("serializing source %s fields: %w", r.ID, err)
	}
	return &models.SourceIndexEntry{
		ID:         r.ID,
		Region:     r.Region,
		SourceType: r.SourceType,
		Title:      r.Title,
		Authors:    r.Field("authors"),
		Publisher:  r.Field("publisher"),
		Year:       r.Field("publication_year"),
		UsedCount:  len(r.UsedIn),
		Metadata:   metadata,
	}, nil
}

// IndexRecord upserts a single source into the index
func (s *IndexService) IndexRecord(r *catalog.SourceRecord) error {
	entry, err := entryFromRecord(r)
	if err != nil {
		return err
	}
	return s.repo.Upsert(entry)
}

// Rebuild drops the whole index and repopulates it from the shard files
func (s *IndexService) Rebuild() (*RebuildResponse, error) {
	records, err := s.catalog.AllSources()
	if err != nil {
		return nil, fmt.Errorf("reading shards for rebuild: %w", err)
	}

	counts, err := s.repo.CountByRegion()
	if err != nil {
		return nil, fmt.Errorf("inspecting index for rebuild: %w", err)
	}
	for region := range counts {
		if err := s.repo.DeleteByRegion(region); err != nil {
			return nil, fmt.Errorf("clearing index region %s: %w", region, err)
		}
	}

	for _, r := range records {
		if err := s.IndexRecord(r); err != nil {
			return nil, err
		}
	}

	s.log.WithField("indexed", len(records)).Info("rebuilt source index")
	return &RebuildResponse{Indexed: len(records)}, nil
}

// Search queries the index with optional region and source type filters
func (s *IndexService) Search(query, region, sourceType string, limit, offset int) (*SearchResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := s.repo.Search(query, region, sourceType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	if entries == nil {
		entries = []models.SourceIndexEntry{}
	}
	return &SearchResponse{
		Results: entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}
