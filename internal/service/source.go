package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"source-manager-backend/internal/catalog"
	apperrors "source-manager-backend/internal/errors"
	"source-manager-backend/internal/logger"
)

// SourceService provides master-source business logic on top of the
// region-sharded catalog
type SourceService struct {
	catalog   *catalog.Catalog
	index     *IndexService
	validator *validator.Validate
	log       *logger.Logger
}

// NewSourceService creates a new SourceService. The index may be nil, in
// which case created and updated sources are simply not indexed.
func NewSourceService(cat *catalog.Catalog, index *IndexService, validator *validator.Validate) *SourceService {
	return &SourceService{
		catalog:   cat,
		index:     index,
		validator: validator,
		log:       logger.New().WithField("component", "sources"),
	}
}

// CreateSourceRequest represents the request to create a master source
type CreateSourceRequest struct {
	Region     string            `json:"region" validate:"required"`
	SourceType string            `json:"source_type" validate:"required"`
	Fields     map[string]string `json:"fields" validate:"required"`
}

// UpdateSourceRequest represents a partial update to a master source
type UpdateSourceRequest struct {
	Updates map[string]any `json:"updates" validate:"required"`
}

// RegionResponse describes one configured region
type RegionResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	SourceFile  string `json:"source_file"`
	Priority    int    `json:"priority"`
}

// Regions returns the configured regions in priority order
func (s *SourceService) Regions() []RegionResponse {
	mappings := s.catalog.Resolver().Regions()
	out := make([]RegionResponse, len(mappings))
	for i, m := range mappings {
		out[i] = RegionResponse{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Description: m.Description,
			SourceFile:  m.SourceFile,
			Priority:    m.Priority,
		}
	}
	return out
}

// ResolveRegion maps a project file path onto its owning region
func (s *SourceService) ResolveRegion(projectPath string) string {
	return s.catalog.Resolver().Resolve(projectPath)
}

// ListByRegion returns a region's sources in shard file order
func (s *SourceService) ListByRegion(region string) ([]*catalog.SourceRecord, error) {
	records, err := s.catalog.Sources(region)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*catalog.SourceRecord{}
	}
	return records, nil
}

// ListAll returns every source across all regions
func (s *SourceService) ListAll() ([]*catalog.SourceRecord, error) {
	records, err := s.catalog.AllSources()
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*catalog.SourceRecord{}
	}
	return records, nil
}

// Get finds a source by id across all regions
func (s *SourceService) Get(sourceID string) (*catalog.SourceRecord, error) {
	return s.catalog.Get(sourceID)
}

// Create validates the request and appends a new source to its region's
// shard. Indexing failures do not fail the create; the record is already
// durable in the shard and a rebuild will pick it up.
func (s *SourceService) Create(req *CreateSourceRequest) (*catalog.SourceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if !s.catalog.Resolver().Known(req.Region) {
		return nil, fmt.Errorf("region %s: %w", req.Region, apperrors.ErrRegionNotFound)
	}

	record, err := s.catalog.Create(req.Region, req.SourceType, req.Fields)
	if err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.IndexRecord(record); err != nil {
			s.log.WithError(err).WithField("source_id", record.ID).Warn("failed to index new source")
		}
	}
	return record, nil
}

// Update applies a partial update to a source and refreshes its index entry
func (s *SourceService) Update(sourceID string, req *UpdateSourceRequest) (*catalog.SourceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if err := s.catalog.Update(sourceID, req.Updates); err != nil {
		return nil, err
	}

	record, err := s.catalog.Get(sourceID)
	if err != nil {
		return nil, err
	}
	if s.index != nil {
		if err := s.index.IndexRecord(record); err != nil {
			s.log.WithError(err).WithField("source_id", sourceID).Warn("failed to reindex source")
		}
	}
	return record, nil
}
