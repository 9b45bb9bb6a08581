package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"source-manager-backend/internal/catalog"
	"source-manager-backend/internal/config"
	apperrors "source-manager-backend/internal/errors"
	"source-manager-backend/internal/logger"
	"source-manager-backend/internal/naming"
	"source-manager-backend/internal/project"
	"source-manager-backend/internal/schema"
	"source-manager-backend/internal/validation"
)

// ProjectService provides project-related business logic
type ProjectService struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	validator *validator.Validate
	log       *logger.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(cfg *config.Config, cat *catalog.Catalog, validator *validator.Validate) *ProjectService {
	return &ProjectService{
		cfg:       cfg,
		catalog:   cat,
		validator: validator,
		log:       logger.New().WithField("component", "projects"),
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	ProjectType string            `json:"project_type" validate:"required"`
	Fields      map[string]string `json:"fields" validate:"required"`
	Subdir      string            `json:"subdir"`
}

// AttachSourceRequest represents the request to link a master source to a
// project
type AttachSourceRequest struct {
	SourceID   string `json:"source_id" validate:"required"`
	Notes      string `json:"notes"`
	Declassify string `json:"declassify"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ProjectID   string               `json:"project_id"`
	ProjectType string               `json:"project_type"`
	Title       string               `json:"title"`
	Path        string               `json:"path"`
	Region      string               `json:"region"`
	Metadata    map[string]any       `json:"metadata"`
	Sources     []project.SourceLink `json:"sources"`
	OnDeck      []string             `json:"on_deck_sources"`
}

// ProjectSummary represents one project file in a listing. Files that fail
// to load are still listed, with their status explaining why.
type ProjectSummary struct {
	Path        string `json:"path"`
	ProjectID   string `json:"project_id,omitempty"`
	ProjectType string `json:"project_type,omitempty"`
	Title       string `json:"title,omitempty"`
	Status      string `json:"status"`
}

// resolvePath joins a client-supplied relative path onto the projects
// directory, rejecting paths that escape it.
func (s *ProjectService) resolvePath(rel string) (string, error) {
	if rel == "" {
		return "", apperrors.NewValidationError("path", "path is required")
	}
	full := filepath.Join(s.cfg.ProjectsDir, filepath.Clean("/"+rel))
	root := filepath.Clean(s.cfg.ProjectsDir)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", apperrors.NewValidationError("path", "path escapes the projects directory")
	}
	return full, nil
}

func (s *ProjectService) relPath(full string) string {
	rel, err := filepath.Rel(s.cfg.ProjectsDir, full)
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}

func (s *ProjectService) toResponse(p *project.Project) *ProjectResponse {
	return &ProjectResponse{
		ProjectID:   p.ID,
		ProjectType: p.Type,
		Title:       p.Title,
		Path:        s.relPath(p.FilePath),
		Region:      s.catalog.Resolver().Resolve(p.FilePath),
		Metadata:    p.Metadata,
		Sources:     p.Sources,
		OnDeck:      p.OnDeck,
	}
}

// Create validates the form values against the project type's schema,
// derives the filename from the type's pattern, and writes a fresh project
// file. An existing file at the derived path is never overwritten.
func (s *ProjectService) Create(req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	typeSchema := schema.GetProjectType(req.ProjectType)
	if typeSchema == nil {
		return nil, fmt.Errorf("project type %s: %w", req.ProjectType, apperrors.ErrProjectTypeNotFound)
	}

	if ok, messages := validation.ValidateForm(typeSchema, req.Fields); !ok {
		return nil, apperrors.NewValidationError("", strings.Join(messages, "; "))
	}

	values := naming.WithDerived(req.Fields, time.Now())
	base, err := naming.Render(typeSchema.FilenamePattern, values)
	if err != nil {
		var missing *naming.MissingFieldError
		if errors.As(err, &missing) {
			return nil, apperrors.NewValidationError(missing.Field, "required for the project filename")
		}
		return nil, err
	}

	dir := s.cfg.ProjectsDir
	if req.Subdir != "" {
		resolved, err := s.resolvePath(req.Subdir)
		if err != nil {
			return nil, err
		}
		dir = resolved
	}
	path := filepath.Join(dir, base+".json")

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s: %w", s.relPath(path), apperrors.ErrProjectExists)
	}

	title := req.Fields["project_title"]
	if title == "" {
		title = base
	}

	p := project.New(uuid.New().String(), req.ProjectType, title, path)
	for name, value := range req.Fields {
		p.Metadata[name] = value
	}
	if err := p.Save(); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"project_id": p.ID,
		"type":       p.Type,
		"path":       s.relPath(path),
	}).Info("created project")
	return s.toResponse(p), nil
}

// Get loads one project file
func (s *ProjectService) Get(relPath string) (*ProjectResponse, error) {
	p, err := s.load(relPath)
	if err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *ProjectService) load(relPath string) (*project.Project, error) {
	full, err := s.resolvePath(relPath)
	if err != nil {
		return nil, err
	}
	return project.Load(full)
}

// List walks the projects directory and summarizes every JSON file found.
// Legacy and corrupt files are reported, not skipped, so the client can
// surface them.
func (s *ProjectService) List() ([]ProjectSummary, error) {
	var summaries []ProjectSummary
	err := filepath.WalkDir(s.cfg.ProjectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}

		summary := ProjectSummary{Path: s.relPath(path)}
		p, loadErr := project.Load(path)
		switch {
		case loadErr == nil:
			summary.ProjectID = p.ID
			summary.ProjectType = p.Type
			summary.Title = p.Title
			summary.Status = "ok"
		case apperrors.IsLegacyFormat(loadErr):
			summary.Status = "legacy"
		case apperrors.IsFormat(loadErr):
			summary.Status = "corrupt"
		default:
			return loadErr
		}
		summaries = append(summaries, summary)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []ProjectSummary{}, nil
		}
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if summaries == nil {
		summaries = []ProjectSummary{}
	}
	return summaries, nil
}

// UpdateMetadata merges the given keys into the project's metadata and
// rewrites the file. Existing keys not present in updates are preserved.
func (s *ProjectService) UpdateMetadata(relPath string, updates map[string]any) (*ProjectResponse, error) {
	p, err := s.load(relPath)
	if err != nil {
		return nil, err
	}
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	for key, value := range updates {
		p.Metadata[key] = value
	}
	if err := p.Save(); err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

// AttachSource links a master source to the project and records the
// backlink on the source. The project file is written first; if the
// backlink write then fails the link is already durable and the backlink is
// repaired on a later attach.
func (s *ProjectService) AttachSource(relPath string, req *AttachSourceRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	p, err := s.load(relPath)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.Get(req.SourceID); err != nil {
		return nil, err
	}

	p.Unstage(req.SourceID)
	p.AddSource(req.SourceID, req.Notes, req.Declassify)
	if err := p.Save(); err != nil {
		return nil, err
	}

	if err := s.catalog.AddUsage(req.SourceID, p.ID, p.Title, req.Notes); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"project_id": p.ID,
			"source_id":  req.SourceID,
		}).Error("source linked but backlink write failed")
		return nil, err
	}
	return s.toResponse(p), nil
}

// DetachSource removes every link and on-deck entry for the source and
// drops the backlink on the source record
func (s *ProjectService) DetachSource(relPath, sourceID string) (*ProjectResponse, error) {
	p, err := s.load(relPath)
	if err != nil {
		return nil, err
	}
	if !p.RemoveSource(sourceID) {
		return nil, fmt.Errorf("source %s: %w", sourceID, apperrors.ErrLinkNotFound)
	}
	if err := p.Save(); err != nil {
		return nil, err
	}

	if err := s.catalog.RemoveUsage(sourceID, p.ID); err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	return s.toResponse(p), nil
}

// StageSource puts a source on the project's on-deck list
func (s *ProjectService) StageSource(relPath, sourceID string) (*ProjectResponse, error) {
	p, err := s.load(relPath)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.Get(sourceID); err != nil {
		return nil, err
	}
	if !p.Stage(sourceID) {
		return nil, apperrors.ErrSourceAlreadyStaged
	}
	if err := p.Save(); err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

// UnstageSource removes a source from the on-deck list
func (s *ProjectService) UnstageSource(relPath, sourceID string) (*ProjectResponse, error) {
	p, err := s.load(relPath)
	if err != nil {
		return nil, err
	}
	if !p.Unstage(sourceID) {
		return nil, apperrors.ErrSourceNotStaged
	}
	if err := p.Save(); err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}
