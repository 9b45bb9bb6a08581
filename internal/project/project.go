// Package project holds the Project aggregate and its JSON persistence.
// One project is one JSON document on disk; every mutation is followed by a
// full-document rewrite of that file. There is no cross-process locking and
// no atomic replacement: concurrent writers are unsupported by design.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "source-manager-backend/internal/errors"
)

// SourceLink ties a project to a master source record. The project never
// copies the record itself, only the id plus project-specific annotation.
type SourceLink struct {
	SourceID   string `json:"source_id"`
	Notes      string `json:"notes"`
	Declassify string `json:"declassify"`
	Order      int    `json:"order"`
}

// Project is the in-memory aggregate for one project file. FilePath is part
// of its identity: Save always rewrites that path.
type Project struct {
	ID       string
	Type     string
	Title    string
	FilePath string

	// Metadata carries all type-specific field values plus any ad hoc
	// extensions (slide_data, source_groups, ...). Unknown keys round-trip
	// losslessly.
	Metadata map[string]any

	// Sources is the ordered citation list; Order defines display sequence.
	Sources []SourceLink

	// OnDeck stages source ids considered for the project but not yet linked.
	OnDeck []string
}

// New creates an empty project aggregate.
func New(id, projectType, title, filePath string) *Project {
	return &Project{
		ID:       id,
		Type:     projectType,
		Title:    title,
		FilePath: filePath,
		Metadata: map[string]any{},
		Sources:  []SourceLink{},
		OnDeck:   []string{},
	}
}

// projectDoc is the persisted shape. Key names are the on-disk contract and
// must not change.
type projectDoc struct {
	ProjectID   string         `json:"project_id"`
	ProjectType string         `json:"project_type"`
	Title       string         `json:"title"`
	Metadata    map[string]any `json:"metadata"`
	Sources     []SourceLink   `json:"sources"`
	OnDeck      []string       `json:"on_deck_sources"`
}

// Load reads a project JSON file into an aggregate.
//
// A document that parses but lacks the keys only the current shape produces
// (a project_id/uuid and a sources/links array) is rejected as legacy
// format; a document that does not parse at all is rejected as corrupt.
// The two FormatError variants carry distinguishing messages so callers can
// tell migration-needed files from broken ones.
func Load(filePath string) (*Project, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("loading project %s: %w", filePath, apperrors.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("loading project %s: %w", filePath, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewFormatError(filePath, false, err.Error())
	}

	idRaw, hasID := raw["project_id"]
	if !hasID {
		idRaw, hasID = raw["uuid"]
	}
	sourcesRaw, hasSources := raw["sources"]
	if !hasSources {
		sourcesRaw, hasSources = raw["links"]
	}
	if !hasID || !hasSources {
		return nil, apperrors.NewFormatError(filePath, true,
			"document lacks project_id/uuid or sources/links")
	}

	p := &Project{
		FilePath: filePath,
		Metadata: map[string]any{},
		Sources:  []SourceLink{},
		OnDeck:   []string{},
	}
	if err := json.Unmarshal(idRaw, &p.ID); err != nil {
		return nil, apperrors.NewFormatError(filePath, false, "project_id is not a string")
	}
	if err := json.Unmarshal(sourcesRaw, &p.Sources); err != nil {
		return nil, apperrors.NewFormatError(filePath, false, "sources array is malformed")
	}
	if typeRaw, ok := raw["project_type"]; ok {
		if err := json.Unmarshal(typeRaw, &p.Type); err != nil {
			return nil, apperrors.NewFormatError(filePath, false, "project_type is not a string")
		}
	}
	if titleRaw, ok := raw["title"]; ok {
		if err := json.Unmarshal(titleRaw, &p.Title); err != nil {
			return nil, apperrors.NewFormatError(filePath, false, "title is not a string")
		}
	}
	if metaRaw, ok := raw["metadata"]; ok {
		if err := json.Unmarshal(metaRaw, &p.Metadata); err != nil {
			return nil, apperrors.NewFormatError(filePath, false, "metadata is not an object")
		}
	}
	if deckRaw, ok := raw["on_deck_sources"]; ok {
		if err := json.Unmarshal(deckRaw, &p.OnDeck); err != nil {
			return nil, apperrors.NewFormatError(filePath, false, "on_deck_sources is malformed")
		}
	}
	return p, nil
}

// Save serializes the aggregate to its own FilePath as indented JSON,
// overwriting the file in full.
func (p *Project) Save() error {
	doc := projectDoc{
		ProjectID:   p.ID,
		ProjectType: p.Type,
		Title:       p.Title,
		Metadata:    p.Metadata,
		Sources:     p.Sources,
		OnDeck:      p.OnDeck,
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	if doc.Sources == nil {
		doc.Sources = []SourceLink{}
	}
	if doc.OnDeck == nil {
		doc.OnDeck = []string{}
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("serializing project %s: %w", p.ID, err)
	}
	if err := os.MkdirAll(filepath.Dir(p.FilePath), 0o755); err != nil {
		return fmt.Errorf("saving project %s: %w", p.FilePath, err)
	}
	if err := os.WriteFile(p.FilePath, data, 0o644); err != nil {
		return fmt.Errorf("saving project %s: %w", p.FilePath, err)
	}
	return nil
}

// AddSource appends a link with the next Order value. Calling it twice with
// the same id produces two links: duplicate detection is deliberately left
// to callers, matching the existing call-site behavior.
func (p *Project) AddSource(sourceID, notes, declassify string) SourceLink {
	link := SourceLink{
		SourceID:   sourceID,
		Notes:      notes,
		Declassify: declassify,
		Order:      p.nextOrder(),
	}
	p.Sources = append(p.Sources, link)
	return link
}

func (p *Project) nextOrder() int {
	max := 0
	for _, l := range p.Sources {
		if l.Order > max {
			max = l.Order
		}
	}
	return max + 1
}

// RemoveSource drops every link and on-deck entry for the id. It returns
// whether anything was removed; a second call for the same id is a no-op.
func (p *Project) RemoveSource(sourceID string) bool {
	removed := false

	kept := p.Sources[:0]
	for _, l := range p.Sources {
		if l.SourceID == sourceID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	p.Sources = kept

	deck := p.OnDeck[:0]
	for _, id := range p.OnDeck {
		if id == sourceID {
			removed = true
			continue
		}
		deck = append(deck, id)
	}
	p.OnDeck = deck

	return removed
}

// Link returns the first link for the id, or nil.
func (p *Project) Link(sourceID string) *SourceLink {
	for i := range p.Sources {
		if p.Sources[i].SourceID == sourceID {
			return &p.Sources[i]
		}
	}
	return nil
}

// Stage puts a source id on deck. Staging an already-staged or
// already-linked source is skipped; the return reports whether the id was
// added.
func (p *Project) Stage(sourceID string) bool {
	if p.Link(sourceID) != nil {
		return false
	}
	for _, id := range p.OnDeck {
		if id == sourceID {
			return false
		}
	}
	p.OnDeck = append(p.OnDeck, sourceID)
	return true
}

// Unstage removes a source id from the on-deck list.
func (p *Project) Unstage(sourceID string) bool {
	for i, id := range p.OnDeck {
		if id == sourceID {
			p.OnDeck = append(p.OnDeck[:i], p.OnDeck[i+1:]...)
			return true
		}
	}
	return false
}

// SourceIDs returns every id referenced by the project, linked first, then
// on deck.
func (p *Project) SourceIDs() []string {
	ids := make([]string, 0, len(p.Sources)+len(p.OnDeck))
	for _, l := range p.Sources {
		ids = append(ids, l.SourceID)
	}
	ids = append(ids, p.OnDeck...)
	return ids
}
