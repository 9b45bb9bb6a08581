package models

import (
	"encoding/json"
	"time"
)

// SourceIndexEntry is one master source flattened into the SQLite search
// index. The shard JSON remains authoritative; entries are rebuilt from it.
type SourceIndexEntry struct {
	ID         string          `json:"id" gorm:"primaryKey;size:36"`
	Region     string          `json:"region" gorm:"size:80;index"`
	SourceType string          `json:"source_type" gorm:"size:40;index"`
	Title      string          `json:"title" gorm:"size:250;index"`
	Authors    string          `json:"authors" gorm:"size:250"`
	Publisher  string          `json:"publisher" gorm:"size:250"`
	Year       string          `json:"publication_year" gorm:"size:8"`
	UsedCount  int             `json:"used_count"`
	Metadata   json.RawMessage `json:"metadata" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName overrides the GORM default
func (SourceIndexEntry) TableName() string {
	return "source_index"
}
