package catalog

import "encoding/json"

// UsageRef is one entry of a source's used_in backlink list. It is a
// denormalized annotation maintained alongside project link lists, not a
// foreign key, and it can drift from them.
type UsageRef struct {
	ProjectID    string `json:"project_id"`
	ProjectTitle string `json:"project_title"`
	Notes        string `json:"notes"`
}

// SourceRecord is one master source. The record is exclusively owned by its
// region's shard file; projects hold only its id. Type-specific metadata
// lives in Fields and is flattened to the top level of the shard JSON.
type SourceRecord struct {
	ID         string
	Title      string
	SourceType string
	Region     string
	UsedIn     []UsageRef
	Fields     map[string]any
}

// reserved keys of the shard JSON that never belong to Fields
var recordKeys = map[string]bool{
	"id":          true,
	"title":       true,
	"source_type": true,
	"region":      true,
	"used_in":     true,
}

// MarshalJSON flattens Fields next to the fixed record keys.
func (r *SourceRecord) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Fields)+5)
	for k, v := range r.Fields {
		if !recordKeys[k] {
			doc[k] = v
		}
	}
	doc["id"] = r.ID
	doc["title"] = r.Title
	doc["source_type"] = r.SourceType
	doc["region"] = r.Region
	usedIn := r.UsedIn
	if usedIn == nil {
		usedIn = []UsageRef{}
	}
	doc["used_in"] = usedIn
	return json.Marshal(doc)
}

// UnmarshalJSON splits the fixed record keys back out and keeps everything
// else in Fields, so unknown type-specific keys round-trip.
func (r *SourceRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &r.ID); err != nil {
			return err
		}
	}
	if v, ok := raw["title"]; ok {
		if err := json.Unmarshal(v, &r.Title); err != nil {
			return err
		}
	}
	if v, ok := raw["source_type"]; ok {
		if err := json.Unmarshal(v, &r.SourceType); err != nil {
			return err
		}
	}
	if v, ok := raw["region"]; ok {
		if err := json.Unmarshal(v, &r.Region); err != nil {
			return err
		}
	}
	r.UsedIn = []UsageRef{}
	if v, ok := raw["used_in"]; ok {
		if err := json.Unmarshal(v, &r.UsedIn); err != nil {
			return err
		}
	}

	r.Fields = map[string]any{}
	for k, v := range raw {
		if recordKeys[k] {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return err
		}
		r.Fields[k] = value
	}
	return nil
}

// UsedBy reports whether the record already carries a backlink for the
// project id.
func (r *SourceRecord) UsedBy(projectID string) bool {
	for _, u := range r.UsedIn {
		if u.ProjectID == projectID {
			return true
		}
	}
	return false
}

// Field returns a type-specific field value as a string, or "".
func (r *SourceRecord) Field(name string) string {
	if v, ok := r.Fields[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
