package schema

// Master registry of every project field. Project type schemas pick from
// this list by name so a field keeps one definition across all types.
var projectFields = map[string]FieldDefinition{
	"project_title": {
		Name:     "project_title",
		Label:    "Project Title",
		Kind:     FieldText,
		Required: true,
		Group:    "Project Info",
		Order:    0,
	},
	"document_title": {
		Name:     "document_title",
		Label:    "Document Title",
		Kind:     FieldText,
		Required: true,
		Group:    "Project Info",
		Order:    1,
	},
	"facility_number": {
		Name:     "facility_number",
		Label:    "Facility Number",
		Kind:     FieldText,
		Required: true,
		Hint:     "10-digit surrogate key",
		Rules:    []Rule{{Kind: RulePattern, Pattern: `^\d{10}$`}},
		Group:    "Facility Information",
		Order:    2,
	},
	"building_number": {
		Name:  "building_number",
		Label: "Building Number",
		Kind:  FieldText,
		Hint:  "e.g., DC123",
		Rules: []Rule{{Kind: RulePattern, Pattern: `^[A-Z]{2}\d{3}$`}},
		Group: "Facility Information",
		Order: 3,
	},
	"suffix": {
		Name:  "suffix",
		Label: "Suffix",
		Kind:  FieldText,
		Hint:  "e.g., ABC123",
		Rules: []Rule{{Kind: RulePattern, Pattern: `^[A-Z]{3}\d{3}$`}},
		Group: "Facility Information",
		Order: 4,
	},
	"facility_name": {
		Name:     "facility_name",
		Label:    "Facility Name",
		Kind:     FieldText,
		Required: true,
		Group:    "Facility Information",
		Order:    5,
	},
	"request_year": {
		Name:     "request_year",
		Label:    "Request Year",
		Kind:     FieldText,
		Required: true,
		Hint:     "YYYY",
		Rules:    []Rule{{Kind: RulePattern, Pattern: `^\d{4}$`}},
		Group:    "Project Info",
		Order:    6,
	},
	"requestor": {
		Name:  "requestor",
		Label: "Requestor",
		Kind:  FieldText,
		Group: "Project Info",
		Order: 7,
	},
	"relook": {
		Name:  "relook",
		Label: "Relook",
		Kind:  FieldBoolean,
		Group: "Project Info",
		Order: 8,
	},
	"engineer": {
		Name:  "engineer",
		Label: "Engineer",
		Kind:  FieldText,
		Group: "Team",
		Order: 9,
	},
	"imagery": {
		Name:  "imagery",
		Label: "Imagery Analyst",
		Kind:  FieldText,
		Group: "Team",
		Order: 10,
	},
	"analyst": {
		Name:  "analyst",
		Label: "All-Source Analyst",
		Kind:  FieldText,
		Group: "Team",
		Order: 11,
	},
	"geologist": {
		Name:  "geologist",
		Label: "Geologist",
		Kind:  FieldText,
		Group: "Team",
		Order: 12,
	},
	"reviewer": {
		Name:  "reviewer",
		Label: "Senior Reviewer",
		Kind:  FieldText,
		Group: "Team",
		Order: 13,
	},
	"notes": {
		Name:  "notes",
		Label: "Notes",
		Kind:  FieldTextarea,
		Group: "Project Info",
		Order: 14,
	},
}

type projectTypeDef struct {
	code            string
	displayName     string
	description     string
	filenamePattern string
	fieldNames      []string
}

var projectTypeDefs = []projectTypeDef{
	{
		code:            "CCR",
		displayName:     "Construction Change Request",
		description:     "Construction Change Request projects",
		filenamePattern: "{facility_number} - {building_number} - CCR - {request_year}",
		fieldNames: []string{
			"project_title", "facility_number", "building_number", "suffix",
			"facility_name", "request_year", "requestor", "relook",
			"engineer", "imagery", "analyst", "geologist", "reviewer",
		},
	},
	{
		code:            "GSC",
		displayName:     "Geotechnical Site Characterization",
		description:     "Geotechnical Site Characterization projects",
		filenamePattern: "{facility_number} - GSC - {current_year}",
		fieldNames: []string{
			"project_title", "facility_number", "building_number",
			"facility_name", "request_year", "requestor", "relook",
			"geologist", "imagery", "reviewer",
		},
	},
	{
		code:            "STD",
		displayName:     "Standard Design",
		description:     "Standard Design projects",
		filenamePattern: "{facility_number} - {building_number} - STD - {current_year}",
		fieldNames: []string{
			"project_title", "facility_name", "facility_number",
			"building_number", "suffix", "request_year", "requestor",
			"relook", "engineer", "imagery", "analyst", "geologist",
			"reviewer",
		},
	},
	{
		code:            "FCR",
		displayName:     "Facility Change Request",
		description:     "Facility Change Request projects",
		filenamePattern: "{facility_number} - {building_number} - FCR - {current_year}",
		fieldNames: []string{
			"project_title", "facility_number", "building_number", "suffix",
			"facility_name", "request_year", "requestor", "relook",
			"engineer", "imagery", "analyst", "geologist", "reviewer",
		},
	},
	{
		code:            "COM",
		displayName:     "Commissioning",
		description:     "Commissioning projects",
		filenamePattern: "{facility_number} - COM - {current_year}",
		fieldNames: []string{
			"project_title", "facility_number", "building_number",
			"facility_name", "requestor", "engineer", "imagery", "analyst",
			"geologist", "reviewer",
		},
	},
	{
		code:            "CRS",
		displayName:     "Corrective Action",
		description:     "Corrective Action projects",
		filenamePattern: "{facility_number} - CRS - {current_year}",
		fieldNames: []string{
			"project_title", "facility_number", "building_number", "suffix",
			"facility_name", "request_year", "requestor", "relook",
			"engineer", "imagery", "analyst", "geologist", "reviewer",
		},
	},
	{
		code:            "OTH",
		displayName:     "Other",
		description:     "Other project types",
		filenamePattern: "{document_title} - {current_year}",
		fieldNames:      []string{"document_title", "request_year", "notes"},
	},
}

var (
	projectTypes     map[string]*TypeSchema
	projectTypeOrder []string
)

func init() {
	projectTypes = make(map[string]*TypeSchema, len(projectTypeDefs))
	for _, def := range projectTypeDefs {
		s := &TypeSchema{
			Code:            def.code,
			DisplayName:     def.displayName,
			Description:     def.description,
			FilenamePattern: def.filenamePattern,
		}
		for _, name := range def.fieldNames {
			if f, ok := projectFields[name]; ok {
				s.Fields = append(s.Fields, f)
			}
		}
		if err := checkSchema(s); err != nil {
			panic(err)
		}
		projectTypes[def.code] = s
		projectTypeOrder = append(projectTypeOrder, def.code)
	}
}

// GetProjectType returns the schema for a project type code, or nil when the
// code is unknown. Callers must handle nil.
func GetProjectType(code string) *TypeSchema {
	return projectTypes[code]
}

// ProjectTypes returns all project type schemas in declaration order.
func ProjectTypes() []*TypeSchema {
	out := make([]*TypeSchema, 0, len(projectTypeOrder))
	for _, code := range projectTypeOrder {
		out = append(out, projectTypes[code])
	}
	return out
}

// ProjectTypeDisplayNames maps project type codes to display names.
func ProjectTypeDisplayNames() map[string]string {
	names := make(map[string]string, len(projectTypes))
	for code, s := range projectTypes {
		names[code] = s.DisplayName
	}
	return names
}
