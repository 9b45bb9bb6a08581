package schema

// Master registry of source metadata fields, shared across source types.
var sourceFields = map[string]FieldDefinition{
	"title": {
		Name:     "title",
		Label:    "Title",
		Kind:     FieldText,
		Required: true,
		Rules:    []Rule{{Kind: RuleMaxLength, Length: 250}},
		Order:    0,
	},
	"authors": {
		Name:  "authors",
		Label: "Authors (comma-separated)",
		Kind:  FieldText,
		Hint:  "e.g., Smith, J., Doe, A.",
		Order: 1,
	},
	"publication_year": {
		Name:  "publication_year",
		Label: "Year",
		Kind:  FieldNumber,
		Hint:  "e.g., 2023",
		Rules: []Rule{
			{Kind: RuleMinValue, Value: 1000},
			{Kind: RuleMaxValue, Value: 9999},
		},
		Order: 2,
	},
	"publisher": {
		Name:  "publisher",
		Label: "Publisher / Journal",
		Kind:  FieldText,
		Order: 3,
	},
	"url": {
		Name:  "url",
		Label: "URL",
		Kind:  FieldText,
		Hint:  "https://...",
		Rules: []Rule{{Kind: RulePattern, Pattern: `^https?://`}},
		Order: 4,
	},
	"report_number": {
		Name:  "report_number",
		Label: "Report / Document No.",
		Kind:  FieldText,
		Order: 5,
	},
	"manual_version": {
		Name:  "manual_version",
		Label: "Version",
		Kind:  FieldText,
		Order: 6,
	},
	"caption": {
		Name:  "caption",
		Label: "Caption",
		Kind:  FieldTextarea,
		Order: 7,
	},
	"classification": {
		Name:    "classification",
		Label:   "Classification",
		Kind:    FieldDropdown,
		Options: []string{"Public", "Internal", "Restricted"},
		Order:   8,
	},
}

type sourceTypeDef struct {
	code         string
	displayName  string
	titlePattern string
	fieldNames   []string
}

var sourceTypeDefs = []sourceTypeDef{
	{
		code:         "book",
		displayName:  "Book",
		titlePattern: "{title} - {publication_year}",
		fieldNames:   []string{"title", "authors", "publication_year", "publisher", "classification"},
	},
	{
		code:         "article",
		displayName:  "Article",
		titlePattern: "{title} - {publication_year}",
		fieldNames:   []string{"title", "authors", "publication_year", "publisher", "classification"},
	},
	{
		code:         "website",
		displayName:  "Website",
		titlePattern: "{title}",
		fieldNames:   []string{"title", "url", "authors", "classification"},
	},
	{
		code:         "report",
		displayName:  "Report",
		titlePattern: "{title} - {report_number}",
		fieldNames:   []string{"title", "authors", "publication_year", "report_number", "classification"},
	},
	{
		code:         "standard",
		displayName:  "Standard",
		titlePattern: "{title} - {report_number}",
		fieldNames:   []string{"title", "publication_year", "publisher", "report_number", "classification"},
	},
	{
		code:         "manual",
		displayName:  "Manual",
		titlePattern: "{title} - {manual_version}",
		fieldNames:   []string{"title", "manual_version", "publisher", "publication_year", "classification"},
	},
	{
		code:         "image",
		displayName:  "Image",
		titlePattern: "{title}",
		fieldNames:   []string{"title", "caption", "classification"},
	},
}

var (
	sourceTypes     map[string]*TypeSchema
	sourceTypeOrder []string
)

func init() {
	sourceTypes = make(map[string]*TypeSchema, len(sourceTypeDefs))
	for _, def := range sourceTypeDefs {
		s := &TypeSchema{
			Code:            def.code,
			DisplayName:     def.displayName,
			FilenamePattern: def.titlePattern,
		}
		for _, name := range def.fieldNames {
			if f, ok := sourceFields[name]; ok {
				s.Fields = append(s.Fields, f)
			}
		}
		if err := checkSchema(s); err != nil {
			panic(err)
		}
		sourceTypes[def.code] = s
		sourceTypeOrder = append(sourceTypeOrder, def.code)
	}
}

// GetSourceType returns the schema for a source type code, or nil when the
// code is unknown.
func GetSourceType(code string) *TypeSchema {
	return sourceTypes[code]
}

// SourceTypes returns all source type schemas in declaration order.
func SourceTypes() []*TypeSchema {
	out := make([]*TypeSchema, 0, len(sourceTypeOrder))
	for _, code := range sourceTypeOrder {
		out = append(out, sourceTypes[code])
	}
	return out
}
