package validation

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

// ValidateSchema checks raw config JSON against the embedded JSON Schema.
// Schema findings are structural, so every hit lands in the report's error
// list. The schema pass complements Validate: it runs against the raw bytes
// and catches type mismatches before any Go-side decoding semantics apply.
func ValidateSchema(configJSON []byte) (*Report, error) {
	schemaLoader := gojsonschema.NewBytesLoader(resumeSchema)
	documentLoader := gojsonschema.NewBytesLoader(configJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	report := &Report{}
	for _, desc := range result.Errors() {
		report.addError(desc.Field(), "%s", desc.Description())
	}
	return report, nil
}
