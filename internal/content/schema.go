package content

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed profile.schema.json
var profileSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(profileSchema)

// Schema returns the JSON Schema describing profile documents
func Schema() []byte {
	return bytes.Clone(profileSchema)
}

// CheckSchema checks the shape of a raw profile (YAML or JSON) against
// Schema. It reports structural problems such as a string where a list is
// expected, which Parse can only describe as a decoding failure. A nil
// result means the document has the right shape; content rules are still
// up to Validate.
func CheckSchema(data []byte) (ValidationErrors, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to check profile schema: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make(ValidationErrors, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return errs, nil
}
