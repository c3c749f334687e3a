// Generates the JSON Schema describing the manifest format.

package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema reflects the manifest format into a JSON Schema document
// so editors and CI can validate manifest files.
func JSONSchema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: false}
	s := r.Reflect(&Manifest{})
	s.Title = "notionsync schema manifest"
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
