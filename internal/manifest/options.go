// Handles the option vocabulary shorthands of manifest files.

package manifest

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/maruel/notionsync/internal/schema"
	"gopkg.in/yaml.v3"
)

// OptionsConfig is an option vocabulary in one of two YAML shapes:
//
//	options: [Low, Medium, High]        # bare names, key == name
//	options:                            # mapping, local key to name
//	  low: Low
//	  high: {label: High, color: red}
//
// Order is preserved in both shapes.
type OptionsConfig []OptionConfig

// OptionConfig is one normalized vocabulary entry.
type OptionConfig struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`
}

// UnmarshalYAML accepts both vocabulary shapes.
func (o *OptionsConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		out := make(OptionsConfig, 0, len(node.Content))
		for _, item := range node.Content {
			var name string
			if err := item.Decode(&name); err != nil {
				return fmt.Errorf("option list entries must be names: %w", err)
			}
			out = append(out, OptionConfig{Key: name})
		}
		*o = out
		return nil
	case yaml.MappingNode:
		out := make(OptionsConfig, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return fmt.Errorf("option keys must be strings: %w", err)
			}
			opt := OptionConfig{Key: key}
			if valNode.Kind == yaml.ScalarNode {
				if err := valNode.Decode(&opt.Label); err != nil {
					return fmt.Errorf("option %q: %w", key, err)
				}
			} else {
				var body struct {
					Label string `yaml:"label"`
					Color string `yaml:"color"`
				}
				if err := valNode.Decode(&body); err != nil {
					return fmt.Errorf("option %q: %w", key, err)
				}
				opt.Label = body.Label
				opt.Color = body.Color
			}
			out = append(out, opt)
		}
		*o = out
		return nil
	default:
		return fmt.Errorf("options must be a list of names or a key-to-name mapping")
	}
}

// MarshalYAML emits the compact shape that round-trips the
// vocabulary: a bare name list when every entry is an identity
// mapping, else the full mapping form.
func (o OptionsConfig) MarshalYAML() (any, error) {
	identity := true
	for _, opt := range o {
		if (opt.Label != "" && opt.Label != opt.Key) || opt.Color != "" {
			identity = false
			break
		}
	}
	if identity {
		names := make([]string, 0, len(o))
		for _, opt := range o {
			names = append(names, opt.Key)
		}
		return names, nil
	}
	var node yaml.Node
	node.Kind = yaml.MappingNode
	for _, opt := range o {
		var key, val yaml.Node
		key.SetString(opt.Key)
		if opt.Color == "" {
			val.SetString(opt.Label)
		} else {
			if err := val.Encode(map[string]string{"label": opt.Label, "color": opt.Color}); err != nil {
				return nil, err
			}
		}
		node.Content = append(node.Content, &key, &val)
	}
	return &node, nil
}

// JSONSchema describes both accepted vocabulary shapes.
func (OptionsConfig) JSONSchema() *jsonschema.Schema {
	names := &jsonschema.Schema{
		Type:  "array",
		Items: &jsonschema.Schema{Type: "string"},
	}
	entry := &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{
				Type: "object",
				Properties: jsonschema.NewProperties(),
			},
		},
	}
	entry.OneOf[1].Properties.Set("label", &jsonschema.Schema{Type: "string"})
	entry.OneOf[1].Properties.Set("color", &jsonschema.Schema{Type: "string"})
	mapping := &jsonschema.Schema{
		Type:                 "object",
		AdditionalProperties: entry,
	}
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{names, mapping}}
}

// toOptions converts the config shape to the schema vocabulary.
func (o OptionsConfig) toOptions() schema.Options {
	if len(o) == 0 {
		return nil
	}
	out := make(schema.Options, 0, len(o))
	for _, opt := range o {
		out = append(out, schema.Option{Key: opt.Key, Label: opt.Label, Color: opt.Color})
	}
	return out
}
