// Parses schema manifest YAML files.

// Package manifest defines the declarative YAML format describing the
// local schemas to synchronize, and converts it to schema values.
package manifest

import (
	"fmt"
	"os"

	"github.com/maruel/notionsync/internal/schema"
	"gopkg.in/yaml.v3"
)

// Manifest is the top-level structure of a schema manifest file.
type Manifest struct {
	Version   int              `yaml:"version" json:"version" jsonschema:"description=Manifest format version; must be 1"`
	Databases []DatabaseConfig `yaml:"databases" json:"databases" jsonschema:"description=Databases to synchronize"`
}

// DatabaseConfig declares the desired schema of one remote database.
type DatabaseConfig struct {
	DatabaseID string        `yaml:"database_id" json:"database_id" jsonschema:"description=Remote database ID"`
	Strategy   string        `yaml:"strategy,omitempty" json:"strategy,omitempty" jsonschema:"description=Conflict strategy: merge (default), overwrite or strict,enum=merge,enum=overwrite,enum=strict"`
	UniqueKeys []string      `yaml:"unique_keys,omitempty" json:"unique_keys,omitempty" jsonschema:"description=Field keys identifying a record for upserts"`
	Fields     []FieldConfig `yaml:"fields" json:"fields" jsonschema:"description=Ordered field declarations"`
}

// FieldConfig declares one field. Key is the local identifier; Label
// defaults to Key when omitted.
type FieldConfig struct {
	Key      string          `yaml:"key" json:"key"`
	Type     string          `yaml:"type" json:"type"`
	Label    string          `yaml:"label,omitempty" json:"label,omitempty"`
	ID       string          `yaml:"id,omitempty" json:"id,omitempty"`
	Format   string          `yaml:"format,omitempty" json:"format,omitempty" jsonschema:"description=Number display format"`
	Options  OptionsConfig   `yaml:"options,omitempty" json:"options,omitempty"`
	Groups   []GroupConfig   `yaml:"groups,omitempty" json:"groups,omitempty"`
	Formula  string          `yaml:"formula,omitempty" json:"formula,omitempty" jsonschema:"description=Formula expression in prop(\"key\") form"`
	Relation *RelationConfig `yaml:"relation,omitempty" json:"relation,omitempty"`
	Rollup   *RollupConfig   `yaml:"rollup,omitempty" json:"rollup,omitempty"`
	Prefix   string          `yaml:"prefix,omitempty" json:"prefix,omitempty" jsonschema:"description=unique_id prefix"`
}

// GroupConfig declares one status group.
type GroupConfig struct {
	Key     string        `yaml:"key" json:"key"`
	Label   string        `yaml:"label,omitempty" json:"label,omitempty"`
	Color   string        `yaml:"color,omitempty" json:"color,omitempty"`
	Options OptionsConfig `yaml:"options,omitempty" json:"options,omitempty"`
}

// RelationConfig declares a relation target.
type RelationConfig struct {
	DatabaseID         string `yaml:"database_id" json:"database_id"`
	Dual               bool   `yaml:"dual,omitempty" json:"dual,omitempty"`
	SyncedPropertyName string `yaml:"synced_property_name,omitempty" json:"synced_property_name,omitempty"`
	SyncedPropertyID   string `yaml:"synced_property_id,omitempty" json:"synced_property_id,omitempty"`
}

// RollupConfig declares a rollup aggregation.
type RollupConfig struct {
	RelationProperty string `yaml:"relation_property" json:"relation_property"`
	TargetProperty   string `yaml:"target_property" json:"target_property"`
	Function         string `yaml:"function" json:"function"`
}

// Parse reads and parses a manifest from a file.
// The path is provided by the CLI user, so file inclusion is expected.
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified manifest path
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a manifest from bytes.
func ParseBytes(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate() error {
	if m.Version != 1 {
		return fmt.Errorf("unsupported manifest version: %d", m.Version)
	}
	for i := range m.Databases {
		db := &m.Databases[i]
		if db.DatabaseID == "" {
			return fmt.Errorf("database %d: database_id is required", i)
		}
		switch db.Strategy {
		case "", string(schema.StrategyMerge), string(schema.StrategyOverwrite), string(schema.StrategyStrict):
		default:
			return fmt.Errorf("database %s: invalid strategy %q", db.DatabaseID, db.Strategy)
		}
		if len(db.Fields) == 0 {
			return fmt.Errorf("database %s: at least one field is required", db.DatabaseID)
		}
		for j := range db.Fields {
			f := &db.Fields[j]
			if f.Key == "" {
				return fmt.Errorf("database %s, field %d: key is required", db.DatabaseID, j)
			}
			if f.Type == "" {
				return fmt.Errorf("database %s, field %q: type is required", db.DatabaseID, f.Key)
			}
			if !validFieldType(f.Type) {
				return fmt.Errorf("database %s, field %q: invalid type %q", db.DatabaseID, f.Key, f.Type)
			}
			if f.Type == string(schema.TypeRelation) && (f.Relation == nil || f.Relation.DatabaseID == "") {
				return fmt.Errorf("database %s, field %q: relation requires a target database_id", db.DatabaseID, f.Key)
			}
		}
		sch, err := db.ToSchema()
		if err != nil {
			return fmt.Errorf("database %s: %w", db.DatabaseID, err)
		}
		for _, key := range db.UniqueKeys {
			if _, ok := sch.Get(key); !ok {
				return fmt.Errorf("database %s: unique key %q is not a declared field", db.DatabaseID, key)
			}
		}
	}
	return nil
}

// ToSchema converts the declared field list to an ordered schema.
func (db *DatabaseConfig) ToSchema() (*schema.Schema, error) {
	s := schema.New()
	for i := range db.Fields {
		fc := &db.Fields[i]
		label := fc.Label
		if label == "" {
			label = fc.Key
		}
		f := schema.Field{
			Type:           schema.FieldType(fc.Type),
			Label:          label,
			ID:             fc.ID,
			NumberFormat:   fc.Format,
			Options:        fc.Options.toOptions(),
			Formula:        fc.Formula,
			UniqueIDPrefix: fc.Prefix,
		}
		for _, g := range fc.Groups {
			f.Groups = append(f.Groups, schema.Group{
				Key:     g.Key,
				Label:   g.Label,
				Color:   g.Color,
				Options: g.Options.toOptions(),
			})
		}
		if fc.Relation != nil {
			f.Relation = &schema.Relation{
				DatabaseID:         fc.Relation.DatabaseID,
				Dual:               fc.Relation.Dual,
				SyncedPropertyName: fc.Relation.SyncedPropertyName,
				SyncedPropertyID:   fc.Relation.SyncedPropertyID,
			}
		}
		if fc.Rollup != nil {
			f.Rollup = &schema.Rollup{
				RelationProperty: fc.Rollup.RelationProperty,
				TargetProperty:   fc.Rollup.TargetProperty,
				Function:         fc.Rollup.Function,
			}
		}
		s.Set(fc.Key, f)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ConflictStrategy returns the declared strategy, defaulting to
// merge.
func (db *DatabaseConfig) ConflictStrategy() schema.Strategy {
	if db.Strategy != "" {
		return schema.Strategy(db.Strategy)
	}
	return schema.StrategyMerge
}

// validFieldType checks a field type string against the known set.
func validFieldType(t string) bool {
	switch schema.FieldType(t) {
	case schema.TypeTitle, schema.TypeRichText, schema.TypeNumber, schema.TypeSelect,
		schema.TypeMultiSelect, schema.TypeStatus, schema.TypeDate, schema.TypePeople,
		schema.TypeFiles, schema.TypeCheckbox, schema.TypeURL, schema.TypeEmail,
		schema.TypePhoneNumber, schema.TypeFormula, schema.TypeRelation, schema.TypeRollup,
		schema.TypeCreatedTime, schema.TypeCreatedBy, schema.TypeLastEditedTime,
		schema.TypeLastEditedBy, schema.TypeUniqueID:
		return true
	default:
		return false
	}
}
