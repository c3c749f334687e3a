// Defines field types, fields and ordered schemas.

package schema

import "fmt"

// FieldType is the discriminator of a Field.
type FieldType string

// Field types, mirroring the remote platform's property types.
const (
	TypeTitle          FieldType = "title"
	TypeRichText       FieldType = "rich_text"
	TypeNumber         FieldType = "number"
	TypeSelect         FieldType = "select"
	TypeMultiSelect    FieldType = "multi_select"
	TypeStatus         FieldType = "status"
	TypeDate           FieldType = "date"
	TypePeople         FieldType = "people"
	TypeFiles          FieldType = "files"
	TypeCheckbox       FieldType = "checkbox"
	TypeURL            FieldType = "url"
	TypeEmail          FieldType = "email"
	TypePhoneNumber    FieldType = "phone_number"
	TypeFormula        FieldType = "formula"
	TypeRelation       FieldType = "relation"
	TypeRollup         FieldType = "rollup"
	TypeCreatedTime    FieldType = "created_time"
	TypeCreatedBy      FieldType = "created_by"
	TypeLastEditedTime FieldType = "last_edited_time"
	TypeLastEditedBy   FieldType = "last_edited_by"
	TypeUniqueID       FieldType = "unique_id"
)

// Singleton reports whether the type may appear at most once per
// schema. Every table has exactly one title column by platform
// convention, which the diff engine uses as a matching fallback.
func (t FieldType) Singleton() bool {
	return t == TypeTitle
}

// Computed reports whether the type is written by the remote side and
// cannot be set through record payloads.
func (t FieldType) Computed() bool {
	switch t {
	case TypeFormula, TypeRollup, TypeFiles, TypeCreatedTime, TypeCreatedBy,
		TypeLastEditedTime, TypeLastEditedBy, TypeUniqueID:
		return true
	default:
		return false
	}
}

// Relation configures a relation field.
type Relation struct {
	// DatabaseID is the target table.
	DatabaseID string
	// Dual makes the relation two-way with a synced mirror property.
	Dual               bool
	SyncedPropertyName string
	SyncedPropertyID   string
}

// Rollup configures a rollup field.
type Rollup struct {
	// RelationProperty is the display name of the relation property
	// the rollup traverses.
	RelationProperty string
	// TargetProperty is the display name of the rolled-up property on
	// the related table.
	TargetProperty string
	// Function is the aggregation (count, sum, average, ...).
	Function string
}

// Field is one typed column of a schema. Type selects which of the
// per-type configuration fields is meaningful. Label is the display
// name and the join key against the remote side; ID is the
// remote-assigned stable identifier when known.
type Field struct {
	Type  FieldType
	Label string
	ID    string

	// NumberFormat applies to number fields (number, percent, ...).
	NumberFormat string
	// Options is the vocabulary of select and multi_select fields.
	Options Options
	// Groups is the grouped vocabulary of status fields.
	Groups []Group
	// Formula is the expression of formula fields, in local-key
	// prop("key") form.
	Formula string
	// Relation configures relation fields.
	Relation *Relation
	// Rollup configures rollup fields.
	Rollup *Rollup
	// UniqueIDPrefix applies to unique_id fields.
	UniqueIDPrefix string
}

// WithID returns a copy of the field carrying a remote ID.
func (f Field) WithID(id string) Field {
	f.ID = id
	return f
}

// Title declares the table's title field.
func Title(label string) Field { return Field{Type: TypeTitle, Label: label} }

// Text declares a rich text field.
func Text(label string) Field { return Field{Type: TypeRichText, Label: label} }

// Number declares a number field.
func Number(label string) Field { return Field{Type: TypeNumber, Label: label} }

// Select declares a select field with an option vocabulary.
func Select(label string, opts Options) Field {
	return Field{Type: TypeSelect, Label: label, Options: opts}
}

// MultiSelect declares a multi_select field with an option vocabulary.
func MultiSelect(label string, opts Options) Field {
	return Field{Type: TypeMultiSelect, Label: label, Options: opts}
}

// Status declares a status field with grouped options.
func Status(label string, groups ...Group) Field {
	return Field{Type: TypeStatus, Label: label, Groups: groups}
}

// Date declares a date field.
func Date(label string) Field { return Field{Type: TypeDate, Label: label} }

// Checkbox declares a checkbox field.
func Checkbox(label string) Field { return Field{Type: TypeCheckbox, Label: label} }

// URL declares a url field.
func URL(label string) Field { return Field{Type: TypeURL, Label: label} }

// Email declares an email field.
func Email(label string) Field { return Field{Type: TypeEmail, Label: label} }

// Phone declares a phone_number field.
func Phone(label string) Field { return Field{Type: TypePhoneNumber, Label: label} }

// People declares a people field.
func People(label string) Field { return Field{Type: TypePeople, Label: label} }

// Formula declares a formula field with a local-key expression.
func Formula(label, expression string) Field {
	return Field{Type: TypeFormula, Label: label, Formula: expression}
}

// RelationTo declares a single-direction relation field.
func RelationTo(label, databaseID string) Field {
	return Field{Type: TypeRelation, Label: label, Relation: &Relation{DatabaseID: databaseID}}
}

// Schema is an ordered mapping of local keys to fields. Keys are
// arbitrary local identifiers; they are not required to match remote
// labels. The zero value is not usable, call New.
type Schema struct {
	keys   []string
	fields map[string]Field
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{fields: make(map[string]Field)}
}

// Set adds or replaces a field, preserving insertion order on
// replacement. Returns the schema for chaining.
func (s *Schema) Set(key string, f Field) *Schema {
	if _, ok := s.fields[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.fields[key] = f
	return s
}

// Get returns the field at key.
func (s *Schema) Get(key string) (Field, bool) {
	f, ok := s.fields[key]
	return f, ok
}

// Keys returns the keys in insertion order. The caller must not
// mutate the returned slice.
func (s *Schema) Keys() []string {
	return s.keys
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.keys)
}

// Validate checks schema invariants: at most one field of each
// singleton type.
func (s *Schema) Validate() error {
	seen := make(map[FieldType]string)
	for _, key := range s.keys {
		f := s.fields[key]
		if !f.Type.Singleton() {
			continue
		}
		if prev, ok := seen[f.Type]; ok {
			return fmt.Errorf("schema declares %q at both %q and %q; a schema may have at most one", f.Type, prev, key)
		}
		seen[f.Type] = key
	}
	return nil
}
