// Defines query filter and sort shapes for database queries.

package notion

// Filter is a database query filter. Either a compound (And/Or) or a
// single property condition with exactly one condition field set.
type Filter struct {
	And []Filter `json:"and,omitempty"`
	Or  []Filter `json:"or,omitempty"`

	Property string `json:"property,omitempty"`

	Title    *TextCondition     `json:"title,omitempty"`
	RichText *TextCondition     `json:"rich_text,omitempty"`
	Number   *NumberCondition   `json:"number,omitempty"`
	Checkbox *BoolCondition     `json:"checkbox,omitempty"`
	Select   *SelectCondition   `json:"select,omitempty"`
	Status   *SelectCondition   `json:"status,omitempty"`
	UniqueID *NumberCondition   `json:"unique_id,omitempty"`
	Relation *RelationCondition `json:"relation,omitempty"`
}

// TextCondition matches text-bearing properties. Equals is a pointer
// so an explicit empty-string equality survives serialization.
type TextCondition struct {
	Equals   *string `json:"equals,omitempty"`
	Contains string  `json:"contains,omitempty"`
}

// TextEquals builds an equality condition, including the empty string.
func TextEquals(s string) *TextCondition {
	return &TextCondition{Equals: &s}
}

// NumberCondition matches number and unique_id properties.
type NumberCondition struct {
	Equals *float64 `json:"equals,omitempty"`
}

// BoolCondition matches checkbox properties.
type BoolCondition struct {
	Equals bool `json:"equals"`
}

// SelectCondition matches select and status properties by option name.
type SelectCondition struct {
	Equals string `json:"equals,omitempty"`
}

// RelationCondition matches relation properties by contained page ID.
type RelationCondition struct {
	Contains string `json:"contains,omitempty"`
}

// Sort orders query results by a property or timestamp.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"` // "created_time" or "last_edited_time"
	Direction string `json:"direction"`           // "ascending" or "descending"
}
