// Builds query filters that uniquely identify a record.

package record

import (
	"fmt"
	"strconv"

	"github.com/maruel/notionsync/internal/notion"
	"github.com/maruel/notionsync/internal/schema"
)

// BuildUpsertFilter builds the query filter identifying the record
// whose unique key fields carry the given data values. A single key
// yields a bare property filter; multiple keys are combined with a
// logical AND in argument order. A missing text value filters on the
// empty string rather than failing.
//
// It returns a *MissingFieldError for a key absent from the schema
// and an *UnsupportedFilterTypeError for field types that have no
// equality filter shape.
func BuildUpsertFilter(s *schema.Schema, uniqueKeys []string, data map[string]any) (*notion.Filter, error) {
	filters := make([]notion.Filter, 0, len(uniqueKeys))
	for _, key := range uniqueKeys {
		f, ok := s.Get(key)
		if !ok {
			return nil, &MissingFieldError{Key: key}
		}
		flt := notion.Filter{Property: f.Label}
		v := data[key]
		switch f.Type {
		case schema.TypeTitle:
			flt.Title = notion.TextEquals(toString(v))
		case schema.TypeRichText, schema.TypeEmail, schema.TypePhoneNumber, schema.TypeURL:
			flt.RichText = notion.TextEquals(toString(v))
		case schema.TypeNumber:
			n := toNumber(v)
			flt.Number = &notion.NumberCondition{Equals: &n}
		case schema.TypeUniqueID:
			n := toNumber(v)
			flt.UniqueID = &notion.NumberCondition{Equals: &n}
		case schema.TypeCheckbox:
			b, _ := v.(bool)
			flt.Checkbox = &notion.BoolCondition{Equals: b}
		case schema.TypeSelect:
			flt.Select = &notion.SelectCondition{Equals: f.Options.TranslateKey(toString(v))}
		case schema.TypeStatus:
			flt.Status = &notion.SelectCondition{Equals: schema.FlattenGroups(f.Groups).TranslateKey(toString(v))}
		case schema.TypeRelation:
			flt.Relation = &notion.RelationCondition{Contains: toString(v)}
		default:
			return nil, &UnsupportedFilterTypeError{Key: key, Type: f.Type}
		}
		filters = append(filters, flt)
	}
	if len(filters) == 1 {
		return &filters[0], nil
	}
	return &notion.Filter{And: filters}, nil
}

// toString coerces a local scalar to a string, mapping nil to the
// empty string.
func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// toNumber coerces a local scalar to a float64, best effort.
// Unparseable values coerce to zero.
func toNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
