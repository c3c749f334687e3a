// Converts local typed values into remote property value payloads.

package record

import (
	"github.com/maruel/notionsync/internal/notion"
	"github.com/maruel/notionsync/internal/schema"
)

// Dehydrate converts a local record into a remote property map keyed
// by display label. Record keys absent from the schema are skipped;
// so are values that dehydrate to nothing (computed field types).
func Dehydrate(s *schema.Schema, data map[string]any) map[string]notion.PropertyValue {
	out := make(map[string]notion.PropertyValue, len(data))
	for key, v := range data {
		f, ok := s.Get(key)
		if !ok {
			continue
		}
		pv, ok := DehydrateValue(f, v)
		if !ok {
			continue
		}
		out[f.Label] = pv
	}
	return out
}

// DehydrateValue converts one local value into the remote property
// value payload for the field. The second result is false for
// computed types (formula, rollup, files, created/edited stamps,
// unique_id), which cannot be written and must be omitted from
// payloads rather than erroring.
func DehydrateValue(f schema.Field, v any) (notion.PropertyValue, bool) {
	if f.Type.Computed() {
		return notion.PropertyValue{}, false
	}
	switch f.Type {
	case schema.TypeTitle:
		return notion.PropertyValue{Type: "title", Title: toRichText(v)}, true
	case schema.TypeRichText:
		return notion.PropertyValue{Type: "rich_text", RichText: toRichText(v)}, true
	case schema.TypeNumber:
		if v == nil {
			return notion.PropertyValue{Type: "number"}, true
		}
		n := toNumber(v)
		return notion.PropertyValue{Type: "number", Number: &n}, true
	case schema.TypeCheckbox:
		if v == nil {
			return notion.PropertyValue{Type: "checkbox"}, true
		}
		b, _ := v.(bool)
		return notion.PropertyValue{Type: "checkbox", Checkbox: &b}, true
	case schema.TypeURL:
		return notion.PropertyValue{Type: "url", URL: toStringPtr(v)}, true
	case schema.TypeEmail:
		return notion.PropertyValue{Type: "email", Email: toStringPtr(v)}, true
	case schema.TypePhoneNumber:
		return notion.PropertyValue{Type: "phone_number", PhoneNumber: toStringPtr(v)}, true
	case schema.TypeDate:
		pv := notion.PropertyValue{Type: "date"}
		switch d := v.(type) {
		case *notion.DateValue:
			pv.Date = d
		case notion.DateValue:
			pv.Date = &d
		case string:
			if d != "" {
				pv.Date = &notion.DateValue{Start: d}
			}
		}
		return pv, true
	case schema.TypeSelect:
		// A falsy value clears the selection explicitly instead of
		// being omitted from the payload.
		if v == nil || v == "" {
			return notion.PropertyValue{Type: "select"}, true
		}
		name := f.Options.TranslateKey(toString(v))
		return notion.PropertyValue{Type: "select", Select: &notion.SelectOption{Name: name}}, true
	case schema.TypeMultiSelect:
		keys := toStrings(v)
		opts := make([]notion.SelectOption, 0, len(keys))
		for _, key := range keys {
			opts = append(opts, notion.SelectOption{Name: f.Options.TranslateKey(key)})
		}
		return notion.PropertyValue{Type: "multi_select", MultiSelect: opts}, true
	case schema.TypeStatus:
		if v == nil || v == "" {
			return notion.PropertyValue{Type: "status"}, true
		}
		name := schema.FlattenGroups(f.Groups).TranslateKey(toString(v))
		return notion.PropertyValue{Type: "status", Status: &notion.SelectOption{Name: name}}, true
	case schema.TypePeople:
		ids := toStrings(v)
		people := make([]notion.Person, 0, len(ids))
		for _, id := range ids {
			people = append(people, notion.Person{Object: "user", ID: id})
		}
		return notion.PropertyValue{Type: "people", People: people}, true
	case schema.TypeRelation:
		ids := toStrings(v)
		refs := make([]notion.RelationValue, 0, len(ids))
		for _, id := range ids {
			refs = append(refs, notion.RelationValue{ID: id})
		}
		// Relation pagination is not handled by the codec; the flag
		// is always reported false.
		return notion.PropertyValue{Type: "relation", Relation: refs, HasMore: false}, true
	}
	return notion.PropertyValue{}, false
}

// toRichText accepts a plain string or an already structured span
// list and yields the remote rich text shape.
func toRichText(v any) []notion.RichText {
	switch t := v.(type) {
	case nil:
		return []notion.RichText{}
	case string:
		return []notion.RichText{{
			Type:      "text",
			Text:      &notion.TextContent{Content: t},
			PlainText: t,
		}}
	case []notion.RichText:
		return t
	case notion.RichText:
		return []notion.RichText{t}
	default:
		s := toString(v)
		return []notion.RichText{{
			Type:      "text",
			Text:      &notion.TextContent{Content: s},
			PlainText: s,
		}}
	}
}

// toStrings coerces a local list value to a string slice.
func toStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, toString(e))
		}
		return out
	case string:
		return []string{t}
	default:
		return nil
	}
}

// toStringPtr coerces a local scalar to an optional string, mapping
// nil to nil.
func toStringPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := toString(v)
	return &s
}
