// Converts remote property values into local typed values.

package record

import (
	"strconv"

	"github.com/maruel/notionsync/internal/notion"
	"github.com/maruel/notionsync/internal/schema"
)

// Hydrate converts a remote property map into a local record keyed by
// schema key. Schema iteration order is authoritative; remote
// properties are looked up by the field's label. Keys whose property
// is absent, or whose value hydrates to nothing, are omitted from the
// result rather than set to a null placeholder.
func Hydrate(s *schema.Schema, properties map[string]notion.PropertyValue) map[string]any {
	out := make(map[string]any, s.Len())
	for _, key := range s.Keys() {
		f, _ := s.Get(key)
		pv, ok := properties[f.Label]
		if !ok {
			continue
		}
		v, ok := HydrateValue(&pv, f)
		if !ok {
			continue
		}
		out[key] = v
	}
	return out
}

// HydrateValue converts one remote property value into its local
// typed form under the field definition. The second result is false
// when the property carries nothing to hydrate (unknown type); a
// present-but-null remote value hydrates to an explicit nil.
func HydrateValue(pv *notion.PropertyValue, f schema.Field) (any, bool) {
	if pv == nil {
		return nil, false
	}
	switch f.Type {
	case schema.TypeTitle:
		return plainText(pv.Title), true
	case schema.TypeRichText:
		return plainText(pv.RichText), true
	case schema.TypeNumber:
		if pv.Number == nil {
			return nil, true
		}
		return *pv.Number, true
	case schema.TypeCheckbox:
		if pv.Checkbox == nil {
			return nil, true
		}
		return *pv.Checkbox, true
	case schema.TypeURL:
		return derefString(pv.URL), true
	case schema.TypeEmail:
		return derefString(pv.Email), true
	case schema.TypePhoneNumber:
		return derefString(pv.PhoneNumber), true
	case schema.TypeDate:
		if pv.Date == nil {
			return nil, true
		}
		return pv.Date, true
	case schema.TypeSelect:
		if pv.Select == nil {
			return nil, true
		}
		return f.Options.TranslateName(pv.Select.Name), true
	case schema.TypeMultiSelect:
		keys := make([]string, 0, len(pv.MultiSelect))
		for _, o := range pv.MultiSelect {
			keys = append(keys, f.Options.TranslateName(o.Name))
		}
		return keys, true
	case schema.TypeStatus:
		if pv.Status == nil {
			return nil, true
		}
		return schema.FlattenGroups(f.Groups).TranslateName(pv.Status.Name), true
	case schema.TypePeople:
		ids := make([]string, 0, len(pv.People))
		for _, p := range pv.People {
			ids = append(ids, p.ID)
		}
		return ids, true
	case schema.TypeRelation:
		ids := make([]string, 0, len(pv.Relation))
		for _, r := range pv.Relation {
			ids = append(ids, r.ID)
		}
		return ids, true
	case schema.TypeFiles:
		return pv.Files, true
	case schema.TypeFormula:
		if pv.Formula == nil {
			return nil, true
		}
		return hydrateFormula(pv.Formula), true
	case schema.TypeRollup:
		if pv.Rollup == nil {
			return nil, true
		}
		return hydrateRollup(pv.Rollup), true
	case schema.TypeCreatedTime:
		if pv.CreatedTime == nil {
			return nil, true
		}
		return *pv.CreatedTime, true
	case schema.TypeLastEditedTime:
		if pv.LastEditedTime == nil {
			return nil, true
		}
		return *pv.LastEditedTime, true
	case schema.TypeCreatedBy:
		if pv.CreatedBy == nil {
			return nil, true
		}
		return pv.CreatedBy.ID, true
	case schema.TypeLastEditedBy:
		if pv.LastEditedBy == nil {
			return nil, true
		}
		return pv.LastEditedBy.ID, true
	case schema.TypeUniqueID:
		if pv.UniqueID == nil {
			return nil, true
		}
		n := strconv.Itoa(pv.UniqueID.Number)
		if pv.UniqueID.Prefix != nil && *pv.UniqueID.Prefix != "" {
			return *pv.UniqueID.Prefix + "-" + n, true
		}
		return n, true
	}
	return nil, false
}

// hydrateFormula unwraps the tagged result of a formula property.
func hydrateFormula(fv *notion.FormulaValue) any {
	switch fv.Type {
	case "string":
		if fv.String != nil {
			return *fv.String
		}
	case "number":
		if fv.Number != nil {
			return *fv.Number
		}
	case "boolean":
		if fv.Boolean != nil {
			return *fv.Boolean
		}
	case "date":
		if fv.Date != nil {
			return fv.Date
		}
	}
	return nil
}

// hydrateRollup unwraps the tagged result of a rollup property.
// Array rollups extract each element raw: the element's own field
// identity is not available at this depth, so option vocabularies do
// not apply.
func hydrateRollup(rv *notion.RollupValue) any {
	switch rv.Type {
	case "number":
		if rv.Number != nil {
			return *rv.Number
		}
	case "date":
		if rv.Date != nil {
			return rv.Date
		}
	case "array":
		out := make([]any, 0, len(rv.Array))
		for i := range rv.Array {
			out = append(out, hydrateRaw(&rv.Array[i]))
		}
		return out
	}
	return nil
}

// hydrateRaw extracts a property value with no field definition,
// dispatching on the value's own type tag.
func hydrateRaw(pv *notion.PropertyValue) any {
	switch pv.Type {
	case "title":
		return plainText(pv.Title)
	case "rich_text":
		return plainText(pv.RichText)
	case "number":
		if pv.Number != nil {
			return *pv.Number
		}
	case "checkbox":
		if pv.Checkbox != nil {
			return *pv.Checkbox
		}
	case "url":
		return derefString(pv.URL)
	case "email":
		return derefString(pv.Email)
	case "phone_number":
		return derefString(pv.PhoneNumber)
	case "date":
		if pv.Date != nil {
			return pv.Date
		}
	case "select":
		if pv.Select != nil {
			return pv.Select.Name
		}
	case "status":
		if pv.Status != nil {
			return pv.Status.Name
		}
	case "multi_select":
		names := make([]string, 0, len(pv.MultiSelect))
		for _, o := range pv.MultiSelect {
			names = append(names, o.Name)
		}
		return names
	case "people":
		ids := make([]string, 0, len(pv.People))
		for _, p := range pv.People {
			ids = append(ids, p.ID)
		}
		return ids
	case "relation":
		ids := make([]string, 0, len(pv.Relation))
		for _, r := range pv.Relation {
			ids = append(ids, r.ID)
		}
		return ids
	case "formula":
		if pv.Formula != nil {
			return hydrateFormula(pv.Formula)
		}
	}
	return nil
}

// plainText concatenates the plain text of rich text spans, in order,
// with no separator.
func plainText(spans []notion.RichText) string {
	var out string
	for i := range spans {
		out += spans[i].PlainText
	}
	return out
}

// derefString dereferences an optional string, mapping nil to nil.
func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
