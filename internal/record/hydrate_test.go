// Tests for value and record hydration.

package record

import (
	"reflect"
	"testing"

	"github.com/maruel/notionsync/internal/notion"
	"github.com/maruel/notionsync/internal/schema"
)

func richText(s string) []notion.RichText {
	return []notion.RichText{{Type: "text", Text: &notion.TextContent{Content: s}, PlainText: s}}
}

func TestHydrateValue(t *testing.T) {
	t.Run("TitleConcatenatesSpans", func(t *testing.T) {
		pv := &notion.PropertyValue{Type: "title", Title: []notion.RichText{
			{PlainText: "Hello "},
			{PlainText: "world"},
		}}
		v, ok := HydrateValue(pv, schema.Title("Name"))
		if !ok || v != "Hello world" {
			t.Errorf("expected concatenated text, got %v", v)
		}
	})

	t.Run("NullNumberStaysNull", func(t *testing.T) {
		pv := &notion.PropertyValue{Type: "number"}
		v, ok := HydrateValue(pv, schema.Number("Count"))
		if !ok || v != nil {
			t.Errorf("expected explicit nil, got %v", v)
		}
	})

	t.Run("SelectMapsNameToKey", func(t *testing.T) {
		f := schema.Select("Priority", schema.Options{
			{Key: "low", Label: "Low"},
			{Key: "high", Label: "High"},
		})
		pv := &notion.PropertyValue{Type: "select", Select: &notion.SelectOption{Name: "High"}}
		v, _ := HydrateValue(pv, f)
		if v != "high" {
			t.Errorf("expected key high, got %v", v)
		}
	})

	t.Run("SelectUnknownNamePassesThrough", func(t *testing.T) {
		f := schema.Select("Priority", schema.Options{{Key: "low", Label: "Low"}})
		pv := &notion.PropertyValue{Type: "select", Select: &notion.SelectOption{Name: "Urgent"}}
		v, _ := HydrateValue(pv, f)
		if v != "Urgent" {
			t.Errorf("expected raw name, got %v", v)
		}
	})

	t.Run("MultiSelectPreservesOrder", func(t *testing.T) {
		f := schema.MultiSelect("Tags", schema.Options{
			{Key: "a", Label: "Alpha"},
			{Key: "b", Label: "Beta"},
		})
		pv := &notion.PropertyValue{Type: "multi_select", MultiSelect: []notion.SelectOption{
			{Name: "Beta"}, {Name: "Gamma"}, {Name: "Alpha"},
		}}
		v, _ := HydrateValue(pv, f)
		if !reflect.DeepEqual(v, []string{"b", "Gamma", "a"}) {
			t.Errorf("expected per-element mapping with fallback, got %v", v)
		}
	})

	t.Run("StatusFlattensGroups", func(t *testing.T) {
		f := schema.Status("Status",
			schema.Group{Key: "todo", Options: schema.Options{{Key: "todo", Label: "Todo"}}},
			schema.Group{Key: "done", Options: schema.Options{{Key: "done", Label: "Done"}}},
		)
		pv := &notion.PropertyValue{Type: "status", Status: &notion.SelectOption{Name: "Done"}}
		v, _ := HydrateValue(pv, f)
		if v != "done" {
			t.Errorf("expected key done, got %v", v)
		}
	})

	t.Run("RelationYieldsIDs", func(t *testing.T) {
		f := schema.RelationTo("Tasks", "db2")
		pv := &notion.PropertyValue{Type: "relation", Relation: []notion.RelationValue{{ID: "r1"}, {ID: "r2"}}}
		v, _ := HydrateValue(pv, f)
		if !reflect.DeepEqual(v, []string{"r1", "r2"}) {
			t.Errorf("expected id list, got %v", v)
		}
	})

	t.Run("UniqueIDJoinsPrefix", func(t *testing.T) {
		prefix := "TASK"
		f := schema.Field{Type: schema.TypeUniqueID, Label: "ID"}
		pv := &notion.PropertyValue{Type: "unique_id", UniqueID: &notion.UniqueIDValue{Prefix: &prefix, Number: 42}}
		v, _ := HydrateValue(pv, f)
		if v != "TASK-42" {
			t.Errorf("expected TASK-42, got %v", v)
		}
		pv.UniqueID.Prefix = nil
		v, _ = HydrateValue(pv, f)
		if v != "42" {
			t.Errorf("expected bare number, got %v", v)
		}
	})

	t.Run("FormulaUnwraps", func(t *testing.T) {
		n := 7.5
		pv := &notion.PropertyValue{Type: "formula", Formula: &notion.FormulaValue{Type: "number", Number: &n}}
		v, _ := HydrateValue(pv, schema.Formula("Total", ""))
		if v != 7.5 {
			t.Errorf("expected 7.5, got %v", v)
		}
	})

	t.Run("RollupArrayExtractsRaw", func(t *testing.T) {
		f := schema.Field{Type: schema.TypeRollup, Label: "Names"}
		pv := &notion.PropertyValue{Type: "rollup", Rollup: &notion.RollupValue{
			Type: "array",
			Array: []notion.PropertyValue{
				{Type: "title", Title: richText("First")},
				{Type: "select", Select: &notion.SelectOption{Name: "Low"}},
			},
		}}
		v, _ := HydrateValue(pv, f)
		// Raw extraction ignores option vocabularies: the element's
		// field identity is unknown at this depth.
		if !reflect.DeepEqual(v, []any{"First", "Low"}) {
			t.Errorf("expected raw values, got %v", v)
		}
	})

	t.Run("CreatedByYieldsUserID", func(t *testing.T) {
		f := schema.Field{Type: schema.TypeCreatedBy, Label: "Author"}
		pv := &notion.PropertyValue{Type: "created_by", CreatedBy: &notion.Person{ID: "u1", Name: "Ada"}}
		v, _ := HydrateValue(pv, f)
		if v != "u1" {
			t.Errorf("expected user id, got %v", v)
		}
	})
}

func TestHydrate(t *testing.T) {
	s := schema.New().
		Set("name", schema.Title("Name")).
		Set("count", schema.Number("Count")).
		Set("missing", schema.Email("Gone"))
	props := map[string]notion.PropertyValue{
		"Name":  {Type: "title", Title: richText("Ada")},
		"Count": {Type: "number"},
		"Extra": {Type: "checkbox"},
	}
	rec := Hydrate(s, props)

	if rec["name"] != "Ada" {
		t.Errorf("expected name Ada, got %v", rec["name"])
	}
	// Present but null stays present and null.
	if v, ok := rec["count"]; !ok || v != nil {
		t.Errorf("expected explicit nil count, got %v (present=%v)", v, ok)
	}
	// Absent remote property: the key is omitted, not nil.
	if _, ok := rec["missing"]; ok {
		t.Error("expected missing key to be omitted")
	}
	// Remote-only properties never appear.
	if len(rec) != 2 {
		t.Errorf("expected 2 keys, got %v", rec)
	}
}
