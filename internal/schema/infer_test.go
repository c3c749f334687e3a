// Tests for schema inference from remote definitions.

package schema

import (
	"testing"

	"github.com/maruel/notionsync/internal/notion"
)

func TestInfer(t *testing.T) {
	t.Run("FoldsLabelsToKeys", func(t *testing.T) {
		props := map[string]notion.PropertyDefinition{
			"Full Name":  {ID: "t1", Name: "Full Name", Type: "title", Title: &struct{}{}},
			"E-Mail":     {ID: "p1", Name: "E-Mail", Type: "email", Email: &struct{}{}},
			"Created At": {ID: "p2", Name: "Created At", Type: "created_time", CreatedTime: &struct{}{}},
		}
		s := Infer(props, "")
		if s.Len() != 3 {
			t.Fatalf("expected 3 fields, got %d", s.Len())
		}
		f, ok := s.Get("full_name")
		if !ok || f.Type != TypeTitle || f.Label != "Full Name" || f.ID != "t1" {
			t.Errorf("unexpected full_name field: %+v", f)
		}
		if _, ok := s.Get("e_mail"); !ok {
			t.Errorf("expected key e_mail, keys: %v", s.Keys())
		}
		if _, ok := s.Get("created_at"); !ok {
			t.Errorf("expected key created_at, keys: %v", s.Keys())
		}
	})

	t.Run("DecodesOptionIDs", func(t *testing.T) {
		props := map[string]notion.PropertyDefinition{
			"Priority": {ID: "p1", Name: "Priority", Type: "select", Select: &notion.SelectConfig{
				Options: []notion.SelectOption{
					{ID: "o%3A1", Name: "Low", Color: "blue"},
					{ID: "o2", Name: "High", Color: "red"},
				},
			}},
		}
		s := Infer(props, "")
		f, _ := s.Get("priority")
		if len(f.Options) != 2 {
			t.Fatalf("expected 2 options, got %+v", f.Options)
		}
		if f.Options[0].Key != "o:1" || f.Options[0].Label != "Low" || f.Options[0].ID != "o%3A1" {
			t.Errorf("unexpected first option: %+v", f.Options[0])
		}
	})

	t.Run("ReconstructsStatusGroups", func(t *testing.T) {
		props := map[string]notion.PropertyDefinition{
			"Status": {ID: "p1", Name: "Status", Type: "status", Status: &notion.StatusConfig{
				Options: []notion.SelectOption{
					{ID: "o1", Name: "Todo", Color: "gray"},
					{ID: "o2", Name: "Doing", Color: "blue"},
					{ID: "o3", Name: "Done", Color: "green"},
				},
				Groups: []notion.StatusGroup{
					{ID: "g1", Name: "To-do", Color: "gray", OptionIDs: []string{"o1"}},
					{ID: "g2", Name: "In progress", Color: "blue", OptionIDs: []string{"o2"}},
					{ID: "g3", Name: "Complete", Color: "green", OptionIDs: []string{"o3"}},
				},
			}},
		}
		s := Infer(props, "")
		f, _ := s.Get("status")
		if len(f.Groups) != 3 {
			t.Fatalf("expected 3 groups, got %+v", f.Groups)
		}
		g := f.Groups[1]
		if g.Label != "In progress" || len(g.Options) != 1 || g.Options[0].Label != "Doing" {
			t.Errorf("unexpected group: %+v", g)
		}
	})

	t.Run("RestoresFormulaReferences", func(t *testing.T) {
		props := map[string]notion.PropertyDefinition{
			"Quantity": {ID: "p1", Name: "Quantity", Type: "number", Number: &notion.NumberConfig{Format: "number"}},
			"Double": {ID: "p2", Name: "Double", Type: "formula", Formula: &notion.FormulaConfig{
				Expression: "{{notion:block_property:p1:s:T1}} * 2",
			}},
		}
		s := Infer(props, "T1")
		f, _ := s.Get("double")
		if f.Formula != `prop("quantity") * 2` {
			t.Errorf("expected restored expression, got %q", f.Formula)
		}
	})

	t.Run("NoTableIDLeavesFormulaRaw", func(t *testing.T) {
		props := map[string]notion.PropertyDefinition{
			"Double": {ID: "p2", Name: "Double", Type: "formula", Formula: &notion.FormulaConfig{
				Expression: "{{notion:block_property:p1:s:T1}} * 2",
			}},
		}
		s := Infer(props, "")
		f, _ := s.Get("double")
		if f.Formula != "{{notion:block_property:p1:s:T1}} * 2" {
			t.Errorf("expected raw expression, got %q", f.Formula)
		}
	})

	t.Run("CollidingLabelsLastWins", func(t *testing.T) {
		props := map[string]notion.PropertyDefinition{
			"My Field":  {ID: "p1", Name: "My Field", Type: "email", Email: &struct{}{}},
			"My-Field!": {ID: "p2", Name: "My-Field!", Type: "url", URL: &struct{}{}},
		}
		s := Infer(props, "")
		if s.Len() != 1 {
			t.Fatalf("expected the colliding keys to merge, got %v", s.Keys())
		}
		// Sorted name order: "My Field" then "My-Field!"; the later
		// entry overwrites.
		f, _ := s.Get("my_field")
		if f.Type != TypeURL {
			t.Errorf("expected last entry to win, got %+v", f)
		}
	})

	t.Run("RelationAndRollup", func(t *testing.T) {
		props := map[string]notion.PropertyDefinition{
			"Tasks": {ID: "p1", Name: "Tasks", Type: "relation", Relation: &notion.RelationConfig{
				DatabaseID: "db2",
				Type:       "dual_property",
				DualProperty: &notion.DualPropertyConfig{
					SyncedPropertyName: "Project",
					SyncedPropertyID:   "sp1",
				},
			}},
			"Total": {ID: "p2", Name: "Total", Type: "rollup", Rollup: &notion.RollupConfig{
				RelationPropertyName: "Tasks",
				RollupPropertyName:   "Estimate",
				Function:             "sum",
			}},
		}
		s := Infer(props, "")
		rel, _ := s.Get("tasks")
		if rel.Relation == nil || !rel.Relation.Dual || rel.Relation.SyncedPropertyName != "Project" {
			t.Errorf("unexpected relation: %+v", rel.Relation)
		}
		roll, _ := s.Get("total")
		if roll.Rollup == nil || roll.Rollup.Function != "sum" || roll.Rollup.TargetProperty != "Estimate" {
			t.Errorf("unexpected rollup: %+v", roll.Rollup)
		}
	})
}

func TestFoldKey(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Name", "name"},
		{"Full Name", "full_name"},
		{"E-Mail Address", "e_mail_address"},
		{"  padded  ", "padded"},
		{"Price ($)", "price"},
		{"2nd Round", "2nd_round"},
	}
	for _, c := range cases {
		if got := FoldKey(c.label); got != c.want {
			t.Errorf("FoldKey(%q) = %q, want %q", c.label, got, c.want)
		}
	}
}
