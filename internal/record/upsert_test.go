// Tests for upsert filter construction.

package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/maruel/notionsync/internal/schema"
)

func TestBuildUpsertFilter(t *testing.T) {
	t.Run("TwoKeysCombineWithAnd", func(t *testing.T) {
		s := schema.New().
			Set("name", schema.Title("Name")).
			Set("email", schema.Email("Email"))
		flt, err := BuildUpsertFilter(s, []string{"name", "email"}, map[string]any{
			"name":  "John",
			"email": "john@x.com",
		})
		if err != nil {
			t.Fatal(err)
		}
		raw, err := json.Marshal(flt)
		if err != nil {
			t.Fatal(err)
		}
		want := `{"and":[{"property":"Name","title":{"equals":"John"}},{"property":"Email","rich_text":{"equals":"john@x.com"}}]}`
		if string(raw) != want {
			t.Errorf("expected %s, got %s", want, raw)
		}
	})

	t.Run("SingleKeyIsBare", func(t *testing.T) {
		s := schema.New().Set("name", schema.Title("Name"))
		flt, err := BuildUpsertFilter(s, []string{"name"}, map[string]any{"name": "John"})
		if err != nil {
			t.Fatal(err)
		}
		if len(flt.And) != 0 {
			t.Errorf("expected no and wrapper, got %+v", flt)
		}
		if flt.Property != "Name" || flt.Title == nil || flt.Title.Equals == nil || *flt.Title.Equals != "John" {
			t.Errorf("unexpected filter: %+v", flt)
		}
	})

	t.Run("MissingValueFiltersOnEmptyString", func(t *testing.T) {
		s := schema.New().Set("email", schema.Email("Email"))
		flt, err := BuildUpsertFilter(s, []string{"email"}, map[string]any{})
		if err != nil {
			t.Fatal(err)
		}
		if flt.RichText == nil || flt.RichText.Equals == nil || *flt.RichText.Equals != "" {
			t.Errorf("expected empty-string equality, got %+v", flt.RichText)
		}
	})

	t.Run("NumberCoercesStrings", func(t *testing.T) {
		s := schema.New().Set("count", schema.Number("Count"))
		flt, err := BuildUpsertFilter(s, []string{"count"}, map[string]any{"count": "41.5"})
		if err != nil {
			t.Fatal(err)
		}
		if flt.Number == nil || *flt.Number.Equals != 41.5 {
			t.Errorf("unexpected filter: %+v", flt.Number)
		}
	})

	t.Run("UnparseableNumberCoercesToZero", func(t *testing.T) {
		s := schema.New().Set("count", schema.Number("Count"))
		flt, err := BuildUpsertFilter(s, []string{"count"}, map[string]any{"count": "not a number"})
		if err != nil {
			t.Fatal(err)
		}
		if flt.Number == nil || *flt.Number.Equals != 0 {
			t.Errorf("unexpected filter: %+v", flt.Number)
		}
	})

	t.Run("SelectTranslatesKeyToName", func(t *testing.T) {
		s := schema.New().Set("priority", schema.Select("Priority", schema.Options{
			{Key: "low", Label: "Low"},
		}))
		flt, err := BuildUpsertFilter(s, []string{"priority"}, map[string]any{"priority": "low"})
		if err != nil {
			t.Fatal(err)
		}
		if flt.Select == nil || flt.Select.Equals != "Low" {
			t.Errorf("unexpected filter: %+v", flt.Select)
		}
	})

	t.Run("RelationUsesContains", func(t *testing.T) {
		s := schema.New().Set("task", schema.RelationTo("Task", "db2"))
		flt, err := BuildUpsertFilter(s, []string{"task"}, map[string]any{"task": "r1"})
		if err != nil {
			t.Fatal(err)
		}
		if flt.Relation == nil || flt.Relation.Contains != "r1" {
			t.Errorf("unexpected filter: %+v", flt.Relation)
		}
	})

	t.Run("UnknownKeyFails", func(t *testing.T) {
		s := schema.New().Set("name", schema.Title("Name"))
		_, err := BuildUpsertFilter(s, []string{"ghost"}, nil)
		var missing *MissingFieldError
		if !errors.As(err, &missing) || missing.Key != "ghost" {
			t.Errorf("expected MissingFieldError for ghost, got %v", err)
		}
	})

	t.Run("UnfilterableTypeFails", func(t *testing.T) {
		s := schema.New().Set("due", schema.Date("Due"))
		_, err := BuildUpsertFilter(s, []string{"due"}, map[string]any{"due": "2026-01-01"})
		var unsupported *UnsupportedFilterTypeError
		if !errors.As(err, &unsupported) || unsupported.Type != schema.TypeDate {
			t.Errorf("expected UnsupportedFilterTypeError, got %v", err)
		}
	})
}
