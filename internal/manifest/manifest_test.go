// Tests for manifest parsing and validation.

package manifest

import (
	"strings"
	"testing"

	"github.com/maruel/notionsync/internal/schema"
	"gopkg.in/yaml.v3"
)

const sample = `
version: 1
databases:
  - database_id: db1
    strategy: strict
    unique_keys: [name]
    fields:
      - key: name
        type: title
        label: Name
      - key: priority
        type: select
        options: [Low, Medium, High]
      - key: status
        type: status
        groups:
          - key: todo
            label: To-do
            options:
              todo: Todo
              blocked: {label: Blocked, color: red}
      - key: total
        type: formula
        formula: prop("priority")
      - key: project
        type: relation
        relation:
          database_id: db2
          dual: true
          synced_property_name: Tasks
`

func TestParseBytes(t *testing.T) {
	m, err := ParseBytes([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Databases) != 1 {
		t.Fatalf("expected 1 database, got %d", len(m.Databases))
	}
	db := m.Databases[0]
	if db.ConflictStrategy() != schema.StrategyStrict {
		t.Errorf("expected strict strategy, got %v", db.ConflictStrategy())
	}

	t.Run("BareNameOptions", func(t *testing.T) {
		opts := db.Fields[1].Options
		if len(opts) != 3 || opts[0].Key != "Low" || opts[0].Label != "" {
			t.Errorf("unexpected options: %+v", opts)
		}
	})

	t.Run("MappingOptions", func(t *testing.T) {
		opts := db.Fields[2].Groups[0].Options
		if len(opts) != 2 {
			t.Fatalf("unexpected options: %+v", opts)
		}
		if opts[0].Key != "todo" || opts[0].Label != "Todo" {
			t.Errorf("unexpected scalar entry: %+v", opts[0])
		}
		if opts[1].Key != "blocked" || opts[1].Label != "Blocked" || opts[1].Color != "red" {
			t.Errorf("unexpected structured entry: %+v", opts[1])
		}
	})

	t.Run("ToSchema", func(t *testing.T) {
		s, err := db.ToSchema()
		if err != nil {
			t.Fatal(err)
		}
		f, ok := s.Get("name")
		if !ok || f.Label != "Name" {
			t.Errorf("unexpected name field: %+v", f)
		}
		// Label defaults to the key when omitted.
		f, _ = s.Get("priority")
		if f.Label != "priority" {
			t.Errorf("expected label to default to key, got %q", f.Label)
		}
		f, _ = s.Get("project")
		if f.Relation == nil || !f.Relation.Dual || f.Relation.DatabaseID != "db2" {
			t.Errorf("unexpected relation: %+v", f.Relation)
		}
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			"BadVersion",
			"version: 2\ndatabases: []",
			"unsupported manifest version",
		},
		{
			"MissingDatabaseID",
			"version: 1\ndatabases:\n  - fields:\n      - {key: name, type: title}",
			"database_id is required",
		},
		{
			"BadStrategy",
			"version: 1\ndatabases:\n  - database_id: db1\n    strategy: clobber\n    fields:\n      - {key: name, type: title}",
			"invalid strategy",
		},
		{
			"NoFields",
			"version: 1\ndatabases:\n  - database_id: db1\n    fields: []",
			"at least one field",
		},
		{
			"BadType",
			"version: 1\ndatabases:\n  - database_id: db1\n    fields:\n      - {key: name, type: widget}",
			"invalid type",
		},
		{
			"RelationWithoutTarget",
			"version: 1\ndatabases:\n  - database_id: db1\n    fields:\n      - {key: name, type: title}\n      - {key: rel, type: relation}",
			"relation requires a target",
		},
		{
			"DuplicateTitle",
			"version: 1\ndatabases:\n  - database_id: db1\n    fields:\n      - {key: a, type: title}\n      - {key: b, type: title}",
			"title",
		},
		{
			"UnknownUniqueKey",
			"version: 1\ndatabases:\n  - database_id: db1\n    unique_keys: [ghost]\n    fields:\n      - {key: name, type: title}",
			"unique key",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(c.yaml))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	t.Run("IdentityStaysCompact", func(t *testing.T) {
		o := OptionsConfig{{Key: "Low"}, {Key: "High"}}
		raw, err := yaml.Marshal(o)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(raw), ":") {
			t.Errorf("expected a bare name list, got %q", raw)
		}
		var back OptionsConfig
		if err := yaml.Unmarshal(raw, &back); err != nil {
			t.Fatal(err)
		}
		if len(back) != 2 || back[0].Key != "Low" {
			t.Errorf("round trip changed the vocabulary: %+v", back)
		}
	})

	t.Run("MappingSurvives", func(t *testing.T) {
		o := OptionsConfig{
			{Key: "low", Label: "Low"},
			{Key: "blocked", Label: "Blocked", Color: "red"},
		}
		raw, err := yaml.Marshal(o)
		if err != nil {
			t.Fatal(err)
		}
		var back OptionsConfig
		if err := yaml.Unmarshal(raw, &back); err != nil {
			t.Fatal(err)
		}
		if len(back) != 2 || back[1].Color != "red" || back[1].Label != "Blocked" {
			t.Errorf("round trip changed the vocabulary: %+v", back)
		}
		if back[0].Key != "low" || back[0].Label != "Low" {
			t.Errorf("round trip changed the first entry: %+v", back[0])
		}
	})
}

func TestFromSchema(t *testing.T) {
	s := schema.New().
		Set("name", schema.Title("Name")).
		Set("priority", schema.Select("priority", schema.OptionNames("Low", "High"))).
		Set("project", schema.RelationTo("Project", "db2"))
	db := FromSchema("db1", s)
	if db.DatabaseID != "db1" || len(db.Fields) != 3 {
		t.Fatalf("unexpected config: %+v", db)
	}
	// Labels equal to the key are dropped for compactness.
	if db.Fields[1].Label != "" {
		t.Errorf("expected identity label omitted, got %q", db.Fields[1].Label)
	}
	if db.Fields[0].Label != "Name" {
		t.Errorf("expected explicit label kept, got %q", db.Fields[0].Label)
	}

	back, err := db.ToSchema()
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range s.Keys() {
		want, _ := s.Get(key)
		got, ok := back.Get(key)
		if !ok {
			t.Errorf("key %q lost in round trip", key)
			continue
		}
		if got.Type != want.Type || got.Label != want.Label {
			t.Errorf("key %q changed: %+v != %+v", key, got, want)
		}
	}
}
