// Reconstructs a local schema from remote property definitions.

package schema

import (
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/maruel/notionsync/internal/notion"
)

// Infer reconstructs a local schema from remote property definitions.
// Local keys are derived by snake-folding display labels; option and
// group identifiers are percent-decoded into stable local keys. When
// databaseID is non-empty, formula expressions are rewritten so
// cross-references resolve to the inferred local keys.
//
// Properties are processed in sorted display-name order; if two
// labels fold to the same key, the later one wins.
func Infer(properties map[string]notion.PropertyDefinition, databaseID string) *Schema {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	s := New()
	for _, name := range names {
		def := properties[name]
		s.Set(FoldKey(name), inferField(name, &def))
	}

	if databaseID != "" {
		for _, key := range s.Keys() {
			f, _ := s.Get(key)
			if f.Type == TypeFormula && f.Formula != "" {
				f.Formula = RestoreExpression(f.Formula, databaseID, s)
				s.Set(key, f)
			}
		}
	}
	return s
}

// inferField reconstructs one field from a remote definition.
func inferField(name string, def *notion.PropertyDefinition) Field {
	f := Field{
		Type:  FieldType(def.Type),
		Label: name,
		ID:    def.ID,
	}
	switch f.Type {
	case TypeNumber:
		if def.Number != nil {
			f.NumberFormat = def.Number.Format
		}
	case TypeSelect:
		if def.Select != nil {
			f.Options = inferOptions(def.Select.Options)
		}
	case TypeMultiSelect:
		if def.MultiSelect != nil {
			f.Options = inferOptions(def.MultiSelect.Options)
		}
	case TypeStatus:
		if def.Status != nil {
			f.Groups = inferGroups(def.Status)
		}
	case TypeFormula:
		if def.Formula != nil {
			f.Formula = def.Formula.Expression
		}
	case TypeRelation:
		if def.Relation != nil {
			rel := &Relation{DatabaseID: def.Relation.DatabaseID}
			if def.Relation.Type == "dual_property" {
				rel.Dual = true
				if dp := def.Relation.DualProperty; dp != nil {
					rel.SyncedPropertyName = dp.SyncedPropertyName
					rel.SyncedPropertyID = dp.SyncedPropertyID
				}
			}
			f.Relation = rel
		}
	case TypeRollup:
		if def.Rollup != nil {
			f.Rollup = &Rollup{
				RelationProperty: def.Rollup.RelationPropertyName,
				TargetProperty:   def.Rollup.RollupPropertyName,
				Function:         def.Rollup.Function,
			}
		}
	case TypeUniqueID:
		if def.UniqueID != nil {
			f.UniqueIDPrefix = def.UniqueID.Prefix
		}
	}
	return f
}

// inferOptions turns a remote option list into a vocabulary keyed by
// percent-decoded option IDs.
func inferOptions(opts []notion.SelectOption) Options {
	out := make(Options, 0, len(opts))
	for _, o := range opts {
		out = append(out, Option{
			Key:   decodeID(o.ID),
			Label: o.Name,
			Color: o.Color,
			ID:    o.ID,
		})
	}
	return out
}

// inferGroups reconstructs status groups, resolving each group's
// option membership through the definition's option list.
func inferGroups(cfg *notion.StatusConfig) []Group {
	byID := make(map[string]notion.SelectOption, len(cfg.Options))
	for _, o := range cfg.Options {
		byID[o.ID] = o
	}
	groups := make([]Group, 0, len(cfg.Groups))
	for _, g := range cfg.Groups {
		group := Group{
			Key:   decodeID(g.ID),
			Label: g.Name,
			Color: g.Color,
			ID:    g.ID,
		}
		for _, optID := range g.OptionIDs {
			o, ok := byID[optID]
			if !ok {
				continue
			}
			group.Options = append(group.Options, Option{
				Key:   decodeID(o.ID),
				Label: o.Name,
				Color: o.Color,
				ID:    o.ID,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// decodeID percent-decodes a remote identifier, falling back to the
// raw value when it is not valid percent encoding.
func decodeID(id string) string {
	decoded, err := url.PathUnescape(id)
	if err != nil {
		return id
	}
	return decoded
}

// FoldKey derives a local key from a display label: lowercase, with
// runs of non-alphanumeric characters collapsed to single
// underscores.
func FoldKey(label string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	return b.String()
}
