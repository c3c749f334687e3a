// Converts schemas back into manifest declarations.

package manifest

import "github.com/maruel/notionsync/internal/schema"

// FromSchema converts a schema into a manifest database declaration,
// the inverse of DatabaseConfig.ToSchema. Used to bootstrap a
// manifest from an inferred remote schema.
func FromSchema(databaseID string, s *schema.Schema) DatabaseConfig {
	db := DatabaseConfig{DatabaseID: databaseID}
	for _, key := range s.Keys() {
		f, _ := s.Get(key)
		fc := FieldConfig{
			Key:     key,
			Type:    string(f.Type),
			ID:      f.ID,
			Format:  f.NumberFormat,
			Options: fromOptions(f.Options),
			Formula: f.Formula,
			Prefix:  f.UniqueIDPrefix,
		}
		if f.Label != key {
			fc.Label = f.Label
		}
		for _, g := range f.Groups {
			fc.Groups = append(fc.Groups, GroupConfig{
				Key:     g.Key,
				Label:   g.Label,
				Color:   g.Color,
				Options: fromOptions(g.Options),
			})
		}
		if f.Relation != nil {
			fc.Relation = &RelationConfig{
				DatabaseID:         f.Relation.DatabaseID,
				Dual:               f.Relation.Dual,
				SyncedPropertyName: f.Relation.SyncedPropertyName,
				SyncedPropertyID:   f.Relation.SyncedPropertyID,
			}
		}
		if f.Rollup != nil {
			fc.Rollup = &RollupConfig{
				RelationProperty: f.Rollup.RelationProperty,
				TargetProperty:   f.Rollup.TargetProperty,
				Function:         f.Rollup.Function,
			}
		}
		db.Fields = append(db.Fields, fc)
	}
	return db
}

// fromOptions converts a schema vocabulary to the config shape.
func fromOptions(opts schema.Options) OptionsConfig {
	if len(opts) == 0 {
		return nil
	}
	out := make(OptionsConfig, 0, len(opts))
	for _, o := range opts {
		oc := OptionConfig{Key: o.Key, Color: o.Color}
		if o.Label != o.Key {
			oc.Label = o.Label
		}
		out = append(out, oc)
	}
	return out
}
