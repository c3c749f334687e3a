// Converts field definitions to remote property definitions.

package schema

import "github.com/maruel/notionsync/internal/notion"

// ToPropertyDefinition converts a single field definition to the
// remote property definition shape. Formula expressions are emitted
// as written on the field; use ToPropertiesDefinition to translate
// local-key references across a whole schema.
func ToPropertyDefinition(f Field) notion.PropertyDefinition {
	return toPropertyDefinition(f, nil)
}

// ToPropertiesDefinition converts a whole schema to remote property
// definitions keyed by display label. Formula fields have their
// prop("key") references rewritten to prop("Label") form against the
// schema.
func ToPropertiesDefinition(s *Schema) map[string]notion.PropertyDefinition {
	out := make(map[string]notion.PropertyDefinition, s.Len())
	for _, key := range s.Keys() {
		f, _ := s.Get(key)
		out[f.Label] = toPropertyDefinition(f, s)
	}
	return out
}

// toPropertyDefinition builds the definition body for one field.
// A non-nil schema enables formula reference translation.
func toPropertyDefinition(f Field, s *Schema) notion.PropertyDefinition {
	def := notion.PropertyDefinition{
		ID:   f.ID,
		Name: f.Label,
		Type: string(f.Type),
	}
	switch f.Type {
	case TypeTitle:
		def.Title = &struct{}{}
	case TypeRichText:
		def.RichText = &struct{}{}
	case TypeNumber:
		format := f.NumberFormat
		if format == "" {
			format = "number"
		}
		def.Number = &notion.NumberConfig{Format: format}
	case TypeSelect:
		def.Select = &notion.SelectConfig{Options: expandOptions(f.Options)}
	case TypeMultiSelect:
		def.MultiSelect = &notion.SelectConfig{Options: expandOptions(f.Options)}
	case TypeStatus:
		// Status options and groups are read-only remotely; locally
		// declared groups are deliberately not transmitted.
		def.Status = &notion.StatusConfig{}
	case TypeDate:
		def.Date = &struct{}{}
	case TypePeople:
		def.People = &struct{}{}
	case TypeFiles:
		def.Files = &struct{}{}
	case TypeCheckbox:
		def.Checkbox = &struct{}{}
	case TypeURL:
		def.URL = &struct{}{}
	case TypeEmail:
		def.Email = &struct{}{}
	case TypePhoneNumber:
		def.PhoneNumber = &struct{}{}
	case TypeFormula:
		expr := f.Formula
		if s != nil {
			expr = BuildExpression(expr, s)
		}
		def.Formula = &notion.FormulaConfig{Expression: expr}
	case TypeRelation:
		rel := &notion.RelationConfig{}
		if f.Relation != nil {
			rel.DatabaseID = f.Relation.DatabaseID
			if f.Relation.Dual {
				rel.Type = "dual_property"
				rel.DualProperty = &notion.DualPropertyConfig{
					SyncedPropertyName: f.Relation.SyncedPropertyName,
					SyncedPropertyID:   f.Relation.SyncedPropertyID,
				}
			} else {
				rel.Type = "single_property"
				rel.SingleProperty = &struct{}{}
			}
		}
		def.Relation = rel
	case TypeRollup:
		cfg := &notion.RollupConfig{}
		if f.Rollup != nil {
			cfg.RelationPropertyName = f.Rollup.RelationProperty
			cfg.RollupPropertyName = f.Rollup.TargetProperty
			cfg.Function = f.Rollup.Function
		}
		def.Rollup = cfg
	case TypeCreatedTime:
		def.CreatedTime = &struct{}{}
	case TypeCreatedBy:
		def.CreatedBy = &struct{}{}
	case TypeLastEditedTime:
		def.LastEditedTime = &struct{}{}
	case TypeLastEditedBy:
		def.LastEditedBy = &struct{}{}
	case TypeUniqueID:
		def.UniqueID = &notion.UniqueIDConfig{Prefix: f.UniqueIDPrefix}
	}
	return def
}

// expandOptions resolves a vocabulary to the remote option list shape.
// The remote side assigns option IDs, so new options carry empty IDs.
func expandOptions(opts Options) []notion.SelectOption {
	out := make([]notion.SelectOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, notion.SelectOption{
			ID:    "",
			Name:  o.Name(),
			Color: o.Color,
		})
	}
	return out
}
