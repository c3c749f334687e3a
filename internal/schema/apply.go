// Implements the change applier turning diffs into property
// definition upserts.

package schema

import (
	"fmt"
	"strings"

	"github.com/maruel/notionsync/internal/notion"
)

// Strategy governs how remote-only fields are treated when applying
// schema changes.
type Strategy string

// Conflict strategies.
const (
	// StrategyMerge leaves remote-only fields untouched.
	StrategyMerge Strategy = "merge"
	// StrategyOverwrite deletes remote-only fields.
	StrategyOverwrite Strategy = "overwrite"
	// StrategyStrict fails when any remote-only field exists.
	StrategyStrict Strategy = "strict"
)

// ConflictError reports remote fields absent from the local schema
// under the strict strategy.
type ConflictError struct {
	// Keys lists every unrecognized field, in diff order.
	Keys []string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("remote schema has fields not declared locally: %s", strings.Join(e.Keys, ", "))
}

// ApplyChanges turns a diff into the property definition updates to
// send remotely, keyed by the label the remote side currently knows.
// The diffs must have been computed as DiffSchemas(remote, local), so
// added entries are fields to create, removed entries are remote-only
// fields and modified entries are fields to update. A nil map value
// deletes the property. An empty strategy defaults to merge.
//
// Under the strict strategy the call fails atomically when any
// remote-only field exists, naming every one of them.
func ApplyChanges(local *Schema, diffs []Diff, strategy Strategy) (map[string]*notion.PropertyDefinition, error) {
	if strategy == "" {
		strategy = StrategyMerge
	}

	if strategy == StrategyStrict {
		var unknown []string
		for _, d := range diffs {
			if d.Op == DiffRemoved {
				unknown = append(unknown, d.Key)
			}
		}
		if len(unknown) > 0 {
			return nil, &ConflictError{Keys: unknown}
		}
	}

	out := make(map[string]*notion.PropertyDefinition)
	for _, d := range diffs {
		switch d.Op {
		case DiffAdded:
			def := toPropertyDefinition(d.Field, local)
			out[d.Field.Label] = &def
		case DiffModified:
			def := toPropertyDefinition(d.To, local)
			def.Name = d.To.Label
			if id := d.ID; id != "" {
				def.ID = id
			} else if d.From.ID != "" {
				def.ID = d.From.ID
			}
			// Address the property by the label the remote side
			// still has; a label rename rides along in Name.
			key := d.To.Label
			if d.From.Label != "" && d.From.Label != d.To.Label {
				key = d.From.Label
			}
			out[key] = &def
		case DiffRemoved:
			if strategy == StrategyOverwrite {
				out[d.Field.Label] = nil
			}
		}
	}
	return out, nil
}
