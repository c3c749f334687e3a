// Implements the schema diff engine.

package schema

// DiffOp discriminates diff entries.
type DiffOp string

// Diff operations.
const (
	DiffAdded    DiffOp = "added"
	DiffRemoved  DiffOp = "removed"
	DiffModified DiffOp = "modified"
)

// Change dimensions reported on modified entries.
const (
	ChangeKey   = "key"
	ChangeLabel = "label"
	ChangeType  = "type"
)

// Diff is one difference between two schemas. Op selects which fields
// are meaningful: Added and Removed carry Key and Field; Modified
// carries Key (in the target schema), From, To and the non-empty set
// of changed dimensions, plus FromKey and ID when the local key moved.
type Diff struct {
	Op    DiffOp
	Key   string
	Field Field

	From    Field
	To      Field
	Changes []string
	// FromKey is the original key, set only when the key changed.
	FromKey string
	// ID is the matched field's remote ID, set only when the key
	// changed and an ID is known.
	ID string
}

// DiffSchemas computes the differences needed to transform from into
// to. Each from field is consumed by at most one match; matching is
// attempted in priority order: shared remote ID, same local key, same
// label, then same singleton type. Matches with no changed dimension
// produce no entry. From fields left unmatched are reported as
// removed, to fields as added.
func DiffSchemas(from, to *Schema) []Diff {
	byID := make(map[string]string)
	byLabel := make(map[string][]string)
	bySingleton := make(map[FieldType][]string)
	for _, key := range from.Keys() {
		f, _ := from.Get(key)
		if f.ID != "" {
			byID[f.ID] = key
		}
		if f.Label != "" {
			byLabel[f.Label] = append(byLabel[f.Label], key)
		}
		if f.Type.Singleton() {
			bySingleton[f.Type] = append(bySingleton[f.Type], key)
		}
	}

	consumed := make(map[string]bool, from.Len())
	var diffs []Diff

	match := func(toKey string, f Field) (string, bool) {
		if f.ID != "" {
			if k, ok := byID[f.ID]; ok && !consumed[k] {
				return k, true
			}
		}
		if _, ok := from.Get(toKey); ok && !consumed[toKey] {
			return toKey, true
		}
		for _, k := range byLabel[f.Label] {
			if !consumed[k] {
				return k, true
			}
		}
		if f.Type.Singleton() {
			for _, k := range bySingleton[f.Type] {
				if !consumed[k] {
					return k, true
				}
			}
		}
		return "", false
	}

	for _, toKey := range to.Keys() {
		toField, _ := to.Get(toKey)
		fromKey, ok := match(toKey, toField)
		if !ok {
			diffs = append(diffs, Diff{Op: DiffAdded, Key: toKey, Field: toField})
			continue
		}
		consumed[fromKey] = true
		fromField, _ := from.Get(fromKey)

		var changes []string
		if fromKey != toKey {
			changes = append(changes, ChangeKey)
		}
		if fromField.Label != toField.Label {
			changes = append(changes, ChangeLabel)
		}
		if fromField.Type != toField.Type {
			changes = append(changes, ChangeType)
		}
		if len(changes) == 0 {
			continue
		}

		d := Diff{
			Op:      DiffModified,
			Key:     toKey,
			From:    fromField,
			To:      toField,
			Changes: changes,
		}
		if fromKey != toKey {
			d.FromKey = fromKey
			if fromField.ID != "" {
				d.ID = fromField.ID
			} else {
				d.ID = toField.ID
			}
		}
		diffs = append(diffs, d)
	}

	for _, key := range from.Keys() {
		if consumed[key] {
			continue
		}
		f, _ := from.Get(key)
		diffs = append(diffs, Diff{Op: DiffRemoved, Key: key, Field: f})
	}

	return diffs
}
