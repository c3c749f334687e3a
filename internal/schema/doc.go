// Package schema models locally declared database schemas and keeps
// them synchronized with the remote platform.
//
// A Schema is an ordered mapping of local keys to typed Fields. The
// package provides:
//   - the diff engine (DiffSchemas) matching fields across schemas by
//     remote ID, key, label and singleton type
//   - the change applier (ApplyChanges) turning a diff into property
//     definition upserts under a conflict strategy
//   - the property definition codec (ToPropertyDefinition, Infer)
//     converting between Fields and remote column definitions
//   - the formula expression translator (BuildExpression,
//     RestoreExpression) rewriting property references embedded in
//     formula expressions
//
// All functions are pure and safe for concurrent use.
package schema
