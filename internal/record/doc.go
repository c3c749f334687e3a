// Package record converts between local typed records and remote
// property values.
//
// HydrateValue and DehydrateValue translate a single property under a
// field definition; Hydrate and Dehydrate apply them across a whole
// record, keyed by local key on one side and display label on the
// other. BuildUpsertFilter derives the query filter identifying a
// record from its unique key values.
//
// All functions are pure and safe for concurrent use.
package record
