// Package syncer orchestrates schema synchronization and record
// upserts against the remote platform through the adapter boundary.
package syncer
