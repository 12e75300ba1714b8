// Package repositories implements SQLite persistence for the sync history.
//
// [SyncRunRepository] records one row per sync operation in the sync_runs table created by the embedded
// migrations in the shared package. Rows are append-only: a run is written once when the sync finishes.
package repositories
