// Package history persists build attempts in SQLite.
//
// Every build command records its parameters and outcome (completed or
// failed, with the failure kind) so the history command can show what was
// built, with what settings, and how long it took. The Store holds a file
// lock for its lifetime so concurrent invocations serialize writes; the
// database is an append-only log, not workflow state.
//
// Schema changes are applied through embedded migrations in migrations/,
// ordered by file name.
package history
