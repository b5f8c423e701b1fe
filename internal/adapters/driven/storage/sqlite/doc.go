// Package sqlite provides a SQLite-based implementation of the document
// store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Both collections live in one database file:
//
//   - CredentialStore: the "credentials" collection
//   - GroupStore: the "groups" collection
//
// # Schema
//
// Each collection is a table of (id, doc) rows where doc is the JSON form of
// the domain document. The schema is managed through versioned migrations in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.passman/data/passman.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite locking in WAL
// mode.
package sqlite
