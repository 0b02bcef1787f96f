// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in internal/store, along with the embedded goose
// migrations that create the books, authors and author_book tables.
//
// Stores accept a store.DBTX so the same code runs against a *sql.DB or a
// *sql.Tx. Driver errors are translated with MapError before they leave the
// package, so callers only ever classify errors against store sentinels.
package postgres
