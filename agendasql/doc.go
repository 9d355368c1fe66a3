// Package agendasql provides a small schema-driven access layer over a
// SQLite file holding a conference agenda.
//
// A [Table] is built from a name and a [Schema] (ordered columns plus raw
// constraint clauses). It creates its table if absent and offers generic
// [Table.Select], [Table.Insert] and [Table.Update] operations whose SQL is
// assembled from the schema rather than written by hand per table. Values
// crossing the boundary are tagged [Value]s and pass through the
// [Encode]/[Decode] codec.
//
// The three agenda tables are described by the generated schema registry
// ([SessionsSchema], [SpeakersSchema], [SessionsSpeakersSchema]) and can be
// opened together with [OpenTables].
//
// This package imports only [database/sql] for store access and registers
// the pure-Go modernc.org/sqlite driver.
//
//go:generate go run ../cmd/gensql -tables ../cmd/gensql/tables.yml -output . -package agendasql
package agendasql
