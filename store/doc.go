// Package store persists cleaned households, persons and trips into a
// SQLite database (modernc.org/sqlite, no cgo). Each SaveResult replaces
// the previous tables in a single transaction; NaN floats are stored as
// NULL and read back as NaN.
package store
