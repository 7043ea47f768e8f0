// Package survey holds the cleaned ENTD entities and their closed categorical
// codings.
//
// Households, persons and trips are plain structs with dense surrogate
// identifiers. Purpose, Mode and Sex are string-backed enumerations; the raw
// survey codes are translated through ordered prefix rule tables (see
// PurposeRules and ModeRules).
package survey
