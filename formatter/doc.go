// Package formatter writes the cleaned tables and the run summary.
//
// This package is organized into:
//   - csv.go: trips (comma separated, fixed column order), households and
//     persons (';' separated); NaN is written as an empty cell
//   - json.go: the JSON run summary
//   - files.go: buffered file creation
package formatter
