// Package utils provides small helpers shared by the cleaning and demand
// stages.
//
// It contains:
//   - ENTD day and clock parsing with past-midnight rollover
//   - the unknown-time sentinel test used by vacation pruning
//   - distance conversions
package utils
