// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Command-line flags may override individual keys; callers re-run Validate
// after applying them.
package config
