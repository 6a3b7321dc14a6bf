// Package config loads application configuration from environment
// variables (MHTIDY_ prefix) with optional YAML file overrides, and owns
// the filesystem layout used by the tidying pipeline.
package config
