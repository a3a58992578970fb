package config

import _ "embed"

// DefaultConfigYAML is the built-in configuration, usable out of the box
// against a local MySQL. External files and BUDGET_* env vars override it.
//
//go:embed config.yaml
var DefaultConfigYAML []byte
