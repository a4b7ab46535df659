// Package config loads and validates the optional bit.yaml project file
// (SPEC_FULL.md's AMBIENT STACK: Configuration). CLI flags always take
// precedence over bit.yaml, which takes precedence over the built-in
// defaults below.
//
// Grounded on the teacher's core/types validation pattern: decode to
// map[string]any, validate against an embedded JSON Schema via
// santhosh-tekuri/jsonschema/v5, only then map onto the typed Config.
// schema_version is checked with
// golang.org/x/mod/semver the way the teacher's "semver" custom format
// validator does, so an old project file fails fast with a clear message
// instead of a confusing schema error.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/bitlang/bit/engine/arena"
	"github.com/bitlang/bit/engine/source"
)

// Config is bit.yaml's decoded, validated shape.
type Config struct {
	SchemaVersion string   `yaml:"schema_version"`
	TabSize       int      `yaml:"tab_size"`
	ArenaSize     int64    `yaml:"arena_size"`
	SourceRoots   []string `yaml:"source_roots"`
}

// Default returns the built-in configuration used when no bit.yaml is
// present or a field is left unset.
func Default() Config {
	return Config{
		SchemaVersion: "1.0.0",
		TabSize:       source.DefaultTabSize,
		ArenaSize:     arena.DefaultSize,
	}
}

// MinSchemaVersion is the oldest schema_version this build still accepts.
const MinSchemaVersion = "1.0.0"

// schemaJSON is the embedded JSON Schema bit.yaml is validated against
// before being mapped onto Config. Kept minimal on purpose: it only
// constrains the fields this build actually reads.
const schemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"schema_version": {"type": "string"},
		"tab_size": {"type": "integer", "minimum": 1, "maximum": 32},
		"arena_size": {"type": "integer", "minimum": 1},
		"source_roots": {"type": "array", "items": {"type": "string"}}
	},
	"additionalProperties": false
}`

var schemaCompiled = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("bit-config.json", bytes.NewReader([]byte(schemaJSON))); err != nil {
		panic(fmt.Sprintf("config: embedded schema is malformed: %v", err))
	}
	schema, err := compiler.Compile("bit-config.json")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is malformed: %v", err))
	}
	return schema
}

// Load reads and validates the bit.yaml at path, layering it over Default.
// A missing file is not an error: Default is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	text, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(text, &raw); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if raw == nil {
		return cfg, nil
	}

	if err := schemaCompiled.Validate(raw); err != nil {
		return cfg, fmt.Errorf("config: %s failed schema validation: %w", path, err)
	}

	if err := yaml.Unmarshal(text, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	if cfg.SchemaVersion != "" {
		if err := checkSchemaVersion(cfg.SchemaVersion); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if cfg.TabSize <= 0 {
		cfg.TabSize = source.DefaultTabSize
	}
	if cfg.ArenaSize <= 0 {
		cfg.ArenaSize = arena.DefaultSize
	}
	return cfg, nil
}

func checkSchemaVersion(v string) error {
	tagged := "v" + v
	if !semver.IsValid(tagged) {
		return fmt.Errorf("schema_version %q is not a valid semantic version", v)
	}
	if semver.Compare(tagged, "v"+MinSchemaVersion) < 0 {
		return fmt.Errorf("schema_version %q predates the oldest supported version %q", v, MinSchemaVersion)
	}
	return nil
}
