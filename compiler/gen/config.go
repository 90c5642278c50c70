package gen

import (
	"log/slog"
)

// AccessMode selects how companion members are materialized. Member
// discovery is the same in both modes: declared fields and accessor
// methods of the model both become members.
type AccessMode uint8

const (
	// FieldAccess exposes members as exported companion fields,
	// initialized eagerly up to the configured reference depth.
	FieldAccess AccessMode = iota

	// PropertyAccess exposes members through accessor methods backed
	// by unexported fields, built lazily on first use.
	PropertyAccess
)

// String returns the wire name of the access mode.
func (m AccessMode) String() string {
	if m == PropertyAccess {
		return "PROPERTY"
	}
	return "FIELD"
}

// ParseAccessMode returns the access mode named by s.
// Anything other than "FIELD" or "PROPERTY", including the empty
// string, falls back to FieldAccess.
func ParseAccessMode(s string) AccessMode {
	switch s {
	case "FIELD":
		return FieldAccess
	case "PROPERTY":
		return PropertyAccess
	default:
		slog.Debug("unknown access mode, falling back to FIELD", "value", s)
		return FieldAccess
	}
}

// DefaultDepth bounds eager initialization of persistable reference
// chains when no explicit depth is configured.
const DefaultDepth = 5

// DefaultHeader is the generated-code marker every companion file
// starts with. Tooling recognizes the marker and skips such files.
const DefaultHeader = "Code generated by typedq. DO NOT EDIT."

// Config holds the settings of a generation run.
// A Config is assembled through options and not mutated afterwards;
// its zero value is usable and equivalent to DefaultConfig.
type Config struct {
	// Mode selects field or property access.
	Mode AccessMode

	// Depth bounds eager initialization of persistable reference
	// chains. Zero means DefaultDepth.
	Depth int

	// Geospatial enables geometry member classification.
	Geospatial bool

	// Target is the directory generated files are written to.
	// Empty writes each companion next to its source package.
	Target string

	// Header is an extra comment placed above the generated-code
	// marker in each file.
	Header string

	// Features holds the enabled feature-flags.
	Features []Feature

	// BuildFlags are forwarded to the package loader.
	BuildFlags []string
}

// DefaultConfig returns a Config with the standard settings: field
// access and the default reference depth.
func DefaultConfig() *Config {
	return &Config{
		Mode:  FieldAccess,
		Depth: DefaultDepth,
	}
}

// EffectiveDepth returns Depth, or DefaultDepth when unset.
func (c *Config) EffectiveDepth() int {
	if c.Depth < 1 {
		return DefaultDepth
	}
	return c.Depth
}

// Output groups the output destination settings.
type Output struct {
	Target string
	Header string
}

// Output returns the grouped output settings.
func (c *Config) Output() Output {
	return Output{
		Target: c.Target,
		Header: c.Header,
	}
}

// FeatureEnabled reports if the named feature is turned on.
// Unknown feature names return a ConfigError.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := FeatureByName(name); !ok {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	return c.HasFeature(name), nil
}

// HasFeature reports if the named feature appears in Features.
func (c *Config) HasFeature(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}
