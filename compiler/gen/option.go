package gen

import (
	"errors"
)

// Option configures code generation.
type Option func(*Config) error

// WithMode sets the member access mode.
// FieldAccess emits eager companion fields, PropertyAccess emits lazy
// accessor methods.
func WithMode(mode AccessMode) Option {
	return func(c *Config) error {
		switch mode {
		case FieldAccess, PropertyAccess:
			c.Mode = mode
			return nil
		default:
			return NewConfigError("Mode", mode, "unsupported access mode; use FieldAccess or PropertyAccess")
		}
	}
}

// WithDepth sets how deep persistable reference chains are
// initialized eagerly.
func WithDepth(depth int) Option {
	return func(c *Config) error {
		if depth < 1 {
			return NewConfigError("Depth", depth, "depth must be at least 1")
		}
		c.Depth = depth
		return nil
	}
}

// WithGeospatial toggles geometry member classification.
// Enabling it also records FeatureGeospatial in Features.
func WithGeospatial(enabled bool) Option {
	return func(c *Config) error {
		c.Geospatial = enabled
		if enabled && !c.HasFeature(FeatureGeospatial.Name) {
			c.Features = append(c.Features, FeatureGeospatial)
		}
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHeader sets an extra file header comment.
// The header is placed above the generated-code marker in each file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithFeatures enables specific features.
// Enabling FeatureGeospatial here also sets Config.Geospatial.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		for i := range features {
			if features[i].Name == FeatureGeospatial.Name {
				c.Geospatial = true
			}
		}
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading candidate packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
