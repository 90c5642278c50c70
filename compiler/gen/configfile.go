package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of a generation run, usually a
// typedq.yaml next to the module root.
type FileConfig struct {
	// Patterns are the package patterns scanned for candidate types.
	Patterns []string `yaml:"patterns"`

	// Mode is the access mode wire name, FIELD or PROPERTY.
	Mode string `yaml:"mode"`

	// Depth bounds eager reference initialization.
	Depth int `yaml:"depth"`

	// Geospatial enables geometry member classification.
	Geospatial bool `yaml:"geospatial"`

	// Target is the output directory. Empty writes companions next to
	// their source packages.
	Target string `yaml:"target"`

	// Header is an extra comment above the generated-code marker.
	Header string `yaml:"header"`

	// Features lists feature-flag names to enable.
	Features []string `yaml:"features"`

	// BuildFlags are forwarded to the package loader.
	BuildFlags []string `yaml:"build_flags"`
}

// LoadFileConfig reads and decodes the configuration file at path.
// Unknown keys are rejected; an empty file decodes to the zero value.
func LoadFileConfig(path string) (*FileConfig, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	fc := &FileConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigError("file", path, err.Error())
	}
	return fc, nil
}

// Options converts the decoded file into generation options. Only the
// keys present in the file contribute, so flag-level overrides can be
// applied on top.
func (fc *FileConfig) Options() ([]Option, error) {
	var opts []Option
	if fc.Mode != "" {
		opts = append(opts, WithMode(ParseAccessMode(fc.Mode)))
	}
	if fc.Depth != 0 {
		opts = append(opts, WithDepth(fc.Depth))
	}
	if fc.Geospatial {
		opts = append(opts, WithGeospatial(true))
	}
	if fc.Target != "" {
		opts = append(opts, WithTarget(fc.Target))
	}
	if fc.Header != "" {
		opts = append(opts, WithHeader(fc.Header))
	}
	var features []Feature
	for _, name := range fc.Features {
		f, ok := FeatureByName(name)
		if !ok {
			return nil, NewConfigError("Features", name, "unknown feature")
		}
		features = append(features, f)
	}
	if len(features) > 0 {
		opts = append(opts, WithFeatures(features...))
	}
	if len(fc.BuildFlags) > 0 {
		opts = append(opts, WithBuildFlags(fc.BuildFlags...))
	}
	return opts, nil
}
