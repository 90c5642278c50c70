package gen

var (
	// FeatureGeospatial turns on geometry member classification.
	// Members whose types come from the go-geom or orb packages get
	// geometry expressions instead of the object fallback.
	FeatureGeospatial = Feature{
		Name:        "geospatial",
		Stage:       Experimental,
		Default:     false,
		Description: "Classifies go-geom and orb member types as geometry expressions",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureGeospatial,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and their output may
	// change between releases.
	Experimental

	// Alpha features are feature-complete, but we expect
	// breaking-changes to their APIs.
	Alpha

	// Beta features are Alpha features that were added to the
	// documentation, and no breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while
	// without reported issues.
	Stable
)

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// A Feature of the typedq codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}
