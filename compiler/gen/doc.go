// Package gen turns loaded model descriptors into typed query
// companions.
//
// The pipeline has three stages:
//
//	load.Type descriptors (compiler/load)
//	        ↓
//	   Graph (validated types, classified members, resolved supertypes)
//	        ↓
//	   Generator (jennifer emission, goimports, sink delivery)
//
// A Graph is built once per generation round. Classification maps every
// member type to an expression category (see Kind); the emitter renders
// one companion file per top-level type, with unexported nested types
// inlined into the file of the type that references them.
//
// Configuration uses functional options:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithMode(gen.PropertyAccess),
//	    gen.WithDepth(3),
//	    gen.WithTarget("./queries"),
//	)
//	graph, err := gen.NewGraph(cfg, schemas...)
//	err = graph.Gen()
//
// Errors carry structure: ConfigError for option misuse,
// ValidationError for rejected descriptors, and GenerationError for
// emission, formatting and delivery failures. A failing type does not
// abort the round; Generate reports everything that failed joined in
// node order.
package gen
