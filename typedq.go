// Package typedq marks data model structs for typed query metamodel generation.
//
// A struct becomes persistence-capable by embedding Entity:
//
//	type Person struct {
//		typedq.Entity
//
//		Name    string
//		Age     int
//		Manager *Person
//	}
//
// Running the typedq command over the package emits a companion type QPerson
// in the same package, mirroring every persistent member of Person as a typed
// query expression. Fields are excluded from the companion with the struct tag
// `typedq:"-"`.
package typedq

// TagKey is the struct tag key inspected on model fields.
const TagKey = "typedq"

// TagIgnore marks a field as not persistent. Members carrying
// `typedq:"-"` are skipped by the generator.
const TagIgnore = "-"

// Entity is the marker embedded by persistence-capable structs.
// Embedding is transitive: a struct embedding a persistence-capable
// struct is itself persistence-capable.
type Entity struct{}

// entity is implemented by Entity and, through embedding, by every
// persistence-capable struct. It exists so the marker cannot be
// satisfied accidentally by an unrelated empty struct.
func (Entity) entity() {}

// Interface is implemented by all marked structs via the embedded Entity.
type Interface interface {
	entity()
}
