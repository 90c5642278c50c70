package gen

import (
	"github.com/syssam/typedq/compiler/load"
)

// Graph holds the types of one generation round after member
// classification and supertype resolution.
type Graph struct {
	*Config
	// Nodes are the top-level types of the round in load order.
	Nodes []*Type
	types map[string]*Type
}

// NewGraph validates the given descriptors, classifies every member
// type and resolves embedded supertypes. The returned graph is ready
// to generate.
func NewGraph(c *Config, schemas ...*load.Type) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "graph requires a configuration")
	}
	g := &Graph{
		Config: c,
		Nodes:  make([]*Type, 0, len(schemas)),
		types:  make(map[string]*Type),
	}
	for _, schema := range schemas {
		t, err := NewType(c, schema)
		if err != nil {
			return nil, err
		}
		if err := g.addNode(t); err != nil {
			return nil, err
		}
	}
	for _, t := range g.Nodes {
		g.resolve(t)
	}
	return g, nil
}

// Lookup returns the round's type declared in the given package under
// the given name. Nested types are found under their own names.
func (g *Graph) Lookup(pkgPath, name string) (*Type, bool) {
	key := name
	if pkgPath != "" {
		key = pkgPath + "." + name
	}
	t, ok := g.types[key]
	return t, ok
}

// addNode appends a top-level type to the round and registers it,
// together with its nested types, for reference resolution.
func (g *Graph) addNode(t *Type) error {
	if err := g.register(t); err != nil {
		return err
	}
	g.Nodes = append(g.Nodes, t)
	return nil
}

func (g *Graph) register(t *Type) error {
	key := t.QualifiedName()
	if _, ok := g.types[key]; ok {
		return NewValidationError(t.Name, "", key, "type declared twice in one round")
	}
	g.types[key] = t
	for _, n := range t.Nested {
		if err := g.register(n); err != nil {
			return err
		}
	}
	return nil
}

// resolve classifies the members of the type and its nested types and
// resolves the embedded supertype chain.
func (g *Graph) resolve(t *Type) {
	c := classifier{cfg: g.Config, graph: g, owner: t.schema}
	for _, m := range t.Members {
		m.Category = c.classify(m.def.Type)
	}
	if super := resolveSuper(t.schema); super != nil {
		t.Super = g.companion(super)
	}
	for _, n := range t.Nested {
		g.resolve(n)
	}
}

// resolveSuper walks the embedded chain of the descriptor and returns
// the first reference that carries the persistence marker. A reference
// the type checker could not resolve ends the walk and counts as the
// supertype, so broken rounds surface in the generated code instead of
// silently flattening the hierarchy.
func resolveSuper(t *load.Type) *load.TypeRef {
	for _, ref := range t.Supers {
		named := ref.Deref()
		if !named.Named() {
			continue
		}
		if named.Unresolved || named.Persistable {
			return named
		}
	}
	return nil
}

// companion resolves the companion identity of a persistence-capable
// reference. Types registered in this round keep their computed names,
// so nested targets resolve to their inlined companions; any other
// reference gets the conventional name in its own package.
func (g *Graph) companion(ref *load.TypeRef) *Companion {
	if t, ok := g.Lookup(ref.PkgPath, ref.Name); ok {
		return &Companion{Name: t.Companion, PkgPath: t.PkgPath(), PkgName: t.Package()}
	}
	return &Companion{Name: companionName(ref.Name), PkgPath: ref.PkgPath, PkgName: ref.PkgName}
}
