package load

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type represents a persistence-capable struct that was loaded from a
// compiled user package. It carries everything generation needs: the
// declared members in source order, the embedded supertype chain, type
// parameters with their first bounds, and any nested (unexported)
// persistence-capable structs attached to this one.
type Type struct {
	Name       string       `json:"name,omitempty"`
	PkgPath    string       `json:"pkg_path,omitempty"`
	PkgName    string       `json:"pkg_name,omitempty"`
	Dir        string       `json:"dir,omitempty"`
	Pos        string       `json:"-"`
	Members    []*Member    `json:"members,omitempty"`
	Supers     []*TypeRef   `json:"supers,omitempty"`
	TypeParams []*TypeParam `json:"type_params,omitempty"`
	Nested     []*Type      `json:"nested,omitempty"`
}

// Exported reports whether the type name is exported. Unexported
// persistence-capable structs are emitted inline into the companion
// file of the exported type that references them.
func (t *Type) Exported() bool {
	return t.Name != "" && t.Name[0] >= 'A' && t.Name[0] <= 'Z'
}

// QualifiedName returns the package-path-qualified type name.
func (t *Type) QualifiedName() string {
	if t.PkgPath == "" {
		return t.Name
	}
	return t.PkgPath + "." + t.Name
}

// Member is one declared field or getter-style accessor method of a
// loaded type.
type Member struct {
	Name          string    `json:"name,omitempty"`
	Type          *TypeRef  `json:"type,omitempty"`
	Tag           string    `json:"tag,omitempty"`
	FromMethod    bool      `json:"from_method,omitempty"`
	NotPersistent bool      `json:"not_persistent,omitempty"`
	Position      *Position `json:"position,omitempty"`
}

// Position describes a member position in its declaring struct.
type Position struct {
	Index int // Index in the field or method list.
	Line  int // Source line of the declaration.
}

// TypeParam is a declared type parameter with its first bound.
// A nil Bound means the parameter is unconstrained (any).
type TypeParam struct {
	Name  string   `json:"name,omitempty"`
	Bound *TypeRef `json:"bound,omitempty"`
}

// RefKind is the syntactic shape of a type reference.
type RefKind string

const (
	RefIdent     RefKind = "ident"
	RefPointer   RefKind = "pointer"
	RefSlice     RefKind = "slice"
	RefArray     RefKind = "array"
	RefMap       RefKind = "map"
	RefChan      RefKind = "chan"
	RefFunc      RefKind = "func"
	RefStruct    RefKind = "struct"
	RefInterface RefKind = "interface"
)

// TypeRef is a member type reference preserving the source spelling,
// so that byte stays distinct from uint8 and rune from int32.
type TypeRef struct {
	Kind        RefKind    `json:"kind,omitempty"`
	Name        string     `json:"name,omitempty"`
	PkgPath     string     `json:"pkg_path,omitempty"`
	PkgName     string     `json:"pkg_name,omitempty"`
	Elem        *TypeRef   `json:"elem,omitempty"`
	Key         *TypeRef   `json:"key,omitempty"`
	Value       *TypeRef   `json:"value,omitempty"`
	Args        []*TypeRef `json:"args,omitempty"`
	AliasOf     *TypeRef   `json:"alias_of,omitempty"`
	Enum        bool       `json:"enum,omitempty"`
	Persistable bool       `json:"persistable,omitempty"`
	Unresolved  bool       `json:"unresolved,omitempty"`
}

// String renders the reference roughly as written in source.
func (r *TypeRef) String() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case RefPointer:
		return "*" + r.Elem.String()
	case RefSlice:
		return "[]" + r.Elem.String()
	case RefArray:
		return "[" + r.Name + "]" + r.Elem.String()
	case RefMap:
		return "map[" + r.Key.String() + "]" + r.Value.String()
	case RefChan:
		return "chan " + r.Elem.String()
	case RefFunc:
		return "func"
	case RefStruct:
		if r.Name != "" {
			return r.Name
		}
		return "struct{...}"
	case RefInterface:
		if r.Name != "" {
			return r.Name
		}
		return "interface{}"
	}
	s := r.Name
	if r.PkgName != "" {
		s = r.PkgName + "." + s
	}
	if len(r.Args) > 0 {
		args := make([]string, len(r.Args))
		for i := range r.Args {
			args[i] = r.Args[i].String()
		}
		s += "[" + strings.Join(args, ",") + "]"
	}
	return s
}

// Qualified returns the package-path-qualified name of a named
// reference, or the bare name for builtins.
func (r *TypeRef) Qualified() string {
	if r.PkgPath == "" {
		return r.Name
	}
	return r.PkgPath + "." + r.Name
}

// Named reports whether the reference is a plain named type,
// possibly package-qualified or instantiated.
func (r *TypeRef) Named() bool {
	return r != nil && (r.Kind == RefIdent || r.Kind == "")
}

// Deref returns the element of a pointer reference, or the reference
// itself for every other shape.
func (r *TypeRef) Deref() *TypeRef {
	if r != nil && r.Kind == RefPointer {
		return r.Elem
	}
	return r
}

// EmptyStruct reports whether the reference is a literal struct{},
// the value shape of the set idiom map[K]struct{}.
func (r *TypeRef) EmptyStruct() bool {
	return r != nil && r.Kind == RefStruct && r.Name == "struct{}"
}

// NewMember creates a loaded member and validates its descriptor shape.
func NewMember(name string, ref *TypeRef) (*Member, error) {
	if name == "" {
		return nil, fmt.Errorf("load: member with empty name")
	}
	if ref == nil {
		return nil, fmt.Errorf("load: member %q: missing type reference", name)
	}
	return &Member{Name: name, Type: ref}, nil
}

// MarshalType encodes a loaded type into JSON that can be decoded back
// with UnmarshalType. It is used to hand descriptors across process
// boundaries and to snapshot loader output in tests.
func MarshalType(t *Type) ([]byte, error) {
	if t.Name == "" {
		return nil, fmt.Errorf("load: marshal type with empty name")
	}
	return json.Marshal(t)
}

// UnmarshalType decodes the given buffer into a loaded type.
func UnmarshalType(buf []byte) (*Type, error) {
	t := &Type{}
	if err := json.Unmarshal(buf, t); err != nil {
		return nil, fmt.Errorf("load: unmarshal type: %w", err)
	}
	if t.Name == "" {
		return nil, fmt.Errorf("load: unmarshal type with empty name")
	}
	return t, nil
}
