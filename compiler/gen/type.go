package gen

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/syssam/typedq/compiler/load"
)

// The following types and their exported methods are consumed by the
// emitter to lay out companion files.
type (
	// Type represents one persistence-capable struct in the round: its
	// selected members, resolved supertype and nested inner types.
	Type struct {
		*Config
		schema *load.Type
		// Name holds the model type name.
		Name string
		// Companion holds the generated companion type name.
		Companion string
		// Members holds the persistent members in declaration order:
		// declared fields first, then accessor methods.
		Members []*Member
		members map[string]*Member
		// Super identifies the companion embedded for the first
		// persistence-capable embedded struct. Nil for base types.
		Super *Companion
		// Nested holds the unexported persistence-capable structs
		// reachable from this type's members. Their companions are
		// inlined into this type's file.
		Nested []*Type
	}

	// Member is one persistent member of a type together with its
	// resolved expression category.
	Member struct {
		def *load.Member
		// Name holds the Go member name.
		Name string
		// Path holds the query path segment: the member name with its
		// first rune lowered, unless the name starts with two upper
		// case letters.
		Path string
		// Category holds the expression classification of the member
		// type. It is filled in when the graph resolves.
		Category Category
		// Position of the member in the model declaration.
		Position *load.Position
	}
)

// NewType builds the generation descriptor of one top-level model
// struct, selecting its persistent members and descending into nested
// unexported structs.
func NewType(c *Config, schema *load.Type) (*Type, error) {
	return newType(c, schema, companionName(schema.Name))
}

func newType(c *Config, schema *load.Type, companion string) (*Type, error) {
	if err := ValidTypeName(schema.Name); err != nil {
		return nil, err
	}
	typ := &Type{
		Config:    c,
		schema:    schema,
		Name:      schema.Name,
		Companion: companion,
		Members:   make([]*Member, 0, len(schema.Members)),
		members:   make(map[string]*Member, len(schema.Members)),
	}
	for _, m := range schema.Members {
		if m.NotPersistent {
			continue
		}
		tm := &Member{
			def:      m,
			Name:     m.Name,
			Path:     decapitalize(m.Name),
			Position: m.Position,
		}
		if err := typ.checkMember(tm, m); err != nil {
			return nil, err
		}
		typ.Members = append(typ.Members, tm)
		typ.members[m.Name] = tm
	}
	for _, n := range schema.Nested {
		nt, err := newType(c, n, nestedCompanionName(companion, n.Name))
		if err != nil {
			return nil, err
		}
		typ.Nested = append(typ.Nested, nt)
	}
	return typ, nil
}

// =============================================================================
// Type methods
// =============================================================================

// QualifiedName returns the package-qualified model type name.
func (t Type) QualifiedName() string { return t.schema.QualifiedName() }

// Package returns the package name the model is declared in. The
// companion file carries the same package clause.
func (t Type) Package() string { return t.schema.PkgName }

// PkgPath returns the import path of the model package.
func (t Type) PkgPath() string { return t.schema.PkgPath }

// Pos returns the filename:line position of the model declaration.
func (t Type) Pos() string { return t.schema.Pos }

// File returns the base name of the companion file.
func (t Type) File() string { return companionFile(t.Name) }

// TargetFile returns the path the companion file is written to: next to
// the model sources by default, or under the configured target
// directory mirroring the import path.
func (t Type) TargetFile() string {
	if t.Config != nil && t.Config.Target != "" {
		return filepath.Join(t.Config.Target, filepath.FromSlash(t.schema.PkgPath), t.File())
	}
	return filepath.Join(t.schema.Dir, t.File())
}

// Receiver returns the method receiver identifier of the companion.
func (t Type) Receiver() string { return receiver(t.Companion) }

// HasSuper reports whether the companion embeds a supertype companion
// instead of the expression base.
func (t Type) HasSuper() bool { return t.Super != nil }

// checkMember validates one selected member.
func (t *Type) checkMember(tm *Member, m *load.Member) (err error) {
	switch {
	case m.Name == "":
		err = NewValidationError(t.Name, "", nil, "member name cannot be empty")
	case !token.IsIdentifier(m.Name):
		err = NewValidationError(t.Name, m.Name, m.Name, "member name is not a valid Go identifier")
	case m.Type == nil:
		err = NewValidationError(t.Name, m.Name, nil, "member has no type reference")
	case t.members[m.Name] != nil:
		err = NewValidationError(t.Name, m.Name, nil, fmt.Sprintf("member redeclared for type %q", t.Name))
	}
	return err
}

// =============================================================================
// Member methods
// =============================================================================

// reservedMembers are the names the embedded expression base already
// claims on every companion. A member declaration under one of these
// names would shadow the contract method and break the implements
// check, so the companion declares it with a trailing underscore.
var reservedMembers = map[string]bool{
	"PathName":      true,
	"Parent":        true,
	"ExprRole":      true,
	"CandidateType": true,
	"PathString":    true,
	"EntityPath":    true,
}

// FromMethod reports whether the member was selected from an accessor
// method rather than a declared field.
func (m Member) FromMethod() bool { return m.def.FromMethod }

// Ident returns the member's identifier on the companion type. The
// path string keeps the original member name either way.
func (m Member) Ident() string {
	if reservedMembers[m.Name] {
		return m.Name + "_"
	}
	return m.Name
}

// Ref returns the loaded type reference of the member.
func (m Member) Ref() *load.TypeRef { return m.def.Type }

// Backing returns the unexported field name backing the member in a
// lazily built companion.
func (m Member) Backing() string { return backingName(m.Name) }

// ValidTypeName will determine if a model type name can produce a
// companion file, rejecting names with unsafe characters.
func ValidTypeName(name string) error {
	// Check for empty name.
	if name == "" {
		return NewValidationError(name, "", nil, "type name cannot be empty")
	}
	// Check for path traversal characters to prevent directory escape attacks.
	if strings.ContainsAny(name, `/\`) {
		return NewValidationError(name, "", name, "type name contains path separator characters")
	}
	if strings.Contains(name, "..") {
		return NewValidationError(name, "", name, "type name contains parent directory reference")
	}
	// Validate that the name is a valid Go identifier.
	if !token.IsIdentifier(name) {
		return NewValidationError(name, "", name, "type name is not a valid Go identifier")
	}
	return nil
}
