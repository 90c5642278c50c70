// Package expr defines the expression contracts referenced by generated
// companion types. A companion mirrors every persistent member of a model
// struct as a typed path expression; predicates built from those paths
// render to a query string through the P tree in this package.
package expr

import (
	"reflect"
)

// Role describes how a root expression participates in a query.
type Role uint8

const (
	// Candidate is the role of the query's candidate instance.
	Candidate Role = iota
	// Parameter is the role of a query parameter.
	Parameter
	// Variable is the role of an unbound query variable.
	Variable
)

// String returns the lower-cased role name.
func (r Role) String() string {
	switch r {
	case Candidate:
		return "candidate"
	case Parameter:
		return "parameter"
	case Variable:
		return "variable"
	default:
		return "unknown"
	}
}

// Expression is the root contract of all typed path expressions.
type Expression interface {
	// PathString returns the dotted path from the root expression,
	// e.g. "this.manager.name".
	PathString() string
}

// PersistableExpression is the contract of companion types and the
// parent handle passed to member constructors.
type PersistableExpression interface {
	Expression

	// PathName returns the last path segment.
	PathName() string
	// Parent returns the owning expression, or nil for roots.
	Parent() PersistableExpression
	// ExprRole returns the role of the root of this path.
	ExprRole() Role
	// CandidateType returns the dynamic model type of the root,
	// when the root was built with one.
	CandidateType() reflect.Type
}

// EntityPath is the base embedded by generated companion types. T is the
// model type of the companion's root ancestor; the dynamic type of a
// subtype root travels separately, the way it was handed to NewRootPath.
type EntityPath[T any] struct {
	parent PersistableExpression
	name   string
	role   Role
	typ    reflect.Type
}

// NewPath returns a member path below parent. A nil parent makes the
// path a candidate root.
func NewPath[T any](parent PersistableExpression, name string) EntityPath[T] {
	return EntityPath[T]{parent: parent, name: name, role: Candidate}
}

// NewRootPath returns a root path carrying the dynamic model type and
// the given role.
func NewRootPath[T any](typ reflect.Type, name string, role Role) EntityPath[T] {
	return EntityPath[T]{name: name, role: role, typ: typ}
}

// PathName returns the last path segment.
func (p EntityPath[T]) PathName() string { return p.name }

// Parent returns the owning expression, or nil for roots.
func (p EntityPath[T]) Parent() PersistableExpression { return p.parent }

// ExprRole returns the role of the root of this path.
func (p EntityPath[T]) ExprRole() Role {
	if p.parent != nil {
		return p.parent.ExprRole()
	}
	return p.role
}

// CandidateType returns the dynamic model type of the root. It falls
// back to the static type parameter when no dynamic type was recorded.
func (p EntityPath[T]) CandidateType() reflect.Type {
	if p.typ != nil {
		return p.typ
	}
	if p.parent != nil {
		if t := p.parent.CandidateType(); t != nil {
			return t
		}
	}
	var zero T
	return reflect.TypeOf(zero)
}

// PathString returns the dotted path from the root expression.
func (p EntityPath[T]) PathString() string {
	if p.parent == nil {
		return p.name
	}
	return p.parent.PathString() + "." + p.name
}

// node is the common state of member expression implementations.
type node struct {
	parent PersistableExpression
	name   string
}

func (n node) PathString() string {
	if n.parent == nil {
		return n.name
	}
	return n.parent.PathString() + "." + n.name
}
