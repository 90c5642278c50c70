package gen

import (
	"github.com/syssam/typedq/compiler/load"
)

// Kind enumerates the expression categories a member type can map to.
// The set is closed; classification always lands on exactly one kind.
type Kind uint8

const (
	KindObject Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindNumeric
	KindString
	KindDate
	KindTime
	KindDateTime
	KindLocalDateTime
	KindDuration
	KindOptional
	KindEnum
	KindMap
	KindList
	KindCollection
	KindReference
	KindGeometry
	KindPoint
	KindLineString
	KindLinearRing
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
)

var kindNames = [...]string{
	KindObject:          "object",
	KindBoolean:         "boolean",
	KindByte:            "byte",
	KindChar:            "char",
	KindNumeric:         "numeric",
	KindString:          "string",
	KindDate:            "date",
	KindTime:            "time",
	KindDateTime:        "datetime",
	KindLocalDateTime:   "local-datetime",
	KindDuration:        "duration",
	KindOptional:        "optional",
	KindEnum:            "enum",
	KindMap:             "map",
	KindList:            "list",
	KindCollection:      "collection",
	KindReference:       "reference",
	KindGeometry:        "geometry",
	KindPoint:           "point",
	KindLineString:      "linestring",
	KindLinearRing:      "linearring",
	KindPolygon:         "polygon",
	KindMultiPoint:      "multipoint",
	KindMultiLineString: "multilinestring",
	KindMultiPolygon:    "multipolygon",
}

// exprNames maps each kind to its declared expression type in the expr
// package. Persistent references use companion type names instead and
// have no entry here.
var exprNames = [...]string{
	KindObject:          "ObjectExpression",
	KindBoolean:         "BooleanExpression",
	KindByte:            "ByteExpression",
	KindChar:            "CharExpression",
	KindNumeric:         "NumericExpression",
	KindString:          "StringExpression",
	KindDate:            "DateExpression",
	KindTime:            "TimeExpression",
	KindDateTime:        "DateTimeExpression",
	KindLocalDateTime:   "LocalDateTimeExpression",
	KindDuration:        "DurationExpression",
	KindOptional:        "OptionalExpression",
	KindEnum:            "EnumExpression",
	KindMap:             "MapExpression",
	KindList:            "ListExpression",
	KindCollection:      "CollectionExpression",
	KindGeometry:        "GeometryExpression",
	KindPoint:           "PointExpression",
	KindLineString:      "LineStringExpression",
	KindLinearRing:      "LinearRingExpression",
	KindPolygon:         "PolygonExpression",
	KindMultiPoint:      "MultiPointExpression",
	KindMultiLineString: "MultiLineStringExpression",
	KindMultiPolygon:    "MultiPolygonExpression",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ExprName returns the declared expression type name in package expr,
// or the empty string for persistent references.
func (k Kind) ExprName() string {
	if int(k) < len(exprNames) {
		return exprNames[k]
	}
	return ""
}

// CtorName returns the expression constructor name in package expr.
// Constructor and declared names differ only by the New prefix.
func (k Kind) CtorName() string {
	n := k.ExprName()
	if n == "" {
		return ""
	}
	return "New" + n
}

// Category is the result of classifying a member type: the expression
// kind plus the payload some kinds carry.
type Category struct {
	// Kind of expression the member maps to.
	Kind Kind

	// Arg is the type argument for parameterized kinds: the exact
	// numeric width, or the optional element type.
	Arg *load.TypeRef

	// Object is the display name of the object fallback, with type
	// arguments stripped.
	Object string

	// Target identifies the companion type of a persistent reference.
	Target *Companion
}

// Companion identifies a generated companion type and the package it
// lives in.
type Companion struct {
	Name    string
	PkgPath string
	PkgName string
}
