package expr

import (
	"math/big"
	"time"

	"cloud.google.com/go/civil"
)

// Numeric constrains the value types accepted by numeric expressions.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | *big.Int | *big.Float | *big.Rat
}

// BooleanExpression is the path contract for boolean members. A boolean
// path is itself a predicate and renders as its dotted path.
type BooleanExpression interface {
	Expression
	P

	Eq(v bool) P
	Ne(v bool) P
}

type boolExpr struct{ node }

// NewBooleanExpression returns the boolean path parent.name.
func NewBooleanExpression(parent PersistableExpression, name string) BooleanExpression {
	return boolExpr{node{parent, name}}
}

func (e boolExpr) String() string { return e.PathString() }
func (e boolExpr) Negate() P      { return Not(e) }
func (e boolExpr) Eq(v bool) P    { return cmp("==", e, v) }
func (e boolExpr) Ne(v bool) P    { return cmp("!=", e, v) }

// ByteExpression is the path contract for byte members.
type ByteExpression interface {
	Expression

	Eq(v byte) P
	Ne(v byte) P
	Gt(v byte) P
	Gte(v byte) P
	Lt(v byte) P
	Lte(v byte) P
}

type byteExpr struct{ node }

// NewByteExpression returns the byte path parent.name.
func NewByteExpression(parent PersistableExpression, name string) ByteExpression {
	return byteExpr{node{parent, name}}
}

func (e byteExpr) Eq(v byte) P  { return cmp("==", e, v) }
func (e byteExpr) Ne(v byte) P  { return cmp("!=", e, v) }
func (e byteExpr) Gt(v byte) P  { return cmp(">", e, v) }
func (e byteExpr) Gte(v byte) P { return cmp(">=", e, v) }
func (e byteExpr) Lt(v byte) P  { return cmp("<", e, v) }
func (e byteExpr) Lte(v byte) P { return cmp("<=", e, v) }

// CharExpression is the path contract for rune members.
type CharExpression interface {
	Expression

	Eq(v rune) P
	Ne(v rune) P
	Gt(v rune) P
	Lt(v rune) P
}

type charExpr struct{ node }

// NewCharExpression returns the rune path parent.name.
func NewCharExpression(parent PersistableExpression, name string) CharExpression {
	return charExpr{node{parent, name}}
}

func (e charExpr) Eq(v rune) P { return cmp("==", e, v) }
func (e charExpr) Ne(v rune) P { return cmp("!=", e, v) }
func (e charExpr) Gt(v rune) P { return cmp(">", e, v) }
func (e charExpr) Lt(v rune) P { return cmp("<", e, v) }

// NumericExpression is the path contract for numeric members of width T.
type NumericExpression[T Numeric] interface {
	Expression

	Eq(v T) P
	Ne(v T) P
	Gt(v T) P
	Gte(v T) P
	Lt(v T) P
	Lte(v T) P
	In(vs ...T) P
	NotIn(vs ...T) P
}

type numericExpr[T Numeric] struct{ node }

// NewNumericExpression returns the numeric path parent.name.
func NewNumericExpression[T Numeric](parent PersistableExpression, name string) NumericExpression[T] {
	return numericExpr[T]{node{parent, name}}
}

func (e numericExpr[T]) Eq(v T) P  { return cmp("==", e, v) }
func (e numericExpr[T]) Ne(v T) P  { return cmp("!=", e, v) }
func (e numericExpr[T]) Gt(v T) P  { return cmp(">", e, v) }
func (e numericExpr[T]) Gte(v T) P { return cmp(">=", e, v) }
func (e numericExpr[T]) Lt(v T) P  { return cmp("<", e, v) }
func (e numericExpr[T]) Lte(v T) P { return cmp("<=", e, v) }

func (e numericExpr[T]) In(vs ...T) P {
	anys := make([]any, len(vs))
	for i := range vs {
		anys[i] = vs[i]
	}
	return inList(e, anys, false)
}

func (e numericExpr[T]) NotIn(vs ...T) P {
	anys := make([]any, len(vs))
	for i := range vs {
		anys[i] = vs[i]
	}
	return inList(e, anys, true)
}

// StringExpression is the path contract for string members.
type StringExpression interface {
	Expression

	Eq(v string) P
	Ne(v string) P
	Gt(v string) P
	Gte(v string) P
	Lt(v string) P
	Lte(v string) P
	Contains(v string) P
	ContainsFold(v string) P
	EqualFold(v string) P
	HasPrefix(v string) P
	HasSuffix(v string) P
	In(vs ...string) P
	NotIn(vs ...string) P
}

type stringExpr struct{ node }

// NewStringExpression returns the string path parent.name.
func NewStringExpression(parent PersistableExpression, name string) StringExpression {
	return stringExpr{node{parent, name}}
}

func (e stringExpr) Eq(v string) P           { return cmp("==", e, v) }
func (e stringExpr) Ne(v string) P           { return cmp("!=", e, v) }
func (e stringExpr) Gt(v string) P           { return cmp(">", e, v) }
func (e stringExpr) Gte(v string) P          { return cmp(">=", e, v) }
func (e stringExpr) Lt(v string) P           { return cmp("<", e, v) }
func (e stringExpr) Lte(v string) P          { return cmp("<=", e, v) }
func (e stringExpr) Contains(v string) P     { return call("contains", e, v) }
func (e stringExpr) ContainsFold(v string) P { return call("contains_fold", e, v) }
func (e stringExpr) EqualFold(v string) P    { return call("equal_fold", e, v) }
func (e stringExpr) HasPrefix(v string) P    { return call("has_prefix", e, v) }
func (e stringExpr) HasSuffix(v string) P    { return call("has_suffix", e, v) }

func (e stringExpr) In(vs ...string) P {
	anys := make([]any, len(vs))
	for i := range vs {
		anys[i] = vs[i]
	}
	return inList(e, anys, false)
}

func (e stringExpr) NotIn(vs ...string) P {
	anys := make([]any, len(vs))
	for i := range vs {
		anys[i] = vs[i]
	}
	return inList(e, anys, true)
}

// DateExpression is the path contract for civil date members.
type DateExpression interface {
	Expression

	Eq(v civil.Date) P
	Before(v civil.Date) P
	After(v civil.Date) P
}

type dateExpr struct{ node }

// NewDateExpression returns the date path parent.name.
func NewDateExpression(parent PersistableExpression, name string) DateExpression {
	return dateExpr{node{parent, name}}
}

func (e dateExpr) Eq(v civil.Date) P     { return cmp("==", e, v) }
func (e dateExpr) Before(v civil.Date) P { return cmp("<", e, v) }
func (e dateExpr) After(v civil.Date) P  { return cmp(">", e, v) }

// TimeExpression is the path contract for civil time-of-day members.
type TimeExpression interface {
	Expression

	Eq(v civil.Time) P
	Before(v civil.Time) P
	After(v civil.Time) P
}

type timeExpr struct{ node }

// NewTimeExpression returns the time-of-day path parent.name.
func NewTimeExpression(parent PersistableExpression, name string) TimeExpression {
	return timeExpr{node{parent, name}}
}

func (e timeExpr) Eq(v civil.Time) P     { return cmp("==", e, v) }
func (e timeExpr) Before(v civil.Time) P { return cmp("<", e, v) }
func (e timeExpr) After(v civil.Time) P  { return cmp(">", e, v) }

// DateTimeExpression is the path contract for time.Time members.
type DateTimeExpression interface {
	Expression

	Eq(v time.Time) P
	Before(v time.Time) P
	After(v time.Time) P
}

type dateTimeExpr struct{ node }

// NewDateTimeExpression returns the instant path parent.name.
func NewDateTimeExpression(parent PersistableExpression, name string) DateTimeExpression {
	return dateTimeExpr{node{parent, name}}
}

func (e dateTimeExpr) Eq(v time.Time) P     { return cmp("==", e, v) }
func (e dateTimeExpr) Before(v time.Time) P { return cmp("<", e, v) }
func (e dateTimeExpr) After(v time.Time) P  { return cmp(">", e, v) }

// LocalDateTimeExpression is the path contract for civil datetime members.
type LocalDateTimeExpression interface {
	Expression

	Eq(v civil.DateTime) P
	Before(v civil.DateTime) P
	After(v civil.DateTime) P
}

type localDateTimeExpr struct{ node }

// NewLocalDateTimeExpression returns the zone-less datetime path parent.name.
func NewLocalDateTimeExpression(parent PersistableExpression, name string) LocalDateTimeExpression {
	return localDateTimeExpr{node{parent, name}}
}

func (e localDateTimeExpr) Eq(v civil.DateTime) P     { return cmp("==", e, v) }
func (e localDateTimeExpr) Before(v civil.DateTime) P { return cmp("<", e, v) }
func (e localDateTimeExpr) After(v civil.DateTime) P  { return cmp(">", e, v) }

// DurationExpression is the path contract for time.Duration members.
type DurationExpression interface {
	Expression

	Eq(v time.Duration) P
	Ne(v time.Duration) P
	Gt(v time.Duration) P
	Gte(v time.Duration) P
	Lt(v time.Duration) P
	Lte(v time.Duration) P
}

type durationExpr struct{ node }

// NewDurationExpression returns the duration path parent.name.
func NewDurationExpression(parent PersistableExpression, name string) DurationExpression {
	return durationExpr{node{parent, name}}
}

func (e durationExpr) Eq(v time.Duration) P  { return cmp("==", e, v) }
func (e durationExpr) Ne(v time.Duration) P  { return cmp("!=", e, v) }
func (e durationExpr) Gt(v time.Duration) P  { return cmp(">", e, v) }
func (e durationExpr) Gte(v time.Duration) P { return cmp(">=", e, v) }
func (e durationExpr) Lt(v time.Duration) P  { return cmp("<", e, v) }
func (e durationExpr) Lte(v time.Duration) P { return cmp("<=", e, v) }

// OptionalExpression is the path contract for optional members wrapping T.
type OptionalExpression[T any] interface {
	Expression

	Present() P
	Absent() P
	Eq(v T) P
}

type optionalExpr[T any] struct{ node }

// NewOptionalExpression returns the optional path parent.name.
func NewOptionalExpression[T any](parent PersistableExpression, name string) OptionalExpression[T] {
	return optionalExpr[T]{node{parent, name}}
}

func (e optionalExpr[T]) Present() P { return cmp("!=", e, nil) }
func (e optionalExpr[T]) Absent() P  { return cmp("==", e, nil) }
func (e optionalExpr[T]) Eq(v T) P   { return cmp("==", e, v) }

// EnumExpression is the path contract for enum-kind members.
type EnumExpression interface {
	Expression

	Eq(v any) P
	Ne(v any) P
	In(vs ...any) P
	NotIn(vs ...any) P
}

type enumExpr struct{ node }

// NewEnumExpression returns the enum path parent.name.
func NewEnumExpression(parent PersistableExpression, name string) EnumExpression {
	return enumExpr{node{parent, name}}
}

func (e enumExpr) Eq(v any) P        { return cmp("==", e, v) }
func (e enumExpr) Ne(v any) P        { return cmp("!=", e, v) }
func (e enumExpr) In(vs ...any) P    { return inList(e, vs, false) }
func (e enumExpr) NotIn(vs ...any) P { return inList(e, vs, true) }

// MapExpression is the path contract for map members.
type MapExpression interface {
	Expression

	ContainsKey(k any) P
	ContainsValue(v any) P
	IsEmpty() P
}

type mapExpr struct{ node }

// NewMapExpression returns the map path parent.name.
func NewMapExpression(parent PersistableExpression, name string) MapExpression {
	return mapExpr{node{parent, name}}
}

func (e mapExpr) ContainsKey(k any) P   { return call("contains_key", e, k) }
func (e mapExpr) ContainsValue(v any) P { return call("contains_value", e, v) }
func (e mapExpr) IsEmpty() P            { return call("is_empty", e) }

// ListExpression is the path contract for slice and array members.
type ListExpression interface {
	Expression

	Contains(v any) P
	IsEmpty() P
}

type listExpr struct{ node }

// NewListExpression returns the list path parent.name.
func NewListExpression(parent PersistableExpression, name string) ListExpression {
	return listExpr{node{parent, name}}
}

func (e listExpr) Contains(v any) P { return call("contains", e, v) }
func (e listExpr) IsEmpty() P       { return call("is_empty", e) }

// CollectionExpression is the path contract for set-idiom members.
type CollectionExpression interface {
	Expression

	Contains(v any) P
	IsEmpty() P
}

type collectionExpr struct{ node }

// NewCollectionExpression returns the collection path parent.name.
func NewCollectionExpression(parent PersistableExpression, name string) CollectionExpression {
	return collectionExpr{node{parent, name}}
}

func (e collectionExpr) Contains(v any) P { return call("contains", e, v) }
func (e collectionExpr) IsEmpty() P       { return call("is_empty", e) }

// ObjectExpression is the fallback path contract for unrecognized members.
type ObjectExpression interface {
	Expression

	Eq(v any) P
	Ne(v any) P
}

type objectExpr struct{ node }

// NewObjectExpression returns the object path parent.name.
func NewObjectExpression(parent PersistableExpression, name string) ObjectExpression {
	return objectExpr{node{parent, name}}
}

func (e objectExpr) Eq(v any) P { return cmp("==", e, v) }
func (e objectExpr) Ne(v any) P { return cmp("!=", e, v) }

// GeometryExpression is the path contract shared by geospatial members.
type GeometryExpression interface {
	Expression

	Intersects(v any) P
	Within(v any) P
	GeoContains(v any) P
}

// PointExpression is the path contract for point members.
type PointExpression interface{ GeometryExpression }

// LineStringExpression is the path contract for line string members.
type LineStringExpression interface{ GeometryExpression }

// LinearRingExpression is the path contract for linear ring members.
type LinearRingExpression interface{ GeometryExpression }

// PolygonExpression is the path contract for polygon members.
type PolygonExpression interface{ GeometryExpression }

// MultiPointExpression is the path contract for multi point members.
type MultiPointExpression interface{ GeometryExpression }

// MultiLineStringExpression is the path contract for multi line string members.
type MultiLineStringExpression interface{ GeometryExpression }

// MultiPolygonExpression is the path contract for multi polygon members.
type MultiPolygonExpression interface{ GeometryExpression }

type geometryExpr struct{ node }

func (e geometryExpr) Intersects(v any) P  { return call("intersects", e, v) }
func (e geometryExpr) Within(v any) P      { return call("within", e, v) }
func (e geometryExpr) GeoContains(v any) P { return call("geo_contains", e, v) }

// NewGeometryExpression returns the generic geometry path parent.name.
func NewGeometryExpression(parent PersistableExpression, name string) GeometryExpression {
	return geometryExpr{node{parent, name}}
}

// NewPointExpression returns the point path parent.name.
func NewPointExpression(parent PersistableExpression, name string) PointExpression {
	return geometryExpr{node{parent, name}}
}

// NewLineStringExpression returns the line string path parent.name.
func NewLineStringExpression(parent PersistableExpression, name string) LineStringExpression {
	return geometryExpr{node{parent, name}}
}

// NewLinearRingExpression returns the linear ring path parent.name.
func NewLinearRingExpression(parent PersistableExpression, name string) LinearRingExpression {
	return geometryExpr{node{parent, name}}
}

// NewPolygonExpression returns the polygon path parent.name.
func NewPolygonExpression(parent PersistableExpression, name string) PolygonExpression {
	return geometryExpr{node{parent, name}}
}

// NewMultiPointExpression returns the multi point path parent.name.
func NewMultiPointExpression(parent PersistableExpression, name string) MultiPointExpression {
	return geometryExpr{node{parent, name}}
}

// NewMultiLineStringExpression returns the multi line string path parent.name.
func NewMultiLineStringExpression(parent PersistableExpression, name string) MultiLineStringExpression {
	return geometryExpr{node{parent, name}}
}

// NewMultiPolygonExpression returns the multi polygon path parent.name.
func NewMultiPolygonExpression(parent PersistableExpression, name string) MultiPolygonExpression {
	return geometryExpr{node{parent, name}}
}
