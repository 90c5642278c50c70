package gen

import (
	"github.com/syssam/typedq/compiler/load"
)

// classifier maps member type references of one subject type to
// expression categories. Classification is pure and never fails:
// anything unrecognized lands on the object fallback.
type classifier struct {
	cfg   *Config
	graph *Graph
	owner *load.Type
}

// classifyRules is the ordered dispatch table. Rules are tried top to
// bottom and the first non-nil category wins; the order is a
// correctness contract, not a convenience. The object fallback closes
// the table and matches everything.
var classifyRules = []func(classifier, *load.TypeRef) *Category{
	classifier.scalar,
	classifier.stringType,
	classifier.temporal,
	classifier.optional,
	classifier.enum,
	classifier.geospatial,
	classifier.container,
	classifier.reference,
	classifier.object,
}

// classify resolves the category of the given reference after type
// parameter and alias substitution.
func (c classifier) classify(ref *load.TypeRef) Category {
	if ref == nil {
		return Category{Kind: KindObject, Object: "interface{}"}
	}
	ref = c.substitute(ref)
	for _, rule := range classifyRules {
		if cat := rule(c, ref); cat != nil {
			return *cat
		}
	}
	return *c.object(ref)
}

// maxSubstitution guards against pathological bound chains.
const maxSubstitution = 8

// substitute replaces a type parameter reference with its first
// declared bound and resolves alias chains. Unbounded parameters keep
// their reference and end up on the object fallback.
func (c classifier) substitute(ref *load.TypeRef) *load.TypeRef {
	for i := 0; i < maxSubstitution; i++ {
		if bound, ok := c.bound(ref); ok {
			ref = bound
			continue
		}
		if ref.AliasOf != nil {
			ref = ref.AliasOf
			continue
		}
		break
	}
	return ref
}

// bound returns the first declared bound when ref names a type
// parameter of the subject type.
func (c classifier) bound(ref *load.TypeRef) (*load.TypeRef, bool) {
	if c.owner == nil || !ref.Named() {
		return nil, false
	}
	if ref.PkgPath != "" && ref.PkgPath != c.owner.PkgPath {
		return nil, false
	}
	for _, tp := range c.owner.TypeParams {
		if tp.Name == ref.Name && tp.Bound != nil {
			return tp.Bound, true
		}
	}
	return nil, false
}

// scalarKinds is the fixed scalar name table. Numeric names keep their
// exact width as the expression type argument; byte and rune stay
// distinct from uint8 and int32 because the loader preserves spelling.
var scalarKinds = map[string]Kind{
	"bool":    KindBoolean,
	"byte":    KindByte,
	"rune":    KindChar,
	"int":     KindNumeric,
	"int8":    KindNumeric,
	"int16":   KindNumeric,
	"int32":   KindNumeric,
	"int64":   KindNumeric,
	"uint":    KindNumeric,
	"uint8":   KindNumeric,
	"uint16":  KindNumeric,
	"uint32":  KindNumeric,
	"uint64":  KindNumeric,
	"float32": KindNumeric,
	"float64": KindNumeric,
}

func (c classifier) scalar(ref *load.TypeRef) *Category {
	if ref.Named() && ref.PkgPath == "" {
		if k, ok := scalarKinds[ref.Name]; ok {
			if k == KindNumeric {
				return &Category{Kind: KindNumeric, Arg: ref}
			}
			return &Category{Kind: k}
		}
	}
	return bigNumeric(ref)
}

// bigNumeric matches the math/big numerics in bare or pointer
// spelling; the numeric type argument is always the pointer form,
// matching the expr numeric constraint.
func bigNumeric(ref *load.TypeRef) *Category {
	named := ref.Deref()
	if !named.Named() || named.PkgPath != "math/big" {
		return nil
	}
	if named.Name != "Int" && named.Name != "Float" && named.Name != "Rat" {
		return nil
	}
	return &Category{
		Kind: KindNumeric,
		Arg:  &load.TypeRef{Kind: load.RefPointer, Elem: named},
	}
}

func (c classifier) stringType(ref *load.TypeRef) *Category {
	if ref.Named() && ref.PkgPath == "" && ref.Name == "string" {
		return &Category{Kind: KindString}
	}
	return nil
}

// temporalKinds maps the temporal family to distinct categories.
// No coalescing: each carries its own expression contract.
var temporalKinds = map[string]Kind{
	"time.Time":                          KindDateTime,
	"time.Duration":                      KindDuration,
	"cloud.google.com/go/civil.Date":     KindDate,
	"cloud.google.com/go/civil.Time":     KindTime,
	"cloud.google.com/go/civil.DateTime": KindLocalDateTime,
}

func (c classifier) temporal(ref *load.TypeRef) *Category {
	if !ref.Named() {
		return nil
	}
	if k, ok := temporalKinds[ref.Qualified()]; ok {
		return &Category{Kind: k}
	}
	return nil
}

// optionalElems maps the classic database/sql nullable wrappers to
// their implied element types.
var optionalElems = map[string]*load.TypeRef{
	"NullBool":    {Kind: load.RefIdent, Name: "bool"},
	"NullByte":    {Kind: load.RefIdent, Name: "byte"},
	"NullInt16":   {Kind: load.RefIdent, Name: "int16"},
	"NullInt32":   {Kind: load.RefIdent, Name: "int32"},
	"NullInt64":   {Kind: load.RefIdent, Name: "int64"},
	"NullFloat64": {Kind: load.RefIdent, Name: "float64"},
	"NullString":  {Kind: load.RefIdent, Name: "string"},
	"NullTime":    {Kind: load.RefIdent, Name: "Time", PkgPath: "time", PkgName: "time"},
}

// optional matches sql.Null[T], the classic sql.NullXxx family, and
// pointers to non-persistable types. Pointers to persistable types
// fall through to the reference rule, so self-references expand as
// reference chains instead of optionals.
func (c classifier) optional(ref *load.TypeRef) *Category {
	if ref.Named() && ref.PkgPath == "database/sql" {
		if ref.Name == "Null" && len(ref.Args) == 1 {
			return &Category{Kind: KindOptional, Arg: c.substitute(ref.Args[0])}
		}
		if elem, ok := optionalElems[ref.Name]; ok {
			return &Category{Kind: KindOptional, Arg: elem}
		}
	}
	if ref.Kind == load.RefPointer {
		elem := c.substitute(ref.Elem)
		if !elem.Persistable && nameable(elem) {
			return &Category{Kind: KindOptional, Arg: elem}
		}
	}
	return nil
}

// nameable reports whether the reference spells a type the emitted
// companion can name as an expression type argument. Funcs, channels,
// interfaces and unresolved names cannot, and their pointers land on
// the object fallback instead of the optional rule.
func nameable(ref *load.TypeRef) bool {
	switch ref.Kind {
	case load.RefIdent:
		if ref.Unresolved {
			return false
		}
		for _, a := range ref.Args {
			if !nameable(a) {
				return false
			}
		}
		return true
	case load.RefPointer, load.RefSlice, load.RefArray:
		return nameable(ref.Elem)
	case load.RefMap:
		return nameable(ref.Key) && nameable(ref.Value)
	case load.RefStruct:
		return ref.EmptyStruct()
	}
	return false
}

func (c classifier) enum(ref *load.TypeRef) *Category {
	if ref.Named() && ref.Enum {
		return &Category{Kind: KindEnum}
	}
	return nil
}

// geomVariants maps well-known geometry type names to dedicated
// categories; any other type under the geometry packages falls back to
// the generic geometry kind.
var geomVariants = map[string]Kind{
	"Point":           KindPoint,
	"LineString":      KindLineString,
	"LinearRing":      KindLinearRing,
	"Polygon":         KindPolygon,
	"MultiPoint":      KindMultiPoint,
	"MultiLineString": KindMultiLineString,
	"MultiPolygon":    KindMultiPolygon,
}

// geomPkgs are matched by import path only; the geometry packages are
// never imported by the generator or the emitted code.
var geomPkgs = map[string]bool{
	"github.com/twpayne/go-geom": true,
	"github.com/paulmach/orb":    true,
}

func (c classifier) geospatial(ref *load.TypeRef) *Category {
	if !c.cfg.Geospatial {
		return nil
	}
	if !ref.Named() || !geomPkgs[ref.PkgPath] {
		return nil
	}
	if k, ok := geomVariants[ref.Name]; ok {
		return &Category{Kind: k}
	}
	return &Category{Kind: KindGeometry}
}

// container classifies by shape: map[K]struct{} is the set idiom,
// other maps are maps, slices and arrays are lists.
func (c classifier) container(ref *load.TypeRef) *Category {
	switch ref.Kind {
	case load.RefMap:
		if ref.Value.EmptyStruct() {
			return &Category{Kind: KindCollection}
		}
		return &Category{Kind: KindMap}
	case load.RefSlice, load.RefArray:
		return &Category{Kind: KindList}
	}
	return nil
}

// reference matches named types carrying the persistence marker,
// unwrapping one pointer level.
func (c classifier) reference(ref *load.TypeRef) *Category {
	named := c.substitute(ref.Deref())
	if !named.Named() || !named.Persistable {
		return nil
	}
	return &Category{Kind: KindReference, Target: c.graph.companion(named)}
}

// object is the closing fallback; it matches everything and strips
// type arguments from named references.
func (c classifier) object(ref *load.TypeRef) *Category {
	if !ref.Named() {
		return &Category{Kind: KindObject, Object: ref.String()}
	}
	name := ref.Name
	if ref.PkgName != "" {
		name = ref.PkgName + "." + name
	}
	return &Category{Kind: KindObject, Object: name}
}
