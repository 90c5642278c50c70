package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/typedq/compiler/load"
)

// exprPkg is the import path of the expression contracts referenced by
// every companion.
const exprPkg = "github.com/syssam/typedq/expr"

// emitCompanion appends the companion of the type to the file, followed
// by the companions of its nested types. The layout is fixed: type
// declaration, implements check, factory surface, the two constructors,
// then accessors in lazy mode. Emission never iterates maps, so
// re-rendering unchanged input is byte-identical.
func emitCompanion(f *jen.File, t *Type) {
	emitTypeDecl(f, t)
	emitFactories(f, t)
	emitParentCtor(f, t)
	emitRoleCtor(f, t)
	if t.Mode == PropertyAccess {
		emitAccessors(f, t)
	}
	for _, n := range t.Nested {
		emitCompanion(f, n)
	}
}

// emitTypeDecl generates the companion struct and, for base types, the
// expression contract check.
func emitTypeDecl(f *jen.File, t *Type) {
	f.Commentf("%s is the typed query companion of %s.", t.Companion, t.Name)
	f.Type().Id(t.Companion).StructFunc(func(group *jen.Group) {
		if t.HasSuper() {
			group.Add(companionType(t.Super))
		} else {
			group.Qual(exprPkg, "EntityPath").Index(modelType(t))
		}
		if len(t.Members) > 0 {
			group.Line()
		}
		for _, m := range t.Members {
			group.Id(t.memberIdent(m)).Add(memberType(m))
		}
	})
	if !t.HasSuper() {
		f.Var().Id("_").Qual(exprPkg, "PersistableExpression").Op("=").
			Parens(jen.Op("*").Id(t.Companion)).Call(jen.Nil())
	}
}

// emitFactories generates the default candidate variable and the four
// static factory functions.
func emitFactories(f *jen.File, t *Type) {
	this := t.Companion + "This"
	f.Commentf("%s is the default candidate companion of %s.", this, t.Name)
	f.Var().Id(this).Op("=").Id(t.Companion + "CandidateNamed").Call(jen.Lit("this"))

	f.Commentf("%sCandidateNamed returns a candidate companion rooted under the given name.", t.Companion)
	f.Func().Id(t.Companion+"CandidateNamed").Params(jen.Id("name").String()).Op("*").Id(t.Companion).Block(
		jen.Return(jen.Id("New" + t.Companion).Call(jen.Nil(), jen.Id("name"), jen.Lit(t.EffectiveDepth()))),
	)

	f.Commentf("%sCandidate returns the default candidate companion.", t.Companion)
	f.Func().Id(t.Companion+"Candidate").Params().Op("*").Id(t.Companion).Block(
		jen.Return(jen.Id(this)),
	)

	f.Commentf("%sParameter returns a companion bound to the named query parameter.", t.Companion)
	f.Func().Id(t.Companion+"Parameter").Params(jen.Id("name").String()).Op("*").Id(t.Companion).Block(
		jen.Return(jen.Id("New" + t.Companion + "Type").Call(
			jen.Qual("reflect", "TypeOf").Call(modelType(t).Values()),
			jen.Id("name"),
			jen.Qual(exprPkg, "Parameter"),
		)),
	)

	f.Commentf("%sVariable returns a companion bound to the named query variable.", t.Companion)
	f.Func().Id(t.Companion+"Variable").Params(jen.Id("name").String()).Op("*").Id(t.Companion).Block(
		jen.Return(jen.Id("New" + t.Companion + "Type").Call(
			jen.Qual("reflect", "TypeOf").Call(modelType(t).Values()),
			jen.Id("name"),
			jen.Qual(exprPkg, "Variable"),
		)),
	)
}

// emitParentCtor generates the constructor rooting the companion below
// a parent expression. In eager mode every member is initialized here;
// persistent references stop at the depth budget and leave nil.
func emitParentCtor(f *jen.File, t *Type) {
	ctor := "New" + t.Companion
	recv := t.Receiver()
	f.Commentf("%s returns a companion rooted at parent under the given name, expanding persistent references depth levels deep.", ctor)
	f.Func().Id(ctor).Params(
		jen.Id("parent").Qual(exprPkg, "PersistableExpression"),
		jen.Id("name").String(),
		jen.Id("depth").Int(),
	).Op("*").Id(t.Companion).BlockFunc(func(grp *jen.Group) {
		if t.HasSuper() {
			grp.Id(recv).Op(":=").Op("&").Id(t.Companion).Values(
				jen.Id(t.Super.Name).Op(":").Op("*").Add(companionFunc(t.Super, "New"+t.Super.Name)).
					Call(jen.Id("parent"), jen.Id("name"), jen.Id("depth")),
			)
		} else {
			grp.Id(recv).Op(":=").Op("&").Id(t.Companion).Values(
				jen.Id("EntityPath").Op(":").Qual(exprPkg, "NewPath").Index(modelType(t)).
					Call(jen.Id("parent"), jen.Id("name")),
			)
		}
		if t.Mode == FieldAccess {
			for _, m := range t.Members {
				if m.Category.Kind == KindReference {
					grp.If(jen.Id("depth").Op(">").Lit(0)).Block(
						jen.Id(recv).Dot(t.memberIdent(m)).Op("=").
							Add(companionFunc(m.Category.Target, "New"+m.Category.Target.Name)).
							Call(jen.Id(recv), jen.Lit(m.Path), jen.Id("depth").Op("-").Lit(1)),
					)
					continue
				}
				grp.Id(recv).Dot(t.memberIdent(m)).Op("=").Add(exprCtor(m)).
					Call(jen.Id(recv), jen.Lit(m.Path))
			}
		}
		grp.Return(jen.Id(recv))
	})
}

// emitRoleCtor generates the root constructor carrying the dynamic
// model type and the expression role. Persistent references are built
// at the full configured depth here, matching the candidate-independent
// roots of parameters and variables.
func emitRoleCtor(f *jen.File, t *Type) {
	ctor := "New" + t.Companion + "Type"
	recv := t.Receiver()
	f.Commentf("%s returns a root companion for the given model type and role.", ctor)
	f.Func().Id(ctor).Params(
		jen.Id("typ").Qual("reflect", "Type"),
		jen.Id("name").String(),
		jen.Id("role").Qual(exprPkg, "Role"),
	).Op("*").Id(t.Companion).BlockFunc(func(grp *jen.Group) {
		if t.HasSuper() {
			grp.Id(recv).Op(":=").Op("&").Id(t.Companion).Values(
				jen.Id(t.Super.Name).Op(":").Op("*").Add(companionFunc(t.Super, "New"+t.Super.Name+"Type")).
					Call(jen.Id("typ"), jen.Id("name"), jen.Id("role")),
			)
		} else {
			grp.Id(recv).Op(":=").Op("&").Id(t.Companion).Values(
				jen.Id("EntityPath").Op(":").Qual(exprPkg, "NewRootPath").Index(modelType(t)).
					Call(jen.Id("typ"), jen.Id("name"), jen.Id("role")),
			)
		}
		if t.Mode == FieldAccess {
			for _, m := range t.Members {
				if m.Category.Kind == KindReference {
					grp.Id(recv).Dot(t.memberIdent(m)).Op("=").
						Add(companionFunc(m.Category.Target, "New"+m.Category.Target.Name)).
						Call(jen.Id(recv), jen.Lit(m.Path), jen.Lit(t.EffectiveDepth()))
					continue
				}
				grp.Id(recv).Dot(t.memberIdent(m)).Op("=").Add(exprCtor(m)).
					Call(jen.Id(recv), jen.Lit(m.Path))
			}
		}
		grp.Return(jen.Id(recv))
	})
}

// emitAccessors generates the memoized member accessors of lazy mode.
// Memoization is unsynchronized; companions are not safe for concurrent
// first use.
func emitAccessors(f *jen.File, t *Type) {
	recv := t.Receiver()
	for _, m := range t.Members {
		f.Commentf("%s returns the %s member expression, built on first use.", m.Ident(), m.Path)
		f.Func().Params(jen.Id(recv).Op("*").Id(t.Companion)).Id(m.Ident()).Params().
			Add(memberType(m)).BlockFunc(func(grp *jen.Group) {
			var init *jen.Statement
			if m.Category.Kind == KindReference {
				init = companionFunc(m.Category.Target, "New"+m.Category.Target.Name).
					Call(jen.Id(recv), jen.Lit(m.Path), jen.Lit(t.EffectiveDepth()))
			} else {
				init = exprCtor(m).Call(jen.Id(recv), jen.Lit(m.Path))
			}
			grp.If(jen.Id(recv).Dot(m.Backing()).Op("==").Nil()).Block(
				jen.Id(recv).Dot(m.Backing()).Op("=").Add(init),
			)
			grp.Return(jen.Id(recv).Dot(m.Backing()))
		})
	}
}

// memberIdent returns the identifier a member is declared under in this
// type's companion: the exported name in eager mode, the backing field
// name in lazy-mode struct declarations.
func (t *Type) memberIdent(m *Member) string {
	if t.Mode == PropertyAccess {
		return m.Backing()
	}
	return m.Ident()
}

// memberType renders the declared type of a member: the expression
// contract of its category, or a pointer to the target companion for
// persistent references.
func memberType(m *Member) *jen.Statement {
	switch m.Category.Kind {
	case KindReference:
		return jen.Op("*").Add(companionType(m.Category.Target))
	case KindNumeric, KindOptional:
		return jen.Qual(exprPkg, m.Category.Kind.ExprName()).Index(goType(m.Category.Arg))
	default:
		return jen.Qual(exprPkg, m.Category.Kind.ExprName())
	}
}

// exprCtor renders the expression constructor reference of a
// non-reference member, with the type argument parameterized kinds
// carry.
func exprCtor(m *Member) *jen.Statement {
	ctor := jen.Qual(exprPkg, m.Category.Kind.CtorName())
	switch m.Category.Kind {
	case KindNumeric, KindOptional:
		return ctor.Index(goType(m.Category.Arg))
	default:
		return ctor
	}
}

// companionType renders a companion type reference, package-qualified
// when the target companion lives in a foreign package.
func companionType(c *Companion) *jen.Statement {
	if c.PkgPath != "" {
		return jen.Qual(c.PkgPath, c.Name)
	}
	return jen.Id(c.Name)
}

// companionFunc renders a reference to a function declared next to the
// given companion.
func companionFunc(c *Companion, name string) *jen.Statement {
	if c.PkgPath != "" {
		return jen.Qual(c.PkgPath, name)
	}
	return jen.Id(name)
}

// modelType renders the model type of the companion. The emitted file
// lives in the model's own package, so the qualifier collapses there.
// Parameterized models are instantiated with the first bound of each
// type parameter, the same substitution their members classify under.
func modelType(t *Type) *jen.Statement {
	code := jen.Qual(t.PkgPath(), t.Name)
	params := t.schema.TypeParams
	if len(params) == 0 {
		return code
	}
	args := make([]jen.Code, len(params))
	for i, p := range params {
		if p.Bound != nil {
			args[i] = goType(p.Bound)
		} else {
			args[i] = jen.Any()
		}
	}
	return code.Index(args...)
}

// goType renders the Go spelling of a loaded type reference, used for
// the type arguments of numeric and optional expressions.
func goType(ref *load.TypeRef) jen.Code {
	switch ref.Kind {
	case load.RefPointer:
		return jen.Op("*").Add(goType(ref.Elem))
	case load.RefSlice:
		return jen.Index().Add(goType(ref.Elem))
	case load.RefArray:
		return jen.Index(jen.Id(ref.Name)).Add(goType(ref.Elem))
	case load.RefMap:
		return jen.Map(goType(ref.Key)).Add(goType(ref.Value))
	case load.RefStruct:
		return jen.Struct()
	case load.RefInterface, load.RefChan, load.RefFunc:
		return jen.Any()
	}
	var code *jen.Statement
	if ref.PkgPath != "" {
		code = jen.Qual(ref.PkgPath, ref.Name)
	} else {
		code = jen.Id(ref.Name)
	}
	if len(ref.Args) == 0 {
		return code
	}
	args := make([]jen.Code, len(ref.Args))
	for i, a := range ref.Args {
		args[i] = goType(a)
	}
	return code.Index(args...)
}
