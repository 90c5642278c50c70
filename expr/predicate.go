package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// P is a predicate over typed path expressions. Predicates are built
// from companion members and combined with And, Or and Not; String
// renders the tree in query syntax.
type P interface {
	fmt.Stringer

	// Negate returns the negation of the predicate.
	Negate() P
}

// And returns a predicate that holds when all predicates hold.
func And(x, y P, z ...P) P {
	if len(z) == 0 {
		return binaryP{op: "&&", x: predOp{x}, y: predOp{y}}
	}
	return naryP{op: "&&", ps: append([]P{x, y}, z...)}
}

// Or returns a predicate that holds when at least one predicate holds.
func Or(x, y P, z ...P) P {
	if len(z) == 0 {
		return binaryP{op: "||", x: predOp{x}, y: predOp{y}}
	}
	return naryP{op: "||", ps: append([]P{x, y}, z...)}
}

// Not returns the negation of the given predicate.
func Not(p P) P {
	return notP{p}
}

// operand is one side of a rendered comparison.
type operand interface {
	fmt.Stringer
}

// pathOp renders the dotted path of an expression.
type pathOp struct {
	e Expression
}

func (o pathOp) String() string { return o.e.PathString() }

// valueOp renders a literal comparison value.
type valueOp struct {
	v any
}

func (o valueOp) String() string {
	switch v := o.v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return strconv.Quote(v.String())
	default:
		return fmt.Sprintf("%v", v)
	}
}

// listOp renders an in-list of values.
type listOp struct {
	vs []any
}

func (o listOp) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range o.vs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(valueOp{o.vs[i]}.String())
	}
	b.WriteByte(']')
	return b.String()
}

// predOp embeds a sub-predicate as an operand.
type predOp struct {
	p P
}

func (o predOp) String() string { return o.p.String() }

// binaryP is an infix comparison or a two-operand connective.
type binaryP struct {
	op   string
	x, y operand
}

func (p binaryP) String() string {
	return p.x.String() + " " + p.op + " " + p.y.String()
}

func (p binaryP) Negate() P { return notP{p} }

// naryP is a parenthesized connective over three or more predicates.
type naryP struct {
	op string
	ps []P
}

func (p naryP) String() string {
	parts := make([]string, len(p.ps))
	for i := range p.ps {
		parts[i] = p.ps[i].String()
	}
	return "(" + strings.Join(parts, " "+p.op+" ") + ")"
}

func (p naryP) Negate() P { return notP{p} }

// notP negates its operand.
type notP struct {
	p P
}

func (p notP) String() string { return "!(" + p.p.String() + ")" }

func (p notP) Negate() P { return notP{p} }

// callP is a function-style predicate such as contains(path, v).
type callP struct {
	fn   string
	args []operand
}

func (p callP) String() string {
	parts := make([]string, len(p.args))
	for i := range p.args {
		parts[i] = p.args[i].String()
	}
	return p.fn + "(" + strings.Join(parts, ", ") + ")"
}

func (p callP) Negate() P { return notP{p} }

func cmp(op string, e Expression, v any) P {
	return binaryP{op: op, x: pathOp{e}, y: valueOp{v}}
}

func inList(e Expression, vs []any, negated bool) P {
	op := "in"
	if negated {
		op = "not in"
	}
	return binaryP{op: op, x: pathOp{e}, y: listOp{vs}}
}

func call(fn string, e Expression, args ...any) P {
	ops := make([]operand, 0, len(args)+1)
	ops = append(ops, pathOp{e})
	for _, a := range args {
		ops = append(ops, valueOp{a})
	}
	return callP{fn: fn, args: ops}
}
