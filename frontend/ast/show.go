package ast

import (
	"strconv"
	"strings"
)

// precedence of the position a node is printed in
const (
	precTop   int8 = iota // binders may extend to the right
	precLeft              // left of an arrow, or in function position
	precAtom              // only atoms print without parentheses
)

// TypeString renders t in the concrete syntax accepted by the parser
func TypeString(t Type) string {
	ctx := newShowContext()
	ctx.showType(t, precTop)
	return ctx.String()
}

// TermString renders term in the concrete syntax accepted by the parser
func TermString(term Term) string {
	ctx := newShowContext()
	ctx.showTerm(term, precTop)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func newShowContext() *showContext {
	return &showContext{Builder: &strings.Builder{}}
}

func (ctx *showContext) parenthesise(needed bool, show func()) {
	if needed {
		ctx.WriteByte('(')
		defer ctx.WriteByte(')')
	}
	show()
}

func (ctx *showContext) showType(t Type, outer int8) {
	switch t := t.(type) {
	case nil:
		ctx.WriteString("nil")
	case *IntType:
		ctx.WriteString("Int")
	case *TypeVar:
		ctx.WriteString(t.Name)
	case *Arrow:
		ctx.parenthesise(outer > precTop, func() {
			ctx.showType(t.Param, precLeft)
			ctx.WriteString(" -> ")
			ctx.showType(t.Result, precTop)
		})
	case *Forall:
		ctx.parenthesise(outer > precTop, func() {
			ctx.WriteString("∀")
			ctx.WriteString(t.TypeVar)
			ctx.WriteString(": ")
			ctx.WriteString(t.Kind.String())
			ctx.WriteString(". ")
			ctx.showType(t.Body, precTop)
		})
	default:
		panic("unhandled type " + t.Describe())
	}
}

func (ctx *showContext) showTerm(term Term, outer int8) {
	switch term := term.(type) {
	case nil:
		ctx.WriteString("nil")
	case *Int:
		ctx.WriteString(strconv.Itoa(int(term.Value)))
	case *Var:
		ctx.WriteString(term.Name)
	case *App:
		ctx.parenthesise(outer > precLeft, func() {
			ctx.showTerm(term.Func, precLeft)
			ctx.WriteByte(' ')
			ctx.showTerm(term.Arg, precAtom)
		})
	case *UniversalApp:
		ctx.parenthesise(outer > precLeft, func() {
			ctx.showTerm(term.Term, precLeft)
			ctx.WriteString(" [")
			ctx.showType(term.TypeArg, precTop)
			ctx.WriteByte(']')
		})
	case *Abs:
		ctx.parenthesise(outer > precTop, func() {
			ctx.WriteString("λ")
			ctx.WriteString(term.ParamName)
			ctx.WriteString(": ")
			ctx.showType(term.ParamType, precTop)
			ctx.WriteString(". ")
			ctx.showTerm(term.Body, precTop)
		})
	case *UniversalAbs:
		ctx.parenthesise(outer > precTop, func() {
			ctx.WriteString("Λ")
			ctx.WriteString(term.TypeVar)
			ctx.WriteString(": ")
			ctx.WriteString(term.Kind.String())
			ctx.WriteString(". ")
			ctx.showTerm(term.Body, precTop)
		})
	default:
		panic("unhandled term " + term.Describe())
	}
}
