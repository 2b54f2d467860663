package types

import "github.com/cottand/systemf/frontend/ast"

// Substitute returns target with every occurrence of the type variable typeVar
// replaced by replacement, that is target[replacement/typeVar].
//
// The substitution is not capture-avoiding: it recurses into the body of a Forall
// even when the Forall binds typeVar itself, and it never renames binders that
// would capture free variables of replacement. See Captures and Shadows to detect
// when either happens.
func Substitute(typeVar string, target, replacement ast.Type) ast.Type {
	switch target := target.(type) {
	case *ast.IntType:
		return target
	case *ast.Arrow:
		return &ast.Arrow{
			Param:  Substitute(typeVar, target.Param, replacement),
			Result: Substitute(typeVar, target.Result, replacement),
		}
	case *ast.TypeVar:
		if target.Name == typeVar {
			return replacement
		}
		return target
	case *ast.Forall:
		// TODO alpha-rename target.TypeVar when it is free in replacement
		return &ast.Forall{
			TypeVar: target.TypeVar,
			Kind:    target.Kind,
			Body:    Substitute(typeVar, target.Body, replacement),
		}
	default:
		panic("unhandled type " + target.Describe())
	}
}
