package types

import (
	"slices"

	"github.com/cottand/systemf/frontend/ast"
	"github.com/hashicorp/go-set/v3"
)

// Captures returns the binders of target that Substitute(typeVar, target, replacement)
// would wrongly capture: Forall binders enclosing an occurrence of typeVar whose
// name is free in replacement. The result is sorted and empty when the
// substitution is capture-free.
func Captures(typeVar string, target, replacement ast.Type) []string {
	free := set.From(FreeTypeVars(replacement))
	captured := set.New[string](0)
	if free.Empty() {
		return nil
	}
	var walk func(t ast.Type, binders []string)
	walk = func(t ast.Type, binders []string) {
		switch t := t.(type) {
		case *ast.TypeVar:
			if t.Name != typeVar {
				return
			}
			for _, binder := range binders {
				if free.Contains(binder) {
					captured.Insert(binder)
				}
			}
		case *ast.Arrow:
			walk(t.Param, binders)
			walk(t.Result, binders)
		case *ast.Forall:
			walk(t.Body, append(binders, t.TypeVar))
		}
	}
	walk(target, nil)

	result := captured.Slice()
	slices.Sort(result)
	return result
}

// Shadows reports whether target contains a Forall binding typeVar again
// with an occurrence of typeVar inside it: Substitute replaces those occurrences
// even though they refer to the inner binder.
func Shadows(typeVar string, target ast.Type) bool {
	switch t := target.(type) {
	case *ast.Arrow:
		return Shadows(typeVar, t.Param) || Shadows(typeVar, t.Result)
	case *ast.Forall:
		if t.TypeVar == typeVar {
			return occurs(typeVar, t.Body)
		}
		return Shadows(typeVar, t.Body)
	default:
		return false
	}
}

func occurs(typeVar string, t ast.Type) bool {
	switch t := t.(type) {
	case *ast.TypeVar:
		return t.Name == typeVar
	case *ast.Arrow:
		return occurs(typeVar, t.Param) || occurs(typeVar, t.Result)
	case *ast.Forall:
		return occurs(typeVar, t.Body)
	default:
		return false
	}
}
