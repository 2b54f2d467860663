package types

import (
	"sort"

	"github.com/cottand/systemf/frontend/ast"
	sortedset "github.com/xtgo/set"
)

// FreeTypeVars returns the type variables of t which are not bound by
// an enclosing Forall, sorted and without duplicates
func FreeTypeVars(t ast.Type) []string {
	switch t := t.(type) {
	case *ast.IntType:
		return nil
	case *ast.TypeVar:
		return []string{t.Name}
	case *ast.Arrow:
		return union(FreeTypeVars(t.Param), FreeTypeVars(t.Result))
	case *ast.Forall:
		return difference(FreeTypeVars(t.Body), []string{t.TypeVar})
	default:
		panic("unhandled type " + t.Describe())
	}
}

// IsClosed reports whether t has no free type variables
func IsClosed(t ast.Type) bool {
	return len(FreeTypeVars(t)) == 0
}

// union and difference expect sorted sets and return a sorted set
func union(a, b []string) []string {
	data := concat(a, b)
	return data[:sortedset.Union(data, len(a))]
}

func difference(a, b []string) []string {
	data := concat(a, b)
	return data[:sortedset.Diff(data, len(a))]
}

func concat(a, b []string) sort.StringSlice {
	data := make(sort.StringSlice, 0, len(a)+len(b))
	data = append(data, a...)
	return append(data, b...)
}
