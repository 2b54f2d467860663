package types

import (
	"iter"
	"log/slog"
	"sort"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/systemf/frontend/ast"
	"github.com/samber/lo"
	sortedset "github.com/xtgo/set"
)

type assignment struct {
	name string
	typ  ast.Type
}

// Context is the typing environment Γ: an association list from
// variable names to types, most recent assignment first.
//
// A Context is persistent. Assign never changes the receiver, so sibling
// branches of the inference can keep typing from the same parent Context,
// and concurrent use needs no locking.
//
// The zero value is the empty Context.
type Context struct {
	assignments *immutable.List[assignment]
}

func NewContext() Context {
	return Context{assignments: immutable.NewList[assignment]()}
}

func (c Context) list() *immutable.List[assignment] {
	if c.assignments == nil {
		return immutable.NewList[assignment]()
	}
	return c.assignments
}

// Assign returns a new Context where name resolves to t
func (c Context) Assign(name string, t ast.Type) Context {
	return Context{assignments: c.list().Prepend(assignment{name: name, typ: t})}
}

// Lookup returns the type of the nearest assignment of name
func (c Context) Lookup(name string) (ast.Type, bool) {
	for assignedName, t := range c.All() {
		if assignedName == name {
			return t, true
		}
	}
	return nil, false
}

// Len is the number of assignments, including shadowed ones
func (c Context) Len() int {
	return c.list().Len()
}

// All iterates over the assignments, nearest first. Shadowed assignments are included.
func (c Context) All() iter.Seq2[string, ast.Type] {
	return func(yield func(string, ast.Type) bool) {
		itr := c.list().Iterator()
		for !itr.Done() {
			_, assigned := itr.Next()
			if !yield(assigned.name, assigned.typ) {
				return
			}
		}
	}
}

// Names returns the names in scope, sorted and without duplicates
func (c Context) Names() []string {
	names := make(sort.StringSlice, 0, c.Len())
	for name := range c.All() {
		names = append(names, name)
	}
	sort.Sort(names)
	return names[:sortedset.Uniq(names)]
}

// Visible returns the type of every name in scope, shadowed assignments excluded,
// in the order of Names
func (c Context) Visible() []Binding {
	return lo.Map(c.Names(), func(name string, _ int) Binding {
		t, _ := c.Lookup(name)
		return Binding{Name: name, Type: t}
	})
}

// Binding is a name in scope together with its type
type Binding struct {
	Name string
	Type ast.Type
}

func (c Context) LogValue() slog.Value {
	return slog.GroupValue(lo.Map(c.Visible(), func(b Binding, _ int) slog.Attr {
		return slog.String(b.Name, ast.TypeString(b.Type))
	})...)
}
