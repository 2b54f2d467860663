package ast

import (
	"fmt"
	"go/token"
)

// Positioner allows finding the location of a node in the parsed source.
//
// Positions are 1-based rune offsets into the parsed source,
// and token.NoPos for nodes that were not produced by the parser.
type Positioner interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Range represents a range of positions in the source code.
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

// Pos returns the starting position of the range.
func (r Range) Pos() token.Pos { return r.PosStart }

// End returns the ending position of the range.
func (r Range) End() token.Pos { return r.PosEnd }

// IsValid reports whether the range points into some source.
func (r Range) IsValid() bool { return r.PosStart.IsValid() }

// String returns a string representation of the range.
func (r Range) String() string {
	if r.PosStart == r.PosEnd {
		return fmt.Sprintf("%v", r.PosStart)
	}
	return fmt.Sprintf("%v-%v", r.PosStart, r.PosEnd)
}

// RangeBetween creates a Range between two Positioners.
func RangeBetween(fst, snd Positioner) Range {
	return Range{fst.Pos(), snd.End()}
}

// RangeOf creates a Range from a Positioner.
func RangeOf(node Positioner) Range {
	if node == nil {
		return Range{}
	}
	if asRange, ok := node.(*Range); ok {
		return *asRange
	}
	if asRange, ok := node.(Range); ok {
		return asRange
	}
	return Range{node.Pos(), node.End()}
}
