package ast

// Calculus selects which fragment of the language is accepted
type Calculus uint8

const (
	// SystemF is the polymorphic lambda calculus, the default
	SystemF Calculus = iota
	// STLC is the simply-typed lambda calculus: no type abstraction,
	// type application, quantifiers or type variables
	STLC
)

func (c Calculus) String() string {
	switch c {
	case SystemF:
		return "System F"
	case STLC:
		return "simply-typed lambda calculus"
	default:
		return "invalid"
	}
}

// IsSimplyTyped reports whether term, including all of its annotations,
// stays inside the STLC fragment.
func IsSimplyTyped(term Term) bool {
	switch term := term.(type) {
	case *Int, *Var:
		return true
	case *App:
		return IsSimplyTyped(term.Func) && IsSimplyTyped(term.Arg)
	case *Abs:
		return IsSimpleType(term.ParamType) && IsSimplyTyped(term.Body)
	default:
		return false
	}
}

// IsSimpleType reports whether t is built from Int and arrows only.
func IsSimpleType(t Type) bool {
	switch t := t.(type) {
	case *IntType:
		return true
	case *Arrow:
		return IsSimpleType(t.Param) && IsSimpleType(t.Result)
	default:
		return false
	}
}
