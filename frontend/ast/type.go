package ast

// Kind classifies types. The calculus has a single kind, Star.
type Kind uint8

const (
	// Star ('*') is the kind of all proper types
	Star Kind = iota
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "*"
	default:
		return "invalid"
	}
}

// Type is a type expression as written in annotations or produced by inference.
//
// Types carry no positions: two types are equal if and only if
// their trees are identical, see TypesEqual.
type Type interface {
	// Describe is what to call this type in error messages
	Describe() string
	typeNode()
}

var (
	_ Type = (*IntType)(nil)
	_ Type = (*Arrow)(nil)
	_ Type = (*TypeVar)(nil)
	_ Type = (*Forall)(nil)
)

// IntType is the base type of integers
type IntType struct{}

// Arrow is the function type Param -> Result
type Arrow struct {
	Param  Type
	Result Type
}

// TypeVar references a type variable by name,
// bound by an enclosing Forall or free
type TypeVar struct {
	Name string
}

// Forall is universal quantification: ∀TypeVar: Kind. Body
type Forall struct {
	TypeVar string
	Kind    Kind
	Body    Type
}

// Param is the type a type abstraction is applied to,
// which is always the bound variable itself.
func (t *Forall) Param() Type { return &TypeVar{Name: t.TypeVar} }

func (*IntType) typeNode() {}
func (*Arrow) typeNode()   {}
func (*TypeVar) typeNode() {}
func (*Forall) typeNode()  {}

func (*IntType) Describe() string { return "integer type" }
func (*Arrow) Describe() string   { return "function type" }
func (*TypeVar) Describe() string { return "type variable" }
func (*Forall) Describe() string  { return "universal type" }

// TypesEqual is structural equality over types, including the
// names of bound variables. It is the only notion of type compatibility.
func TypesEqual(this, that Type) bool {
	switch this := this.(type) {
	case *IntType:
		_, ok := that.(*IntType)
		return ok
	case *Arrow:
		that, ok := that.(*Arrow)
		return ok && TypesEqual(this.Param, that.Param) && TypesEqual(this.Result, that.Result)
	case *TypeVar:
		that, ok := that.(*TypeVar)
		return ok && this.Name == that.Name
	case *Forall:
		that, ok := that.(*Forall)
		return ok && this.TypeVar == that.TypeVar && this.Kind == that.Kind && TypesEqual(this.Body, that.Body)
	case nil:
		return that == nil
	default:
		panic("unhandled type " + this.Describe())
	}
}
