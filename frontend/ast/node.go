package ast

// Term is the base for all terms.
//
// The following terms are supported:
//
//	Int:           integer literal
//	Var:           variable reference
//	App:           term application, f x
//	Abs:           term abstraction, λx: T. t
//	UniversalAbs:  type abstraction, ΛX: *. t
//	UniversalApp:  type application, t [T]
//
// Terms exclusively own their children and are never mutated once built.
type Term interface {
	Positioner
	// Describe is what to call this term in error messages
	Describe() string
	termNode()
}

var (
	_ Term = (*Int)(nil)
	_ Term = (*Var)(nil)
	_ Term = (*App)(nil)
	_ Term = (*Abs)(nil)
	_ Term = (*UniversalAbs)(nil)
	_ Term = (*UniversalApp)(nil)
)

type Int struct {
	Range
	Value int32
}

type Var struct {
	Range
	Name string
}

type App struct {
	Range
	Func Term
	Arg  Term
}

type Abs struct {
	Range
	ParamName string
	ParamType Type
	Body      Term
}

type UniversalAbs struct {
	Range
	TypeVar string
	Kind    Kind
	Body    Term
}

type UniversalApp struct {
	Range
	Term    Term
	TypeArg Type
}

func (*Int) termNode()          {}
func (*Var) termNode()          {}
func (*App) termNode()          {}
func (*Abs) termNode()          {}
func (*UniversalAbs) termNode() {}
func (*UniversalApp) termNode() {}

func (e *Int) Describe() string          { return "int literal" }
func (e *Var) Describe() string          { return "variable" }
func (e *App) Describe() string          { return "application" }
func (e *Abs) Describe() string          { return "abstraction" }
func (e *UniversalAbs) Describe() string { return "type abstraction" }
func (e *UniversalApp) Describe() string { return "type application" }

// TermsEqual is structural equality over terms. Source ranges are ignored.
func TermsEqual(this, that Term) bool {
	switch this := this.(type) {
	case *Int:
		that, ok := that.(*Int)
		return ok && this.Value == that.Value
	case *Var:
		that, ok := that.(*Var)
		return ok && this.Name == that.Name
	case *App:
		that, ok := that.(*App)
		return ok && TermsEqual(this.Func, that.Func) && TermsEqual(this.Arg, that.Arg)
	case *Abs:
		that, ok := that.(*Abs)
		return ok && this.ParamName == that.ParamName &&
			TypesEqual(this.ParamType, that.ParamType) &&
			TermsEqual(this.Body, that.Body)
	case *UniversalAbs:
		that, ok := that.(*UniversalAbs)
		return ok && this.TypeVar == that.TypeVar && this.Kind == that.Kind && TermsEqual(this.Body, that.Body)
	case *UniversalApp:
		that, ok := that.(*UniversalApp)
		return ok && TermsEqual(this.Term, that.Term) && TypesEqual(this.TypeArg, that.TypeArg)
	case nil:
		return that == nil
	default:
		panic("unhandled term " + this.Describe())
	}
}
