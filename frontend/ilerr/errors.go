package ilerr

import (
	"fmt"
	"github.com/cottand/systemf/frontend/ast"
	"go/token"
	"runtime/debug"
	"strings"
)

// PrintStacks makes errors include the frame they were created at when printed
var PrintStacks = false

// stackFrameLine is the line of a debug.Stack trace naming the caller of New
const stackFrameLine = 6

type ErrCode int

const (
	None ErrCode = iota
	Parse
	UndefinedVariable
	TypeMismatch
	UnexpectedTerm
)

type IleError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if PrintStacks && e.getStack() != nil {
		lines := strings.Split(string(e.getStack()), "\n")
		if len(lines) > stackFrameLine {
			return fmt.Sprintf("%s:(E%03d) %s", strings.TrimSpace(lines[stackFrameLine]), e.Code(), e.Error())
		}
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// New records where err was created and returns it
func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewParse struct {
	ast.Positioner
	ParserMessage string
	Line, Column  int
	stack         []byte
}

func (e NewParse) Error() string {
	return e.ParserMessage
}
func (e NewParse) Code() ErrCode    { return Parse }
func (e NewParse) getStack() []byte { return e.stack }
func (e NewParse) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewUndefinedVariable is raised when a variable reference
// has no binding in the current typing context
type NewUndefinedVariable struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUndefinedVariable) Code() ErrCode { return UndefinedVariable }
func (e NewUndefinedVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUndefinedVariable) getStack() []byte { return e.stack }
func (e NewUndefinedVariable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewTypeMismatch is raised when an argument's type is not
// structurally equal to the parameter type of the abstraction it is applied to
type NewTypeMismatch struct {
	Term     ast.Term
	Expected ast.Type
	Got      ast.Type
	stack    []byte
}

func (e NewTypeMismatch) Pos() token.Pos { return e.Term.Pos() }
func (e NewTypeMismatch) End() token.Pos { return e.Term.End() }
func (e NewTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected term '%s' to have type '%s', but it has type '%s'",
		ast.TermString(e.Term), ast.TypeString(e.Expected), ast.TypeString(e.Got))
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewUnexpectedTerm is raised when a position that syntactically requires
// some construct (like an abstraction) holds a different term
type NewUnexpectedTerm struct {
	// Expected describes the construct that was required
	Expected string
	Got      ast.Term
	stack    []byte
}

func (e NewUnexpectedTerm) Pos() token.Pos { return e.Got.Pos() }
func (e NewUnexpectedTerm) End() token.Pos { return e.Got.End() }
func (e NewUnexpectedTerm) Error() string {
	return fmt.Sprintf("expected %s, but got %s '%s'", e.Expected, e.Got.Describe(), ast.TermString(e.Got))
}
func (e NewUnexpectedTerm) Code() ErrCode    { return UnexpectedTerm }
func (e NewUnexpectedTerm) getStack() []byte { return e.stack }
func (e NewUnexpectedTerm) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
