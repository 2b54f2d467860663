package infer_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/ilerr"
	"github.com/cottand/systemf/frontend/infer"
	"github.com/cottand/systemf/frontend/types"
	"github.com/cottand/systemf/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrow(param, result ast.Type) ast.Type {
	return &ast.Arrow{Param: param, Result: result}
}

func forall(typeVar string, body ast.Type) ast.Type {
	return &ast.Forall{TypeVar: typeVar, Kind: ast.Star, Body: body}
}

func tv(name string) ast.Type { return &ast.TypeVar{Name: name} }

var intT = &ast.IntType{}

func abs(name string, t ast.Type, body ast.Term) ast.Term {
	return &ast.Abs{ParamName: name, ParamType: t, Body: body}
}

func v(name string) ast.Term { return &ast.Var{Name: name} }

func assertType(t *testing.T, expected, actual ast.Type) {
	t.Helper()
	assert.True(t, ast.TypesEqual(expected, actual),
		"expected %s, got %s", ast.TypeString(expected), ast.TypeString(actual))
}

func mustParse(t *testing.T, source string) ast.Term {
	t.Helper()
	term, errs, err := parser.ParseTerm(source)
	require.NoError(t, err)
	require.False(t, errs.HasError(), "syntax errors: %v", errs)
	return term
}

func assertCode(t *testing.T, code ilerr.ErrCode, err error) ilerr.IleError {
	t.Helper()
	var ileErr ilerr.IleError
	require.True(t, errors.As(err, &ileErr), "expected an IleError, got %v", err)
	assert.Equal(t, code, ileErr.Code(), "unexpected error: %v", ileErr)
	return ileErr
}

func TestIntLiteral(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 2147483647, -2147483648} {
		typ, err := infer.Infer(&ast.Int{Value: n})
		assert.NoError(t, err)
		assertType(t, intT, typ)
	}
}

func TestUnboundVariable(t *testing.T) {
	_, err := infer.Infer(v("x"))
	ileErr := assertCode(t, ilerr.UndefinedVariable, err)
	assert.Equal(t, "x", ileErr.(ilerr.NewUndefinedVariable).Name)
}

func TestBoundVariable(t *testing.T) {
	ctx := types.NewContext().Assign("f", arrow(intT, intT))
	typ, err := infer.InferIn(ctx, v("f"))
	assert.NoError(t, err)
	assertType(t, arrow(intT, intT), typ)
}

func TestInnerBindingShadowsOuter(t *testing.T) {
	term := abs("x", intT, abs("x", arrow(intT, intT), v("x")))
	typ, err := infer.Infer(term)
	assert.NoError(t, err)
	// the inner x has type Int -> Int
	assertType(t, arrow(intT, arrow(arrow(intT, intT), arrow(intT, intT))), typ)
}

func TestApplicationTypeMismatch(t *testing.T) {
	term := &ast.App{
		Func: abs("x", intT, v("x")),
		Arg:  abs("y", intT, v("y")),
	}
	_, err := infer.Infer(term)
	ileErr := assertCode(t, ilerr.TypeMismatch, err)
	mismatch := ileErr.(ilerr.NewTypeMismatch)
	assertType(t, intT, mismatch.Expected)
	assertType(t, arrow(intT, intT), mismatch.Got)
}

func TestApplication(t *testing.T) {
	typ, err := infer.Infer(mustParse(t, "(λf: Int -> Int. f) (λy: Int. y)"))
	assert.NoError(t, err)
	assertType(t, arrow(intT, intT), typ)

	typ, err = infer.Infer(mustParse(t, "(λx: Int. λy: Int. y) 3"))
	assert.NoError(t, err)
	assertType(t, arrow(intT, intT), typ)
}

func TestApplicationNeedsLiteralAbstraction(t *testing.T) {
	ctx := types.NewContext().Assign("f", arrow(intT, intT))
	_, err := infer.InferIn(ctx, mustParse(t, "f 1"))
	ileErr := assertCode(t, ilerr.UnexpectedTerm, err)
	assert.Equal(t, "abstraction", ileErr.(ilerr.NewUnexpectedTerm).Expected)

	// curried application has an application in function position
	_, err = infer.Infer(mustParse(t, "(λx: Int. λy: Int. x) 1 2"))
	assertCode(t, ilerr.UnexpectedTerm, err)
}

func TestArgumentErrorsComeFirst(t *testing.T) {
	_, err := infer.Infer(mustParse(t, "(λx: Int. undefinedInBody) undefinedArg"))
	ileErr := assertCode(t, ilerr.UndefinedVariable, err)
	assert.Equal(t, "undefinedArg", ileErr.(ilerr.NewUndefinedVariable).Name)
}

func TestPolymorphicIdentity(t *testing.T) {
	typ, err := infer.Infer(mustParse(t, "(ΛX: * . λx: X. x) [Int]"))
	assert.NoError(t, err)
	assertType(t, arrow(intT, intT), typ)

	typ, err = infer.Infer(mustParse(t, "ΛX: *. λx: X. x"))
	assert.NoError(t, err)
	assertType(t, forall("X", arrow(tv("X"), tv("X"))), typ)
}

func TestTypeApplicationOfNonPolymorphicTerm(t *testing.T) {
	term := &ast.UniversalApp{Term: abs("x", intT, v("x")), TypeArg: intT}
	_, err := infer.Infer(term)
	ileErr := assertCode(t, ilerr.UnexpectedTerm, err)
	assert.Equal(t, "type abstraction", ileErr.(ilerr.NewUnexpectedTerm).Expected)
}

func TestTypeApplicationOfPolymorphicVariable(t *testing.T) {
	ctx := types.NewContext().Assign("id", forall("X", arrow(tv("X"), tv("X"))))
	typ, err := infer.InferIn(ctx, mustParse(t, "id [Int -> Int]"))
	assert.NoError(t, err)
	assertType(t, arrow(arrow(intT, intT), arrow(intT, intT)), typ)
}

func TestTypeApplicationCapturesReplacement(t *testing.T) {
	// instantiating X with the free variable Y under ∀Y captures it
	term := mustParse(t, "(ΛX: *. ΛY: *. λx: X. x) [Y]")
	logs := &bytes.Buffer{}
	checker := infer.NewChecker(slog.New(slog.NewTextHandler(logs, nil)))

	typ, err := checker.Infer(term)
	assert.NoError(t, err)
	assertType(t, forall("Y", arrow(tv("Y"), tv("Y"))), typ)
	assert.Contains(t, logs.String(), "captures free type variables")
}

func TestTypeApplicationUnderShadowingBinder(t *testing.T) {
	term := mustParse(t, "(ΛX: *. ΛX: *. λx: X. x) [Int]")
	logs := &bytes.Buffer{}
	checker := infer.NewChecker(slog.New(slog.NewTextHandler(logs, nil)))

	typ, err := checker.Infer(term)
	assert.NoError(t, err)
	assertType(t, forall("X", arrow(intT, intT)), typ)
	assert.Contains(t, logs.String(), "shadows its variable")
}

func TestContextExtensionKeepsBindings(t *testing.T) {
	ctx := types.NewContext().Assign("x", intT).Assign("y", intT)
	typ, err := infer.InferIn(ctx, v("x"))
	assert.NoError(t, err)
	assertType(t, intT, typ)
}

func TestInferIsDeterministic(t *testing.T) {
	term := mustParse(t, "ΛX: *. λf: X -> X. λx: X. (λy: X. y) x")
	first, err := infer.Infer(term)
	require.NoError(t, err)
	for range 10 {
		again, err := infer.Infer(term)
		assert.NoError(t, err)
		assertType(t, first, again)
	}
}

func TestInferConcurrently(t *testing.T) {
	ctx := types.NewContext().Assign("n", intT)
	sources := []string{
		"n",
		"(λx: Int. x) n",
		"ΛX: *. λx: X. n",
		"(ΛX: *. λx: X. x) [Int -> Int]",
	}
	expected := make([]ast.Type, len(sources))
	for i, source := range sources {
		var err error
		expected[i], err = infer.InferIn(ctx, mustParse(t, source))
		require.NoError(t, err)
	}

	wg := sync.WaitGroup{}
	for range 8 {
		for i, source := range sources {
			wg.Add(1)
			go func() {
				defer wg.Done()
				term, _, _ := parser.ParseTerm(source)
				typ, err := infer.InferIn(ctx, term)
				assert.NoError(t, err)
				assertType(t, expected[i], typ)
			}()
		}
	}
	wg.Wait()
}

func TestErrorsCarryPositions(t *testing.T) {
	_, err := infer.Infer(mustParse(t, "(λx: Int. x) (λy: Int. y)"))
	ileErr := assertCode(t, ilerr.TypeMismatch, err)
	assert.EqualValues(t, 15, ileErr.Pos())
	assert.EqualValues(t, 25, ileErr.End())
}
