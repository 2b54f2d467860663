package ilerr_test

import (
	"go/token"
	"testing"

	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/ilerr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLineColumn(t *testing.T) {
	source := "λx: Int.\n  x"
	cases := []struct {
		pos          token.Pos
		line, column int
		ok           bool
	}{
		{1, 1, 1, true},
		{2, 1, 2, true},
		{9, 1, 9, true},
		{10, 2, 1, true},
		{12, 2, 3, true},
		// just past the end
		{13, 2, 4, true},
		{14, 0, 0, false},
		{token.NoPos, 0, 0, false},
	}
	for _, c := range cases {
		line, column, ok := ilerr.LineColumn(source, c.pos)
		assert.Equal(t, c.ok, ok, "pos %d", c.pos)
		if c.ok {
			assert.Equal(t, c.line, line, "line of pos %d", c.pos)
			assert.Equal(t, c.column, column, "column of pos %d", c.pos)
		}
	}
}

func TestFormatWithCode(t *testing.T) {
	err := ilerr.New(ilerr.NewUndefinedVariable{Name: "y", Positioner: ast.Range{}})
	assert.Equal(t, "(E002) variable 'y' is not defined", ilerr.FormatWithCode(err))
}

func TestFormatWithCodeAndSource(t *testing.T) {
	source := "(λx: Int. x)\n  (λy: Int. y)"
	arg := &ast.Abs{
		Range:     ast.Range{PosStart: 17, PosEnd: 27},
		ParamName: "y",
		ParamType: &ast.IntType{},
		Body:      &ast.Var{Range: ast.Range{PosStart: 26, PosEnd: 27}, Name: "y"},
	}
	err := ilerr.New(ilerr.NewTypeMismatch{
		Term:     arg,
		Expected: &ast.IntType{},
		Got:      &ast.Arrow{Param: &ast.IntType{}, Result: &ast.IntType{}},
	})

	expected := "2:4: (E003) type mismatch: expected term 'λy: Int. y' to have type 'Int', but it has type 'Int -> Int'\n" +
		"      (λy: Int. y)\n" +
		"       ^^^^^^^^^^"
	assert.Equal(t, expected, ilerr.FormatWithCodeAndSource(err, source))
}

func TestFormatWithoutPosition(t *testing.T) {
	err := ilerr.New(ilerr.Unclassified{From: errors.New("boom"), Positioner: ast.Range{}})
	assert.Equal(t, "(E000) unclassified error: boom", ilerr.FormatWithCodeAndSource(err, "1"))
}

func TestUnclassifiedUnwraps(t *testing.T) {
	cause := errors.New("cause")
	err := ilerr.New(ilerr.Unclassified{From: errors.Wrap(cause, "wrapped"), Positioner: ast.Range{}})
	assert.ErrorIs(t, err, cause)
}

func TestErrors(t *testing.T) {
	var errs *ilerr.Errors
	assert.False(t, errs.HasError())
	assert.Empty(t, errs.Errors())

	errs = errs.With(ilerr.New(ilerr.NewUndefinedVariable{Name: "a", Positioner: ast.Range{}}))
	other := (&ilerr.Errors{}).With(ilerr.New(ilerr.NewUndefinedVariable{Name: "b", Positioner: ast.Range{}}))
	errs = errs.Merge(other).Merge(nil)

	assert.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t, "(E002) variable 'a' is not defined\n(E002) variable 'b' is not defined", errs.Error())
}
