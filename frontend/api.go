package frontend

import (
	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/ilerr"
	"github.com/cottand/systemf/frontend/infer"
	"github.com/cottand/systemf/frontend/types"
	"github.com/cottand/systemf/internal/log"
	"github.com/cottand/systemf/parser"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "frontend")

// Result is a successfully checked term
type Result struct {
	Term ast.Term
	Type ast.Type
}

// Check parses source as a term of calculus and infers its type in the empty context.
//
// Syntax and type errors are reported in the returned *ilerr.Errors.
// The error is only non-nil for failures which are not the program's fault.
func Check(source string, calculus ast.Calculus) (*Result, *ilerr.Errors, error) {
	return CheckIn(types.NewContext(), source, calculus)
}

// CheckIn is Check, but inference starts from ctx rather than the empty context
func CheckIn(ctx types.Context, source string, calculus ast.Calculus) (*Result, *ilerr.Errors, error) {
	term, errs, err := parser.ParseTerm(source, parser.WithCalculus(calculus))
	if err != nil || errs.HasError() {
		return nil, errs, err
	}
	return CheckTerm(ctx, term)
}

// CheckTerm infers the type of an already parsed term in ctx
func CheckTerm(ctx types.Context, term ast.Term) (*Result, *ilerr.Errors, error) {
	t, err := infer.InferIn(ctx, term)
	if err != nil {
		var ileErr ilerr.IleError
		if !errors.As(err, &ileErr) {
			return nil, (&ilerr.Errors{}).With(ilerr.New(ilerr.Unclassified{
				From:       err,
				Positioner: term,
			})), nil
		}
		logger.Debug("type error", "term", term, "error", ileErr.Error())
		return nil, (&ilerr.Errors{}).With(ileErr), nil
	}
	return &Result{Term: term, Type: t}, nil, nil
}
