// Package infer implements syntax-directed type inference for System F.
//
// Every binder is annotated, so inference never guesses: each term constructor
// has exactly one rule, and the first rule that fails aborts the whole walk.
//
//	Γ(x) = τ
//	--------
//	Γ ⊢ x: τ
//
//	Γ ⊢ t: σ    Γ, x: σ ⊢ t': τ
//	---------------------------
//	   Γ ⊢ (λx: σ. t') t: τ
//
//	    Γ, x: σ ⊢ t: τ
//	----------------------
//	Γ ⊢ (λx: σ. t): σ -> τ
//
//	        Γ ⊢ t: τ
//	----------------------------
//	Γ ⊢ (Λα: κ. t): (∀α: κ. τ)
//
//	Γ ⊢ t: (∀α: κ. τ)
//	-----------------
//	Γ ⊢ t [σ]: τ[σ/α]
package infer

import (
	"log/slog"

	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/ilerr"
	"github.com/cottand/systemf/frontend/types"
	"github.com/cottand/systemf/internal/log"
)

var logger = log.DefaultLogger.With("section", "infer")

var defaultChecker = NewChecker(logger)

// Infer returns the type of term in the empty context
func Infer(term ast.Term) (ast.Type, error) {
	return defaultChecker.Infer(term)
}

// InferIn returns the type of term in ctx
func InferIn(ctx types.Context, term ast.Term) (ast.Type, error) {
	return defaultChecker.InferIn(ctx, term)
}

// Checker infers types of terms. It holds no state besides its logger,
// so a single Checker can be used concurrently.
type Checker struct {
	logger *slog.Logger
}

func NewChecker(logger *slog.Logger) *Checker {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Checker{logger: logger}
}

// Infer returns the type of term in the empty context.
//
// Errors are ilerr.IleError values: ilerr.NewUndefinedVariable,
// ilerr.NewTypeMismatch or ilerr.NewUnexpectedTerm.
func (c *Checker) Infer(term ast.Term) (ast.Type, error) {
	return c.InferIn(types.NewContext(), term)
}

func (c *Checker) InferIn(ctx types.Context, term ast.Term) (ast.Type, error) {
	t, err := c.typeOf(ctx, term)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("inferred type", "term", term, "type", t, "context", ctx)
	return t, nil
}

func (c *Checker) typeOf(ctx types.Context, term ast.Term) (ast.Type, error) {
	switch term := term.(type) {
	case *ast.Int:
		return &ast.IntType{}, nil

	case *ast.Var:
		t, ok := ctx.Lookup(term.Name)
		if !ok {
			return nil, ilerr.New(ilerr.NewUndefinedVariable{
				Positioner: term,
				Name:       term.Name,
			})
		}
		return t, nil

	case *ast.App:
		// only literal abstractions can be applied, see the App rule above
		abs, ok := term.Func.(*ast.Abs)
		if !ok {
			return nil, ilerr.New(ilerr.NewUnexpectedTerm{
				Expected: "abstraction",
				Got:      term.Func,
			})
		}
		argType, err := c.typeOf(ctx, term.Arg)
		if err != nil {
			return nil, err
		}
		if !ast.TypesEqual(abs.ParamType, argType) {
			return nil, ilerr.New(ilerr.NewTypeMismatch{
				Term:     term.Arg,
				Expected: abs.ParamType,
				Got:      argType,
			})
		}
		return c.typeOf(ctx.Assign(abs.ParamName, abs.ParamType), abs.Body)

	case *ast.Abs:
		bodyType, err := c.typeOf(ctx.Assign(term.ParamName, term.ParamType), term.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{Param: term.ParamType, Result: bodyType}, nil

	case *ast.UniversalAbs:
		// type variables are not tracked in Γ
		bodyType, err := c.typeOf(ctx, term.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Forall{TypeVar: term.TypeVar, Kind: term.Kind, Body: bodyType}, nil

	case *ast.UniversalApp:
		t, err := c.typeOf(ctx, term.Term)
		if err != nil {
			return nil, err
		}
		forall, ok := t.(*ast.Forall)
		if !ok {
			return nil, ilerr.New(ilerr.NewUnexpectedTerm{
				Expected: "type abstraction",
				Got:      term.Term,
			})
		}
		c.warnUnsound(term, forall)
		return types.Substitute(forall.TypeVar, forall.Body, term.TypeArg), nil

	default:
		panic("unhandled term " + term.Describe())
	}
}

// warnUnsound logs when instantiating forall with the type argument of app
// hits one of the known gaps of types.Substitute
func (c *Checker) warnUnsound(app *ast.UniversalApp, forall *ast.Forall) {
	if captured := types.Captures(forall.TypeVar, forall.Body, app.TypeArg); len(captured) > 0 {
		c.logger.Warn("type application captures free type variables of its argument",
			"term", app, "forall", forall, "captured", captured)
	}
	if types.Shadows(forall.TypeVar, forall.Body) {
		c.logger.Warn("type application substitutes under a binder that shadows its variable",
			"term", app, "forall", forall)
	}
}
