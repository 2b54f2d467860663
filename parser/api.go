package parser

import (
	"go/token"
	"io"
	"unicode/utf8"

	"github.com/antlr4-go/antlr/v4"
	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/ilerr"
	"github.com/cottand/systemf/internal/log"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "parser")

type settings struct {
	calculus  ast.Calculus
	listeners []antlr.ErrorListener
}

type Option func(*settings)

// WithCalculus restricts the accepted syntax. The default is ast.SystemF.
func WithCalculus(calculus ast.Calculus) Option {
	return func(s *settings) {
		s.calculus = calculus
	}
}

// WithErrorListeners makes listeners receive syntax errors too,
// for example antlr.ConsoleErrorListenerINSTANCE
func WithErrorListeners(listeners ...antlr.ErrorListener) Option {
	return func(s *settings) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// ParseTerm parses source into a term.
//
// Syntax errors are reported in the returned *ilerr.Errors, in which case the term is nil.
// The error is only non-nil when the parser itself failed.
func ParseTerm(source string, opts ...Option) (ast.Term, *ilerr.Errors, error) {
	var term ast.Term
	errs, err := run(source, opts, func(p *parser) {
		term = p.parseTerm()
		p.expect(tokEOF)
	})
	if errs.HasError() || err != nil {
		return nil, errs, err
	}
	logger.Debug("parsed term", "term", term)
	return term, nil, nil
}

// ParseType parses source into a type, see ParseTerm
func ParseType(source string, opts ...Option) (ast.Type, *ilerr.Errors, error) {
	var t ast.Type
	errs, err := run(source, opts, func(p *parser) {
		t = p.parseType()
		p.expect(tokEOF)
	})
	if errs.HasError() || err != nil {
		return nil, errs, err
	}
	return t, nil, nil
}

// ParseReader reads all of r and parses it with ParseTerm
func ParseReader(r io.Reader, opts ...Option) (ast.Term, string, *ilerr.Errors, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, "", nil, errors.Wrap(err, "could not read source")
	}
	term, errs, err := ParseTerm(string(source), opts...)
	return term, string(source), errs, err
}

func run(source string, opts []Option, parse func(*parser)) (errs *ilerr.Errors, err error) {
	collected := newErrorListener()
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	s.listeners = append([]antlr.ErrorListener{collected}, s.listeners...)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(bailout); !ok {
			err = errors.Errorf("parser panicked: %v", r)
		}
		errs = collected.result()
	}()
	parse(newParser(source, s))
	return collected.result(), nil
}

// IsIncomplete reports whether parsing source failed only because it ended too early,
// so that interactive callers can ask for more input
func IsIncomplete(source string, errs *ilerr.Errors) bool {
	end := token.Pos(utf8.RuneCountInString(source) + 1)
	for _, err := range errs.Errors() {
		if err.Code() == ilerr.Parse && err.Pos() == end {
			return true
		}
	}
	return false
}
