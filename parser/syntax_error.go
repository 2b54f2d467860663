package parser

import (
	"github.com/antlr4-go/antlr/v4"
	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/ilerr"
)

// errorListener collects syntax errors as ilerr.IleError values
type errorListener struct {
	*antlr.DefaultErrorListener // Embed default which ensures we fit the interface
	Errors                      []ilerr.IleError
}

func newErrorListener() *errorListener {
	return &errorListener{DefaultErrorListener: antlr.NewDefaultErrorListener()}
}

func (e *errorListener) SyntaxError(recognizer antlr.Recognizer, offendingSymbol interface{}, line, column int, msg string, ex antlr.RecognitionException) {
	var positioner ast.Positioner = ast.Range{}
	if tok, ok := offendingSymbol.(lexToken); ok {
		positioner = tok.Range()
	}
	e.Errors = append(e.Errors, ilerr.New(ilerr.NewParse{
		Positioner:    positioner,
		Line:          line,
		Column:        column,
		ParserMessage: msg,
	}))
}

func (e *errorListener) result() *ilerr.Errors {
	if len(e.Errors) == 0 {
		return nil
	}
	return (&ilerr.Errors{}).With(e.Errors...)
}
