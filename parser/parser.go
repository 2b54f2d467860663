package parser

import (
	"fmt"
	"strconv"

	"github.com/antlr4-go/antlr/v4"
	"github.com/cottand/systemf/frontend/ast"
)

// bailout is panicked with on the first syntax error, and recovered in the API functions
type bailout struct{}

// parser is a recursive-descent parser for the grammar
//
//	Term  ::= "λ" ident ":" Type "." Term | "Λ" TVar ":" Kind "." Term | App
//	App   ::= App Atom | App "[" Type "]" | Atom
//	Atom  ::= Int | ident | "(" Term ")"
//	Type  ::= "∀" TVar ":" Kind "." Type | TAtom "->" Type | TAtom
//	TAtom ::= "Int" | TVar | "(" Type ")"
//	Kind  ::= "*"
type parser struct {
	lex       *lexer
	tok       lexToken
	calculus  ast.Calculus
	listeners []antlr.ErrorListener
}

func newParser(source string, s settings) *parser {
	p := &parser{
		lex:       newLexer(source),
		calculus:  s.calculus,
		listeners: s.listeners,
	}
	p.next()
	return p
}

func (p *parser) next() {
	p.tok = p.lex.next()
}

func (p *parser) errorAt(tok lexToken, msg string) {
	for _, listener := range p.listeners {
		listener.SyntaxError(nil, tok, tok.line, tok.column, msg, nil)
	}
	panic(bailout{})
}

func (p *parser) expect(kind tokenKind) lexToken {
	tok := p.tok
	if tok.kind != kind {
		if tok.kind == tokIllegal {
			p.errorAt(tok, fmt.Sprintf("unexpected character '%s'", tok.text))
		}
		p.errorAt(tok, fmt.Sprintf("expected %v, found %v", kind, tok))
	}
	p.next()
	return tok
}

// requireSystemF fails when the parser only accepts the simply-typed fragment
func (p *parser) requireSystemF(construct string) {
	if p.calculus == ast.STLC {
		p.errorAt(p.tok, fmt.Sprintf("%s is not part of the %v", construct, p.calculus))
	}
}

func startsAtom(kind tokenKind) bool {
	return kind == tokInt || kind == tokIdent || kind == tokLParen
}

func (p *parser) parseTerm() ast.Term {
	switch p.tok.kind {
	case tokLambda:
		return p.parseAbs()
	case tokBigLambda:
		return p.parseUniversalAbs()
	default:
		return p.parseApp()
	}
}

func (p *parser) parseAbs() ast.Term {
	lambda := p.expect(tokLambda)
	name := p.expect(tokIdent)
	p.expect(tokColon)
	paramType := p.parseType()
	p.expect(tokDot)
	body := p.parseTerm()
	return &ast.Abs{
		Range:     ast.Range{PosStart: lambda.Range().Pos(), PosEnd: body.End()},
		ParamName: name.text,
		ParamType: paramType,
		Body:      body,
	}
}

func (p *parser) parseUniversalAbs() ast.Term {
	p.requireSystemF("type abstraction")
	lambda := p.expect(tokBigLambda)
	typeVar := p.expect(tokTypeVar)
	p.expect(tokColon)
	kind := p.parseKind()
	p.expect(tokDot)
	body := p.parseTerm()
	return &ast.UniversalAbs{
		Range:   ast.Range{PosStart: lambda.Range().Pos(), PosEnd: body.End()},
		TypeVar: typeVar.text,
		Kind:    kind,
		Body:    body,
	}
}

func (p *parser) parseApp() ast.Term {
	term := p.parseAtom()
	for {
		switch {
		case p.tok.kind == tokLBracket:
			p.requireSystemF("type application")
			p.next()
			typeArg := p.parseType()
			closing := p.expect(tokRBracket)
			term = &ast.UniversalApp{
				Range:   ast.Range{PosStart: term.Pos(), PosEnd: closing.Range().End()},
				Term:    term,
				TypeArg: typeArg,
			}
		case startsAtom(p.tok.kind):
			arg := p.parseAtom()
			term = &ast.App{
				Range: ast.RangeBetween(term, arg),
				Func:  term,
				Arg:   arg,
			}
		default:
			return term
		}
	}
}

func (p *parser) parseAtom() ast.Term {
	tok := p.tok
	switch tok.kind {
	case tokInt:
		p.next()
		value, err := strconv.ParseInt(tok.text, 10, 32)
		if err != nil {
			p.errorAt(tok, fmt.Sprintf("integer literal %s does not fit in 32 bits", tok.text))
		}
		return &ast.Int{Range: tok.Range(), Value: int32(value)}
	case tokIdent:
		p.next()
		return &ast.Var{Range: tok.Range(), Name: tok.text}
	case tokLParen:
		p.next()
		term := p.parseTerm()
		p.expect(tokRParen)
		return term
	case tokIllegal:
		p.errorAt(tok, fmt.Sprintf("unexpected character '%s'", tok.text))
	default:
		p.errorAt(tok, fmt.Sprintf("expected term, found %v", tok))
	}
	panic("unreachable")
}

func (p *parser) parseType() ast.Type {
	if p.tok.kind == tokForall {
		p.requireSystemF("universal type")
		p.next()
		typeVar := p.expect(tokTypeVar)
		p.expect(tokColon)
		kind := p.parseKind()
		p.expect(tokDot)
		return &ast.Forall{TypeVar: typeVar.text, Kind: kind, Body: p.parseType()}
	}
	param := p.parseTypeAtom()
	if p.tok.kind == tokArrow {
		p.next()
		return &ast.Arrow{Param: param, Result: p.parseType()}
	}
	return param
}

func (p *parser) parseTypeAtom() ast.Type {
	tok := p.tok
	switch tok.kind {
	case tokIntType:
		p.next()
		return &ast.IntType{}
	case tokTypeVar:
		p.requireSystemF("type variable " + tok.text)
		p.next()
		return &ast.TypeVar{Name: tok.text}
	case tokLParen:
		p.next()
		t := p.parseType()
		p.expect(tokRParen)
		return t
	case tokIllegal:
		p.errorAt(tok, fmt.Sprintf("unexpected character '%s'", tok.text))
	default:
		p.errorAt(tok, fmt.Sprintf("expected type, found %v", tok))
	}
	panic("unreachable")
}

func (p *parser) parseKind() ast.Kind {
	p.expect(tokStar)
	return ast.Star
}
