package parser

import (
	"fmt"
	"go/token"
	"unicode"

	"github.com/antlr4-go/antlr/v4"
	"github.com/cottand/systemf/frontend/ast"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokInt       // 42, -7
	tokIdent     // x, succ'
	tokTypeVar   // X, Elem
	tokIntType   // Int
	tokLambda    // λ \
	tokBigLambda // Λ /\
	tokForall    // ∀ forall
	tokColon
	tokDot
	tokArrow // -> →
	tokStar
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
)

var tokenNames = [...]string{
	tokEOF:       "end of input",
	tokIllegal:   "illegal character",
	tokInt:       "integer literal",
	tokIdent:     "identifier",
	tokTypeVar:   "type variable",
	tokIntType:   "'Int'",
	tokLambda:    "'λ'",
	tokBigLambda: "'Λ'",
	tokForall:    "'∀'",
	tokColon:     "':'",
	tokDot:       "'.'",
	tokArrow:     "'->'",
	tokStar:      "'*'",
	tokLParen:    "'('",
	tokRParen:    "')'",
	tokLBracket:  "'['",
	tokRBracket:  "']'",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

type lexToken struct {
	kind tokenKind
	text string
	// start and end are rune offsets, end excluded
	start, end   int
	line, column int
}

func (t lexToken) Range() ast.Range {
	return ast.Range{PosStart: token.Pos(t.start + 1), PosEnd: token.Pos(t.end + 1)}
}

func (t lexToken) String() string {
	switch t.kind {
	case tokInt, tokIdent, tokTypeVar, tokIllegal:
		return fmt.Sprintf("%v '%s'", t.kind, t.text)
	default:
		return t.kind.String()
	}
}

// lexer splits source into tokens, reading characters from an antlr.CharStream.
// Whitespace and '--' line comments are skipped.
type lexer struct {
	input        antlr.CharStream
	line, column int
}

func newLexer(source string) *lexer {
	return &lexer{input: antlr.NewInputStream(source), line: 1, column: 1}
}

// peek returns the character offset positions ahead, 1 being the current one,
// or antlr.TokenEOF
func (l *lexer) peek(offset int) int {
	return l.input.LA(offset)
}

func (l *lexer) advance() {
	if l.peek(1) == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.input.Consume()
}

func (l *lexer) skipSpaceAndComments() {
	for {
		c := l.peek(1)
		switch {
		case c == antlr.TokenEOF:
			return
		case unicode.IsSpace(rune(c)):
			l.advance()
		case c == '-' && l.peek(2) == '-':
			for c := l.peek(1); c != antlr.TokenEOF && c != '\n'; c = l.peek(1) {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) next() lexToken {
	l.skipSpaceAndComments()
	start, line, column := l.input.Index(), l.line, l.column
	emit := func(kind tokenKind) lexToken {
		end := l.input.Index()
		return lexToken{
			kind:   kind,
			text:   l.input.GetText(start, end-1),
			start:  start,
			end:    end,
			line:   line,
			column: column,
		}
	}
	single := func(kind tokenKind) lexToken {
		l.advance()
		return emit(kind)
	}

	c := l.peek(1)
	switch {
	case c == antlr.TokenEOF:
		return lexToken{kind: tokEOF, start: start, end: start, line: line, column: column}
	case c == 'λ' || c == '\\':
		return single(tokLambda)
	case c == 'Λ':
		return single(tokBigLambda)
	case c == '/' && l.peek(2) == '\\':
		l.advance()
		return single(tokBigLambda)
	case c == '∀':
		return single(tokForall)
	case c == '→':
		return single(tokArrow)
	case c == '-' && l.peek(2) == '>':
		l.advance()
		return single(tokArrow)
	case isDigit(c), c == '-' && isDigit(l.peek(2)):
		l.advance()
		for isDigit(l.peek(1)) {
			l.advance()
		}
		return emit(tokInt)
	case c == ':':
		return single(tokColon)
	case c == '.':
		return single(tokDot)
	case c == '*':
		return single(tokStar)
	case c == '(':
		return single(tokLParen)
	case c == ')':
		return single(tokRParen)
	case c == '[':
		return single(tokLBracket)
	case c == ']':
		return single(tokRBracket)
	case 'a' <= c && c <= 'z':
		l.word()
		tok := emit(tokIdent)
		if tok.text == "forall" {
			tok.kind = tokForall
		}
		return tok
	case 'A' <= c && c <= 'Z':
		l.word()
		tok := emit(tokTypeVar)
		if tok.text == "Int" {
			tok.kind = tokIntType
		}
		return tok
	default:
		return single(tokIllegal)
	}
}

func (l *lexer) word() {
	for c := l.peek(1); isWordChar(c); c = l.peek(1) {
		l.advance()
	}
}

func isDigit(c int) bool {
	return '0' <= c && c <= '9'
}

func isWordChar(c int) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || isDigit(c) || c == '_' || c == '\''
}
