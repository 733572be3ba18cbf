// Package lexer contains a byte-level scanner that turns source text
// into a sequence of token.Token values.
//
// This is an external collaborator of the compiler core: the core only
// consumes the token.Token values the lexer produces, through the
// stream package.
package lexer

import (
	"github.com/skx/cc/token"
)

// Lexer holds our object-state.
type Lexer struct {
	position     int    // current character position
	readPosition int    // next character position
	ch           rune   // current character
	characters   []rune // rune slice of input string

	line   int
	column int
}

// New creates a Lexer instance from a string of source text.
func New(input string) *Lexer {
	l := &Lexer{characters: []rune(input), line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances to the next character, tracking line/column.
func (l *Lexer) readChar() {
	if l.ch == rune('\n') {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.characters) {
		l.ch = rune(0)
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// NextToken reads and returns the next token, skipping whitespace.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := token.Pos{Line: l.line, Column: l.column}
	var tok token.Token

	switch l.ch {
	case rune('('):
		tok = newToken(token.LPAREN, l.ch, pos)
	case rune(')'):
		tok = newToken(token.RPAREN, l.ch, pos)
	case rune('{'):
		tok = newToken(token.LBRACE, l.ch, pos)
	case rune('}'):
		tok = newToken(token.RBRACE, l.ch, pos)
	case rune(';'):
		tok = newToken(token.SEMICOLON, l.ch, pos)
	case rune(','):
		tok = newToken(token.COMMA, l.ch, pos)
	case rune('~'):
		tok = newToken(token.TILDE, l.ch, pos)
	case rune('+'):
		tok = newToken(token.PLUS, l.ch, pos)
	case rune('-'):
		if l.peekChar() == rune('-') {
			l.readChar()
			tok = token.Token{Type: token.MINUSMINUS, Literal: "--", Pos: pos}
		} else {
			tok = newToken(token.MINUS, l.ch, pos)
		}
	case rune('*'):
		tok = newToken(token.ASTERISK, l.ch, pos)
	case rune('/'):
		tok = newToken(token.SLASH, l.ch, pos)
	case rune('%'):
		tok = newToken(token.PERCENT, l.ch, pos)
	case rune('^'):
		tok = newToken(token.CARET, l.ch, pos)
	case rune('&'):
		if l.peekChar() == rune('&') {
			l.readChar()
			tok = token.Token{Type: token.AMPAMP, Literal: "&&", Pos: pos}
		} else {
			tok = newToken(token.AMP, l.ch, pos)
		}
	case rune('|'):
		if l.peekChar() == rune('|') {
			l.readChar()
			tok = token.Token{Type: token.PIPEPIPE, Literal: "||", Pos: pos}
		} else {
			tok = newToken(token.PIPE, l.ch, pos)
		}
	case rune('!'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "!=", Pos: pos}
		} else {
			tok = newToken(token.BANG, l.ch, pos)
		}
	case rune('='):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.EQ, Literal: "==", Pos: pos}
		} else {
			tok = token.Token{Type: token.ERROR, Literal: "unexpected '='", Pos: pos}
		}
	case rune('<'):
		if l.peekChar() == rune('<') {
			l.readChar()
			tok = token.Token{Type: token.SHL, Literal: "<<", Pos: pos}
		} else if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		} else {
			tok = newToken(token.LT, l.ch, pos)
		}
	case rune('>'):
		if l.peekChar() == rune('>') {
			l.readChar()
			tok = token.Token{Type: token.SHR, Literal: ">>", Pos: pos}
		} else if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		} else {
			tok = newToken(token.GT, l.ch, pos)
		}
	case rune(0):
		tok = token.Token{Type: token.EOF, Literal: "", Pos: pos}
	default:
		if isDigit(l.ch) {
			lit := l.readNumber()
			return token.Token{Type: token.NUMBER, Literal: lit, Pos: pos}
		}
		if isIdentifierStart(l.ch) {
			lit := l.readIdentifier()
			return token.Token{Type: token.LookupIdentifier(lit), Literal: lit, Pos: pos}
		}
		tok = token.Token{Type: token.ERROR, Literal: "unexpected character " + string(l.ch), Pos: pos}
	}

	l.readChar()
	return tok
}

// newToken builds a single-character token.
func newToken(tokenType token.Type, ch rune, pos token.Pos) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Pos: pos}
}

// skipWhitespace advances past spaces, tabs and newlines.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// readNumber reads a run of decimal digits. The language has no
// floating-point literals: every NUMBER is a sequence of 0-9.
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return string(l.characters[start:l.position])
}

// readIdentifier reads a run of identifier characters, starting from
// the current (already-validated) identifier-start character.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentifierPart(l.ch) {
		l.readChar()
	}
	return string(l.characters[start:l.position])
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return rune(0)
	}
	return l.characters[l.readPosition]
}

func isWhitespace(ch rune) bool {
	return ch == rune(' ') || ch == rune('\t') || ch == rune('\n') || ch == rune('\r')
}

func isDigit(ch rune) bool {
	return rune('0') <= ch && ch <= rune('9')
}

func isIdentifierStart(ch rune) bool {
	return ch == rune('_') || (rune('a') <= ch && ch <= rune('z')) || (rune('A') <= ch && ch <= rune('Z'))
}

func isIdentifierPart(ch rune) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}
