package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/sandrolain/gomathml/pkg/types"
)

const eof = -1

// Lexer converts a term into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	// Check for two-character symbols first (e.g., !=, <=, <>)
	if rts := lookupSymbol2(ch); rts != nil {
		for _, rt := range rts {
			if l.acceptRune(rt.r) {
				return l.newToken(rt.tt)
			}
		}
	}

	// A leading dot starts a decimal literal (e.g., ".1")
	if ch == '.' {
		if isDigit(l.peek()) {
			l.backup()
			return l.scanNumber()
		}
		return l.error(types.ErrInvalidCharacter, "Unexpected character '.'")
	}

	// Check for single-character symbols
	if tt := lookupSymbol1(ch); tt > 0 {
		return l.newToken(tt)
	}

	// Number literals
	if isDigit(ch) {
		l.backup()
		return l.scanNumber()
	}

	// Names, keywords
	if isNameStart(ch) {
		l.backup()
		return l.scanName()
	}

	return l.error(types.ErrInvalidCharacter, fmt.Sprintf("Unexpected character %q", ch))
}

// Err returns the first error encountered during lexing, if any.
func (l *Lexer) Err() error {
	return l.err
}

// scanNumber reads a number literal from the current position.
//
// Beyond plain integers and decimals it recognizes three suffix forms:
//   - exponent: 1.2e10, 3E-4 (e-notation)
//   - imaginary: 3i, 2.5i (complex constant)
//   - rational marker: 3//4 (exact rational, not a division)
func (l *Lexer) scanNumber() Token {
	l.acceptAll(isDigit)

	// Decimal part
	mark := l.current
	if l.acceptRune('.') {
		if !l.acceptAll(isDigit) {
			// A dot without digits is not part of the number.
			l.current = mark
		}
	}

	// Exponent part; only kept when digits follow
	mark = l.current
	if l.acceptRunes2('e', 'E') {
		l.acceptRunes2('+', '-')
		if !l.acceptAll(isDigit) {
			l.current = mark
		}
	}

	// Imaginary suffix; "3in" is the number 3 followed by the name "in"
	mark = l.current
	if l.acceptRune('i') {
		if isNameRune(l.peek()) {
			l.current = mark
		} else {
			return l.newToken(TokenImaginary)
		}
	}

	// Rational marker
	mark = l.current
	if l.acceptRune('/') {
		if l.acceptRune('/') && l.acceptAll(isDigit) {
			return l.newToken(TokenRational)
		}
		l.current = mark
	}

	return l.newToken(TokenNumber)
}

// scanName reads a name or keyword from the current position.
// Names start with a letter or underscore and may contain letters, digits
// and underscores. Dotted qualified names (a.b) are a single token.
func (l *Lexer) scanName() Token {
	l.acceptAll(isNameRune)

	for {
		mark := l.current
		if !l.acceptRune('.') {
			break
		}
		if !l.accept(isNameStart) {
			l.current = mark
			break
		}
		l.acceptAll(isNameRune)
	}

	t := l.newToken(TokenName)
	if tt := lookupKeyword(t.Value); tt > 0 {
		t.Type = tt
	}
	return t
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) error(code types.ErrorCode, message string) Token {
	t := l.newToken(TokenError)
	l.err = &types.ParseError{
		Code:     code,
		Message:  message,
		Position: t.Position,
		Token:    t.Value,
	}
	return t
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) peek() rune {
	r := l.nextRune()
	l.backup()
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
	l.width = 0
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) acceptRunes2(r1, r2 rune) bool {
	return l.accept(func(c rune) bool {
		return c == r1 || c == r2
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

func (l *Lexer) skipWhitespace() {
	l.acceptAll(isWhitespace)
	l.ignore()
}

func (l *Lexer) ignore() {
	l.start = l.current
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return isNameStart(r) || isDigit(r)
}
