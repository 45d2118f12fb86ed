package parser

import "strings"

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenNumber    // 123, 1.5, .1, 1.2e10
	TokenImaginary // 3i, 2.5i
	TokenRational  // 3//4
	TokenBoolean   // true, false
	TokenName      // identifier, possibly dotted: sin, a.b

	// Grouping symbols
	TokenParenOpen    // (
	TokenParenClose   // )
	TokenBracketOpen  // [
	TokenBracketClose // ]

	// Basic symbols
	TokenComma // ,
	TokenColon // :

	// Arithmetic operators
	TokenPlus   // +
	TokenMinus  // -
	TokenMult   // *
	TokenDiv    // /
	TokenPow    // ^
	TokenFactor // | (factor-of)

	// Relational operators
	TokenEqual        // =
	TokenNotEqual     // <> or !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	// Keyword operators
	TokenAnd // and
	TokenOr  // or
	TokenNot // not

	// Conditional keywords
	TokenCase // case
	TokenWhen // when
	TokenThen // then
	TokenElse // else
	TokenEnd  // end
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenNumber:
		return "(number)"
	case TokenImaginary:
		return "(imaginary)"
	case TokenRational:
		return "(rational)"
	case TokenBoolean:
		return "(boolean)"
	case TokenName:
		return "(name)"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenBracketOpen:
		return "["
	case TokenBracketClose:
		return "]"
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMult:
		return "*"
	case TokenDiv:
		return "/"
	case TokenPow:
		return "^"
	case TokenFactor:
		return "|"
	case TokenEqual:
		return "="
	case TokenNotEqual:
		return "<>"
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	case TokenAnd:
		return "and"
	case TokenOr:
		return "or"
	case TokenNot:
		return "not"
	case TokenCase:
		return "CASE"
	case TokenWhen:
		return "WHEN"
	case TokenThen:
		return "THEN"
	case TokenElse:
		return "ELSE"
	case TokenEnd:
		return "END"
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in a term.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal value of the token
	Position int       // Starting position in the input string
}

// symbols1 maps single-character symbols to token types.
var symbols1 = [...]TokenType{
	'(': TokenParenOpen,
	')': TokenParenClose,
	'[': TokenBracketOpen,
	']': TokenBracketClose,
	',': TokenComma,
	':': TokenColon,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMult,
	'/': TokenDiv,
	'^': TokenPow,
	'|': TokenFactor,
	'=': TokenEqual,
	'<': TokenLess,
	'>': TokenGreater,
}

// runeTokenType pairs a rune with its corresponding token type.
type runeTokenType struct {
	r  rune
	tt TokenType
}

// symbols2 maps two-character symbol sequences to token types.
// The key is the first character of the sequence.
var symbols2 = [...][]runeTokenType{
	'!': {{'=', TokenNotEqual}},
	'<': {{'=', TokenLessEqual}, {'>', TokenNotEqual}},
	'>': {{'=', TokenGreaterEqual}},
}

const (
	symbol1Count = rune(len(symbols1))
	symbol2Count = rune(len(symbols2))
)

// lookupSymbol1 returns the token type for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol1(r rune) TokenType {
	if r < 0 || r >= symbol1Count {
		return 0
	}
	return symbols1[r]
}

// lookupSymbol2 returns possible two-character symbol completions.
// Returns nil if the rune cannot start a two-character symbol.
func lookupSymbol2(r rune) []runeTokenType {
	if r < 0 || r >= symbol2Count {
		return nil
	}
	return symbols2[r]
}

// lookupKeyword returns the token type for a keyword.
// Keywords are case-insensitive. Returns 0 if the string is not a keyword.
func lookupKeyword(s string) TokenType {
	switch strings.ToLower(s) {
	case "and":
		return TokenAnd
	case "or":
		return TokenOr
	case "not":
		return TokenNot
	case "true", "false":
		return TokenBoolean
	case "case":
		return TokenCase
	case "when":
		return TokenWhen
	case "then":
		return TokenThen
	case "else":
		return TokenElse
	case "end":
		return TokenEnd
	default:
		return 0
	}
}
