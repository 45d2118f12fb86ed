// Package parser implements the term and boolean-expression grammars.
//
// The parser uses a hand-written recursive descent approach with
// precedence climbing for maximum control over error positions and
// operator binding.
//
// # Architecture
//
// The parser consists of two main components:
//   - Lexer: tokenizes the input into a stream of tokens
//   - Parser: builds an Abstract Syntax Tree (AST) from tokens
//
// Two grammar dialects share the implementation: the term grammar
// (arithmetic and relational expressions) and the boolean-expression
// grammar, which extends the term grammar with "or", "and" and "not".
// Callers that do not know which grammar an input belongs to should try
// the term grammar first and fall back to the boolean grammar; the parser
// itself never falls back.
//
// # Example
//
//	term, err := parser.ParseTerm("1 + 2*3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast := term.AST()
package parser

import (
	"github.com/sandrolain/gomathml/pkg/types"
)

// ParseTerm parses an arithmetic/relational term and returns the parsed Term.
//
// The whole input must be consumed; trailing whitespace is ignored. On
// malformed input the returned error is a *types.ParseError carrying the
// position of the offending token.
func ParseTerm(input string, opts ...Option) (*types.Term, error) {
	p := newParser(input, dialectTerm, opts...)
	return p.parse()
}

// ParseBoolExpression parses a boolean combination of term comparisons.
// The boolean grammar embeds the term grammar: every valid term is also a
// valid boolean expression.
func ParseBoolExpression(input string, opts ...Option) (*types.Term, error) {
	p := newParser(input, dialectBool, opts...)
	return p.parse()
}

// ParseTermList parses a comma-separated sequence of terms into a
// list Collection.
func ParseTermList(input string, opts ...Option) (*types.Term, error) {
	p := newParser(input, dialectTerm, opts...)
	return p.parseList()
}

// Option configures parser behavior.
type Option func(*Options)

// Options holds parser configuration.
type Options struct {
	// MaxDepth limits recursion depth to prevent stack overflow.
	MaxDepth int
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = depth
	}
}
