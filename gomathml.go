// Package gomathml converts between textual mathematical/boolean terms and
// MathML content markup.
//
// Terms written in infix notation parse into an immutable AST; the AST
// emits as a stream of MathML content-markup events, and a previously
// built markup document extracts back into the same AST. Notation builders
// render an AST into infix, prefix or postfix text.
//
// # Quick Start
//
//	// Parse a term and render it as MathML
//	term, err := gomathml.ParseTerm("1 + 2*3")
//	err = gomathml.WriteMathML(term.AST(), os.Stdout)
//
//	// Read MathML back and render the term in another notation
//	ast, err := gomathml.ReadMathML(file)
//	text, err := gomathml.Render(ast, "postfix")
//
// # Grammars
//
// Two grammar dialects are available: the term grammar (arithmetic and
// relational expressions) and the boolean-expression grammar, which adds
// "or", "and" and "not". ParseAny composes them in order, term first and
// boolean second, which is the documented policy for callers that do not
// know which dialect an input belongs to. The parser itself never falls
// back.
//
// # Concurrency
//
// Every conversion is a pure, synchronous transformation. The operator and
// element tables are immutable after initialization, so independent calls
// may run concurrently without locking.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/gomathml/pkg/parser
//   - Markup: github.com/sandrolain/gomathml/pkg/markup
//   - Builders: github.com/sandrolain/gomathml/pkg/builder
//   - Types: github.com/sandrolain/gomathml/pkg/types
package gomathml

import (
	"errors"
	"fmt"
	"io"

	"github.com/sandrolain/gomathml/pkg/builder"
	"github.com/sandrolain/gomathml/pkg/cache"
	"github.com/sandrolain/gomathml/pkg/markup"
	"github.com/sandrolain/gomathml/pkg/parser"
	"github.com/sandrolain/gomathml/pkg/types"
)

// Version returns the current version of GoMathML.
func Version() string {
	return "v0.1.0-dev"
}

// ParseTerm parses an arithmetic/relational term.
func ParseTerm(input string, opts ...parser.Option) (*types.Term, error) {
	return parser.ParseTerm(input, opts...)
}

// ParseBoolExpression parses a boolean combination of term comparisons.
func ParseBoolExpression(input string, opts ...parser.Option) (*types.Term, error) {
	return parser.ParseBoolExpression(input, opts...)
}

// ParseTermList parses a comma-separated sequence of terms.
func ParseTermList(input string, opts ...parser.Option) (*types.Term, error) {
	return parser.ParseTermList(input, opts...)
}

// MustParseTerm is like ParseTerm but panics if the term cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParseTerm(input string) *types.Term {
	term, err := ParseTerm(input)
	if err != nil {
		panic(fmt.Sprintf("gomathml: ParseTerm(%q): %v", input, err))
	}
	return term
}

// Grammar names accepted by ParseAny and CachedParser.
const (
	GrammarTerm     = "term"
	GrammarBool     = "bool"
	GrammarTermList = "termlist"
)

// grammarChain is the ordered list of grammars ParseAny tries in sequence.
var grammarChain = []struct {
	name  string
	parse func(string, ...parser.Option) (*types.Term, error)
}{
	{GrammarTerm, parser.ParseTerm},
	{GrammarBool, parser.ParseBoolExpression},
}

// ParseAny tries the term grammar first and falls back to the
// boolean-expression grammar. When both fail, the returned error joins
// both parse errors, reporting the input as unparsable under either
// grammar.
func ParseAny(input string, opts ...parser.Option) (*types.Term, error) {
	var errs []error
	for _, g := range grammarChain {
		term, err := g.parse(input, opts...)
		if err == nil {
			return term, nil
		}
		errs = append(errs, fmt.Errorf("%s grammar: %w", g.name, err))
	}
	return nil, errors.Join(errs...)
}

// Render renders an AST with the named notation builder from the default
// registry ("infix", "prefix", "postfix", plus anything registered by the
// caller).
func Render(node types.Node, notation string) (string, error) {
	return builder.Render(node, notation)
}

// InfixOf renders an AST in infix notation.
func InfixOf(node types.Node) (string, error) {
	return builder.Render(node, "infix")
}

// PrefixOf renders an AST in prefix notation.
func PrefixOf(node types.Node) (string, error) {
	return builder.Render(node, "prefix")
}

// PostfixOf renders an AST in postfix notation.
func PostfixOf(node types.Node) (string, error) {
	return builder.Render(node, "postfix")
}

// Emit walks an AST and emits its markup events on sink.
func Emit(node types.Node, sink markup.EventSink) error {
	return markup.Emit(node, sink)
}

// Extract reconstructs an AST from a structured document view.
func Extract(root markup.Element) (types.Node, error) {
	return markup.Extract(root)
}

// WriteMathML emits an AST as MathML text on w.
func WriteMathML(node types.Node, w io.Writer, opts ...markup.XMLOption) error {
	return markup.Emit(node, markup.NewXMLSink(w, opts...))
}

// ReadMathML parses MathML text from r and extracts the AST.
func ReadMathML(r io.Reader) (types.Node, error) {
	root, err := markup.DecodeXML(r)
	if err != nil {
		return nil, err
	}
	return markup.Extract(root)
}

// CachedParser wraps the parser with an LRU cache of parsed terms.
//
// It is safe for concurrent use. Parse errors are not cached; a failing
// input is re-parsed on every call.
type CachedParser struct {
	cache *cache.Cache
	opts  []parser.Option
}

// NewCachedParser creates a CachedParser holding up to capacity terms.
func NewCachedParser(capacity int, opts ...parser.Option) *CachedParser {
	return &CachedParser{
		cache: cache.New(capacity),
		opts:  opts,
	}
}

// ParseTerm parses an arithmetic/relational term, consulting the cache first.
func (p *CachedParser) ParseTerm(input string) (*types.Term, error) {
	return p.cache.GetOrParse(cache.Key{Grammar: GrammarTerm, Source: input}, func() (*types.Term, error) {
		return parser.ParseTerm(input, p.opts...)
	})
}

// ParseBoolExpression parses a boolean expression, consulting the cache first.
func (p *CachedParser) ParseBoolExpression(input string) (*types.Term, error) {
	return p.cache.GetOrParse(cache.Key{Grammar: GrammarBool, Source: input}, func() (*types.Term, error) {
		return parser.ParseBoolExpression(input, p.opts...)
	})
}

// ParseTermList parses a term list, consulting the cache first.
func (p *CachedParser) ParseTermList(input string) (*types.Term, error) {
	return p.cache.GetOrParse(cache.Key{Grammar: GrammarTermList, Source: input}, func() (*types.Term, error) {
		return parser.ParseTermList(input, p.opts...)
	})
}

// Len returns the number of cached terms.
func (p *CachedParser) Len() int {
	return p.cache.Len()
}
