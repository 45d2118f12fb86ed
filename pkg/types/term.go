package types

// Term represents a parsed term or boolean expression.
//
// A Term pairs the immutable AST with the source text it was parsed from.
// It is safe for concurrent use by multiple goroutines.
type Term struct {
	root   Node
	source string
}

// NewTerm creates a new Term from an AST root and its source text.
func NewTerm(root Node, source string) *Term {
	return &Term{
		root:   root,
		source: source,
	}
}

// AST returns the root node of the term.
func (t *Term) AST() Node {
	return t.root
}

// Source returns the original source text of the term.
func (t *Term) Source() string {
	return t.source
}

// String returns a string representation of the term.
func (t *Term) String() string {
	return t.source
}
