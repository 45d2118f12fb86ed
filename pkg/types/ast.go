// Package types defines the core type system for GoMathML.
//
// This package contains type definitions for:
//   - Node: the closed set of AST node kinds
//   - Number: exact numeric literal variants
//   - Term: a parsed term together with its source text
//   - Error types: structured errors with codes
package types

// Node is the interface satisfied by every AST node.
//
// The node set is closed: Apply, Name, Const, Case and Collection are the
// only implementations. A tree is built once by a producer (parser or markup
// extractor) and never mutated afterwards, so it is safe to share across
// goroutines.
type Node interface {
	isNode()
}

// Apply is the application of an operator or function to one or more
// operands. Op is either one of the fixed operator symbols
// (+ - * / ^ | = <> > >= <= <) or an arbitrary function identifier
// such as "sin" or "a.b".
type Apply struct {
	Op       string
	Operands []Node
}

// Name is a reference to a symbolic constant (pi, e, i) or a free variable.
type Name struct {
	Identifier string
}

// Const is a numeric or boolean literal.
type Const struct {
	Value Number
}

// CaseClause is one WHEN/THEN pair of a Case expression.
type CaseClause struct {
	Condition Node
	Value     Node
}

// Case is a CASE WHEN ... THEN ... ELSE ... END conditional.
// It always carries at least one clause; Otherwise may be nil.
type Case struct {
	Clauses   []CaseClause
	Otherwise Node
}

// CollectionKind discriminates between term lists and intervals.
type CollectionKind uint8

const (
	// List is an ordered sequence of terms.
	List CollectionKind = iota
	// Interval is a two-endpoint range with a closure.
	Interval
)

// String returns a string representation of the collection kind.
func (k CollectionKind) String() string {
	switch k {
	case List:
		return "list"
	case Interval:
		return "interval"
	default:
		return "(unknown)"
	}
}

// Closure identifies which endpoints of an interval are inclusive.
// The values match the MathML interval closure attribute.
type Closure string

const (
	ClosureOpen       Closure = "open"
	ClosureClosed     Closure = "closed"
	ClosureOpenClosed Closure = "open-closed"
	ClosureClosedOpen Closure = "closed-open"
)

// ValidClosure reports whether s is one of the four closure values.
func ValidClosure(s string) bool {
	switch Closure(s) {
	case ClosureOpen, ClosureClosed, ClosureOpenClosed, ClosureClosedOpen:
		return true
	default:
		return false
	}
}

// Collection is a term list or an interval.
// An Interval collection has exactly two items and a non-empty Closure;
// a List collection ignores the Closure field.
type Collection struct {
	Kind    CollectionKind
	Closure Closure
	Items   []Node
}

func (*Apply) isNode()      {}
func (*Name) isNode()       {}
func (*Const) isNode()      {}
func (*Case) isNode()       {}
func (*Collection) isNode() {}

// Equal reports structural equality of two trees, including operand and
// clause order.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case *Apply:
		bv, ok := b.(*Apply)
		if !ok || av.Op != bv.Op || len(av.Operands) != len(bv.Operands) {
			return false
		}
		for i := range av.Operands {
			if !Equal(av.Operands[i], bv.Operands[i]) {
				return false
			}
		}
		return true

	case *Name:
		bv, ok := b.(*Name)
		return ok && av.Identifier == bv.Identifier

	case *Const:
		bv, ok := b.(*Const)
		return ok && av.Value == bv.Value

	case *Case:
		bv, ok := b.(*Case)
		if !ok || len(av.Clauses) != len(bv.Clauses) {
			return false
		}
		for i := range av.Clauses {
			if !Equal(av.Clauses[i].Condition, bv.Clauses[i].Condition) ||
				!Equal(av.Clauses[i].Value, bv.Clauses[i].Value) {
				return false
			}
		}
		return Equal(av.Otherwise, bv.Otherwise)

	case *Collection:
		bv, ok := b.(*Collection)
		if !ok || av.Kind != bv.Kind || len(av.Items) != len(bv.Items) {
			return false
		}
		if av.Kind == Interval && av.Closure != bv.Closure {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
