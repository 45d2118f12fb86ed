package markup

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gomathml/pkg/types"
)

// Element is the read-only document view consumed by Extract.
//
// Kind returns the local element name, Children the element children in
// document order, and Attribute the value of an attribute ("" when absent).
// Text returns the element's concatenated character data; TextParts returns
// the character data runs split at child element boundaries, which is how
// the two parts of a <sep/>-separated constant are recovered.
type Element interface {
	Kind() string
	Children() []Element
	Text() string
	TextParts() []string
	Attribute(name string) string
}

// Extract reconstructs the AST from a structured document, inverting Emit.
//
// Markup shapes the AST cannot model are rejected with a
// *types.UnsupportedConstructError: operator positions that have children
// (function composition), unknown element kinds, wrong child counts in
// piece and interval elements, and malformed constants.
func Extract(root Element) (types.Node, error) {
	return extractNode(root)
}

func extractNode(el Element) (types.Node, error) {
	kind := el.Kind()

	if name, ok := elementConstants[kind]; ok {
		switch kind {
		case elTrue, elFalse:
			return &types.Const{Value: types.Bool(kind == elTrue)}, nil
		default:
			return &types.Name{Identifier: name}, nil
		}
	}

	switch kind {
	case elCI:
		return &types.Name{Identifier: strings.TrimSpace(el.Text())}, nil
	case elCN:
		return extractConst(el)
	case elApply:
		return extractApply(el)
	case elPiecewise:
		return extractPiecewise(el)
	case elList:
		return extractList(el)
	case elInterval:
		return extractInterval(el)
	default:
		return nil, types.NewUnsupportedConstruct(types.ErrUnknownElement,
			fmt.Sprintf("%s elements are not supported", kind))
	}
}

// extractConst rebuilds a Const from a <cn> element. The type attribute
// selects the literal variant; two-part variants carry their parts around a
// single <sep/> child.
func extractConst(el Element) (types.Node, error) {
	attr := el.Attribute(attrType)
	if attr == "" {
		attr = string(types.KindInteger)
	}
	kind, ok := types.NumberKindFromAttr(attr)
	if !ok {
		return nil, types.NewUnsupportedConstruct(types.ErrInvalidAttribute,
			fmt.Sprintf("unknown cn type %q", attr))
	}

	if kind == types.KindRational || kind == types.KindComplex || kind == types.KindENotation {
		first, second, err := sepParts(el)
		if err != nil {
			return nil, err
		}
		n := types.Number{Kind: kind, First: first, Second: second}
		return &types.Const{Value: n}, nil
	}

	text := strings.TrimSpace(el.Text())
	if !types.IsDecimalLiteral(text) {
		return nil, types.NewUnsupportedConstruct(types.ErrMalformedConstant,
			fmt.Sprintf("invalid %s constant %q", kind, text))
	}
	return &types.Const{Value: types.Number{Kind: kind, Text: text}}, nil
}

// sepParts returns the two character-data parts around the single <sep/>
// child of a binary constant.
func sepParts(el Element) (string, string, error) {
	children := el.Children()
	if len(children) != 1 || children[0].Kind() != elSep {
		return "", "", types.NewUnsupportedConstruct(types.ErrMalformedConstant,
			"binary constant requires exactly one <sep/> separator")
	}

	parts := el.TextParts()
	if len(parts) != 2 {
		return "", "", types.NewUnsupportedConstruct(types.ErrMalformedConstant,
			"binary constant requires exactly two parts")
	}

	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])
	if !types.IsDecimalLiteral(first) || !types.IsDecimalLiteral(second) {
		return "", "", types.NewUnsupportedConstruct(types.ErrMalformedConstant,
			fmt.Sprintf("binary constant parts %q, %q are not decimal literals", first, second))
	}
	return first, second, nil
}

// extractApply rebuilds an Apply. The first child selects the operator and
// must be a leaf; an operator position with children of its own would be
// function composition, which the AST does not model.
func extractApply(el Element) (types.Node, error) {
	children := el.Children()
	if len(children) < 2 {
		return nil, types.NewUnsupportedConstruct(types.ErrChildCount,
			fmt.Sprintf("apply element has %d children, at least 2 required", len(children)))
	}

	operator := children[0]
	if len(operator.Children()) > 0 {
		return nil, types.NewUnsupportedConstruct(types.ErrFunctionComposition,
			"function composition is not supported")
	}

	var op string
	switch {
	case operator.Kind() == elCI:
		op = strings.TrimSpace(operator.Text())
	default:
		if sym, ok := elementOperators[operator.Kind()]; ok {
			op = sym
		} else {
			op = operator.Kind()
		}
	}

	operands := make([]types.Node, 0, len(children)-1)
	for _, child := range children[1:] {
		operand, err := extractNode(child)
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}

	return &types.Apply{Op: op, Operands: operands}, nil
}

// extractPiecewise rebuilds a Case. Every <piece> contributes one clause,
// in document order, with the fixed child order value-then-condition; an
// <otherwise> child supplies the default. A piecewise without pieces
// reduces to its otherwise expression.
func extractPiecewise(el Element) (types.Node, error) {
	var clauses []types.CaseClause
	var otherwise types.Node

	for _, child := range el.Children() {
		switch child.Kind() {
		case elPiece:
			parts := child.Children()
			if len(parts) != 2 {
				return nil, types.NewUnsupportedConstruct(types.ErrChildCount,
					fmt.Sprintf("piece element has %d children, 2 required", len(parts)))
			}
			value, err := extractNode(parts[0])
			if err != nil {
				return nil, err
			}
			condition, err := extractNode(parts[1])
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, types.CaseClause{Condition: condition, Value: value})

		case elOtherwise:
			parts := child.Children()
			if len(parts) != 1 {
				return nil, types.NewUnsupportedConstruct(types.ErrChildCount,
					fmt.Sprintf("otherwise element has %d children, 1 required", len(parts)))
			}
			var err error
			otherwise, err = extractNode(parts[0])
			if err != nil {
				return nil, err
			}

		default:
			return nil, types.NewUnsupportedConstruct(types.ErrUnknownElement,
				fmt.Sprintf("unknown element in piecewise: %s", child.Kind()))
		}
	}

	if len(clauses) == 0 {
		if otherwise != nil {
			return otherwise, nil
		}
		return nil, types.NewUnsupportedConstruct(types.ErrChildCount,
			"piecewise element has no piece children")
	}

	return &types.Case{Clauses: clauses, Otherwise: otherwise}, nil
}

func extractList(el Element) (types.Node, error) {
	children := el.Children()
	items := make([]types.Node, 0, len(children))
	for _, child := range children {
		item, err := extractNode(child)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &types.Collection{Kind: types.List, Items: items}, nil
}

func extractInterval(el Element) (types.Node, error) {
	closure := el.Attribute(attrClosure)
	if closure == "" {
		closure = string(types.ClosureClosed)
	}
	if !types.ValidClosure(closure) {
		return nil, types.NewUnsupportedConstruct(types.ErrInvalidAttribute,
			fmt.Sprintf("unknown interval closure %q", closure))
	}

	children := el.Children()
	if len(children) != 2 {
		return nil, types.NewUnsupportedConstruct(types.ErrChildCount,
			fmt.Sprintf("interval element has %d children, 2 required", len(children)))
	}

	items := make([]types.Node, 0, 2)
	for _, child := range children {
		item, err := extractNode(child)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &types.Collection{
		Kind:    types.Interval,
		Closure: types.Closure(closure),
		Items:   items,
	}, nil
}
