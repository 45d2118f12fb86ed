package builder

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gomathml/pkg/types"
)

// infixBuilder renders the infix notation.
//
// Parentheses are inserted only when a child binds looser than its parent,
// or equally on the non-associative side (the right operand of "-" and "/",
// the left operand of the right-associative "^"). Re-parsing the output
// therefore reproduces the tree exactly.
type infixBuilder struct{}

// Build implements Builder.
func (infixBuilder) Build(node types.Node) (string, error) {
	text, _, err := renderInfix(node)
	return text, err
}

// renderInfix returns the rendered text together with the binding power of
// its outermost construct, which the caller uses for its own parenthesizing
// decision.
func renderInfix(node types.Node) (string, int, error) {
	switch n := node.(type) {
	case *types.Apply:
		return renderInfixApply(n)

	case *types.Name:
		return n.Identifier, precAtom, nil

	case *types.Const:
		text, prec := renderNumber(n.Value)
		return text, prec, nil

	case *types.Case:
		text, err := renderInfixCase(n)
		return text, precAtom, err

	case *types.Collection:
		return renderInfixCollection(n)

	default:
		return "", 0, fmt.Errorf("builder: cannot render node of type %T", node)
	}
}

func renderInfixApply(n *types.Apply) (string, int, error) {
	// Unary prefix operators
	if len(n.Operands) == 1 {
		switch n.Op {
		case "-":
			operand, err := renderInfixOperand(n.Operands[0], precUnary, false)
			if err != nil {
				return "", 0, err
			}
			return "-" + operand, precUnary, nil
		case "not":
			operand, err := renderInfixOperand(n.Operands[0], precNot, false)
			if err != nil {
				return "", 0, err
			}
			return "not " + operand, precNot, nil
		}
	}

	info, ok := infixOps[n.Op]
	if !ok || len(n.Operands) < 2 {
		return renderInfixCall(n)
	}

	sep := n.Op
	if info.word {
		sep = " " + n.Op + " "
	}

	var b strings.Builder
	for i, operand := range n.Operands {
		if i > 0 {
			b.WriteString(sep)
		}

		// Equal precedence needs parens on the non-associative side:
		// every position except the first for left-associative
		// operators, the first for the right-associative power.
		strict := i > 0 != info.rightAssoc || info.nonAssoc
		text, err := renderInfixOperand(operand, info.prec, strict)
		if err != nil {
			return "", 0, err
		}
		b.WriteString(text)
	}

	return b.String(), info.prec, nil
}

// renderInfixOperand renders a child, parenthesizing when it binds looser
// than min, or equally when strict.
func renderInfixOperand(node types.Node, min int, strict bool) (string, error) {
	text, prec, err := renderInfix(node)
	if err != nil {
		return "", err
	}
	if prec < min || (strict && prec == min) {
		return "(" + text + ")", nil
	}
	return text, nil
}

func renderInfixCall(n *types.Apply) (string, int, error) {
	var b strings.Builder
	b.WriteString(n.Op)
	b.WriteString("(")
	for i, arg := range n.Operands {
		if i > 0 {
			b.WriteString(", ")
		}
		text, _, err := renderInfix(arg)
		if err != nil {
			return "", 0, err
		}
		b.WriteString(text)
	}
	b.WriteString(")")
	return b.String(), precAtom, nil
}

func renderInfixCase(n *types.Case) (string, error) {
	render := func(node types.Node) (string, error) {
		text, _, err := renderInfix(node)
		return text, err
	}
	return renderCaseWith(n, render)
}

func renderInfixCollection(n *types.Collection) (string, int, error) {
	items := make([]string, len(n.Items))
	for i, item := range n.Items {
		text, _, err := renderInfix(item)
		if err != nil {
			return "", 0, err
		}
		items[i] = text
	}

	if n.Kind == types.Interval {
		open, close := intervalBrackets(n.Closure)
		return open + strings.Join(items, ":") + close, precAtom, nil
	}
	return strings.Join(items, ", "), precAtom, nil
}

// precNot matches the parser's binding power for the prefix "not".
const precNot = 25

// renderCaseWith renders a Case with the given sub-renderer; the keyword
// skeleton is shared by all notations since the keywords delimit the parts.
func renderCaseWith(n *types.Case, render func(types.Node) (string, error)) (string, error) {
	var b strings.Builder
	b.WriteString("CASE")
	for _, clause := range n.Clauses {
		cond, err := render(clause.Condition)
		if err != nil {
			return "", err
		}
		value, err := render(clause.Value)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHEN ")
		b.WriteString(cond)
		b.WriteString(" THEN ")
		b.WriteString(value)
	}
	if n.Otherwise != nil {
		otherwise, err := render(n.Otherwise)
		if err != nil {
			return "", err
		}
		b.WriteString(" ELSE ")
		b.WriteString(otherwise)
	}
	b.WriteString(" END")
	return b.String(), nil
}
