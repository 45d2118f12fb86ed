package builder

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gomathml/pkg/types"
)

// prefixBuilder renders the prefix (Polish) notation: the operator token
// followed by its space-separated operands. Position makes the structure
// unambiguous, so no parentheses are emitted.
type prefixBuilder struct{}

// Build implements Builder.
func (prefixBuilder) Build(node types.Node) (string, error) {
	return renderPositional(node, true)
}

func renderPositional(node types.Node, opFirst bool) (string, error) {
	switch n := node.(type) {
	case *types.Apply:
		parts := make([]string, 0, len(n.Operands)+1)
		if opFirst {
			parts = append(parts, n.Op)
		}
		for _, operand := range n.Operands {
			text, err := renderPositional(operand, opFirst)
			if err != nil {
				return "", err
			}
			parts = append(parts, text)
		}
		if !opFirst {
			parts = append(parts, n.Op)
		}
		return strings.Join(parts, " "), nil

	case *types.Name:
		return n.Identifier, nil

	case *types.Const:
		text, _ := renderNumber(n.Value)
		return text, nil

	case *types.Case:
		render := func(node types.Node) (string, error) {
			return renderPositional(node, opFirst)
		}
		return renderCaseWith(n, render)

	case *types.Collection:
		items := make([]string, len(n.Items))
		for i, item := range n.Items {
			text, err := renderPositional(item, opFirst)
			if err != nil {
				return "", err
			}
			items[i] = text
		}
		if n.Kind == types.Interval {
			open, close := intervalBrackets(n.Closure)
			return open + strings.Join(items, ":") + close, nil
		}
		return strings.Join(items, ", "), nil

	default:
		return "", fmt.Errorf("builder: cannot render node of type %T", node)
	}
}
