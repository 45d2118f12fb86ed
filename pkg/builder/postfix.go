package builder

import "github.com/sandrolain/gomathml/pkg/types"

// postfixBuilder renders the postfix (reverse Polish) notation: the
// space-separated operands followed by the operator token.
type postfixBuilder struct{}

// Build implements Builder.
func (postfixBuilder) Build(node types.Node) (string, error) {
	return renderPositional(node, false)
}
