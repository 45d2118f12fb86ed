package markup

import (
	"fmt"

	"github.com/sandrolain/gomathml/pkg/types"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// EventSink receives the markup event stream produced by Emit.
//
// The sink is the only external capability emission requires; the emitter
// never builds or retains a document. Every method may fail, and the first
// failure aborts the walk.
type EventSink interface {
	StartDocument() error
	EndDocument() error
	StartPrefix(uri string) error
	EndPrefix() error
	OpenElement(name string, attrs []Attr) error
	Text(content string) error
	CloseElement(name string) error
}

// Emit walks the AST and emits its markup events on sink.
//
// The walk is wrapped in document and namespace-prefix bracket events. Emit
// is stateless and reentrant: the same tree may be emitted concurrently to
// independent sinks.
func Emit(root types.Node, sink EventSink) error {
	if err := sink.StartDocument(); err != nil {
		return err
	}
	if err := sink.StartPrefix(Namespace); err != nil {
		return err
	}
	if err := emitNode(root, sink); err != nil {
		return err
	}
	if err := sink.EndPrefix(); err != nil {
		return err
	}
	return sink.EndDocument()
}

func emitNode(node types.Node, sink EventSink) error {
	switch n := node.(type) {
	case *types.Apply:
		return emitApply(n, sink)
	case *types.Name:
		return emitName(n, sink)
	case *types.Const:
		return emitConst(n, sink)
	case *types.Case:
		return emitCase(n, sink)
	case *types.Collection:
		return emitCollection(n, sink)
	default:
		return fmt.Errorf("markup: cannot emit node of type %T", node)
	}
}

// emitApply emits <apply> with the operator element first. Operators from
// the fixed symbol set map to their own element; any other operator is a
// function identifier and emits as <ci>.
func emitApply(n *types.Apply, sink EventSink) error {
	if err := sink.OpenElement(elApply, nil); err != nil {
		return err
	}

	if el, ok := operatorElements[n.Op]; ok {
		if err := writeEmpty(sink, el); err != nil {
			return err
		}
	} else {
		if err := writeText(sink, elCI, n.Op); err != nil {
			return err
		}
	}

	for _, operand := range n.Operands {
		if err := emitNode(operand, sink); err != nil {
			return err
		}
	}

	return sink.CloseElement(elApply)
}

func emitName(n *types.Name, sink EventSink) error {
	if el, ok := constantElements[n.Identifier]; ok {
		return writeEmpty(sink, el)
	}
	return writeText(sink, elCI, n.Identifier)
}

func emitConst(n *types.Const, sink EventSink) error {
	v := n.Value

	if v.Kind == types.KindBool {
		if v.Bool {
			return writeEmpty(sink, elTrue)
		}
		return writeEmpty(sink, elFalse)
	}

	attrs := []Attr{{Name: attrType, Value: string(v.Kind)}}
	if err := sink.OpenElement(elCN, attrs); err != nil {
		return err
	}

	if v.TwoPart() {
		if err := sink.Text(v.First); err != nil {
			return err
		}
		if err := writeEmpty(sink, elSep); err != nil {
			return err
		}
		if err := sink.Text(v.Second); err != nil {
			return err
		}
	} else {
		if err := sink.Text(v.Text); err != nil {
			return err
		}
	}

	return sink.CloseElement(elCN)
}

// emitCase emits <piecewise>. Each clause becomes a <piece> holding the
// value events first and the condition events second; that order is part
// of the markup contract.
func emitCase(n *types.Case, sink EventSink) error {
	if err := sink.OpenElement(elPiecewise, nil); err != nil {
		return err
	}

	for _, clause := range n.Clauses {
		if err := sink.OpenElement(elPiece, nil); err != nil {
			return err
		}
		if err := emitNode(clause.Value, sink); err != nil {
			return err
		}
		if err := emitNode(clause.Condition, sink); err != nil {
			return err
		}
		if err := sink.CloseElement(elPiece); err != nil {
			return err
		}
	}

	if n.Otherwise != nil {
		if err := sink.OpenElement(elOtherwise, nil); err != nil {
			return err
		}
		if err := emitNode(n.Otherwise, sink); err != nil {
			return err
		}
		if err := sink.CloseElement(elOtherwise); err != nil {
			return err
		}
	}

	return sink.CloseElement(elPiecewise)
}

func emitCollection(n *types.Collection, sink EventSink) error {
	name := elList
	var attrs []Attr
	if n.Kind == types.Interval {
		name = elInterval
		closure := n.Closure
		if closure == "" {
			closure = types.ClosureClosed
		}
		attrs = []Attr{{Name: attrClosure, Value: string(closure)}}
	}

	if err := sink.OpenElement(name, attrs); err != nil {
		return err
	}
	for _, item := range n.Items {
		if err := emitNode(item, sink); err != nil {
			return err
		}
	}
	return sink.CloseElement(name)
}

func writeEmpty(sink EventSink, name string) error {
	if err := sink.OpenElement(name, nil); err != nil {
		return err
	}
	return sink.CloseElement(name)
}

func writeText(sink EventSink, name, content string) error {
	if err := sink.OpenElement(name, nil); err != nil {
		return err
	}
	if err := sink.Text(content); err != nil {
		return err
	}
	return sink.CloseElement(name)
}
