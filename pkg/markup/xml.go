package markup

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// XMLSink is an EventSink that serializes the event stream as namespaced
// XML text. It is the adapter used by the command-line tool and the
// examples; the emitter itself never depends on it.
type XMLSink struct {
	w           io.Writer
	indent      string
	declaration bool

	ns      string
	pending bool // open tag written up to its attributes, '>' not yet
	stack   []xmlFrame
	err     error
}

type xmlFrame struct {
	name    string
	hasText bool
}

// XMLOption configures an XMLSink.
type XMLOption func(*XMLSink)

// WithIndent enables pretty-printing with the given indent unit.
// Elements containing character data are kept on one line.
func WithIndent(indent string) XMLOption {
	return func(s *XMLSink) {
		s.indent = indent
	}
}

// WithDeclaration controls whether an XML declaration is written.
func WithDeclaration(enable bool) XMLOption {
	return func(s *XMLSink) {
		s.declaration = enable
	}
}

// NewXMLSink creates an XMLSink writing to w.
func NewXMLSink(w io.Writer, opts ...XMLOption) *XMLSink {
	s := &XMLSink{
		w:           w,
		declaration: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartDocument implements EventSink.
func (s *XMLSink) StartDocument() error {
	if s.declaration {
		s.write(`<?xml version="1.0" encoding="UTF-8"?>`)
		if s.indent != "" {
			s.write("\n")
		}
	}
	return s.err
}

// EndDocument implements EventSink.
func (s *XMLSink) EndDocument() error {
	if s.indent != "" {
		s.write("\n")
	}
	return s.err
}

// StartPrefix implements EventSink. The namespace is declared on the next
// opened element.
func (s *XMLSink) StartPrefix(uri string) error {
	s.ns = uri
	return s.err
}

// EndPrefix implements EventSink.
func (s *XMLSink) EndPrefix() error {
	return s.err
}

// OpenElement implements EventSink.
func (s *XMLSink) OpenElement(name string, attrs []Attr) error {
	s.flushPending()
	s.breakLine()

	s.write("<" + name)
	if s.ns != "" {
		s.write(` xmlns="` + escapeXML(s.ns) + `"`)
		s.ns = ""
	}
	for _, attr := range attrs {
		s.write(" " + attr.Name + `="` + escapeXML(attr.Value) + `"`)
	}

	s.pending = true
	s.stack = append(s.stack, xmlFrame{name: name})
	return s.err
}

// Text implements EventSink.
func (s *XMLSink) Text(content string) error {
	s.flushPending()
	if n := len(s.stack); n > 0 {
		s.stack[n-1].hasText = true
	}
	s.write(escapeXML(content))
	return s.err
}

// CloseElement implements EventSink.
func (s *XMLSink) CloseElement(name string) error {
	n := len(s.stack)
	if n == 0 || s.stack[n-1].name != name {
		if s.err == nil {
			s.err = fmt.Errorf("markup: unbalanced close of element %q", name)
		}
		return s.err
	}

	frame := s.stack[n-1]
	s.stack = s.stack[:n-1]

	if s.pending {
		s.pending = false
		s.write("/>")
		return s.err
	}

	if s.indent != "" && !frame.hasText && !s.inlineContext() {
		s.write("\n" + strings.Repeat(s.indent, len(s.stack)))
	}
	s.write("</" + name + ">")
	return s.err
}

// Err returns the first write error, if any.
func (s *XMLSink) Err() error {
	return s.err
}

// flushPending closes the '>' of a still-open start tag.
func (s *XMLSink) flushPending() {
	if s.pending {
		s.pending = false
		s.write(">")
	}
}

// breakLine starts a new indented line unless the parent element carries
// character data (mixed content stays inline, e.g. <cn>1<sep/>2</cn>).
func (s *XMLSink) breakLine() {
	if s.indent == "" || len(s.stack) == 0 || s.inlineContext() {
		return
	}
	s.write("\n" + strings.Repeat(s.indent, len(s.stack)))
}

func (s *XMLSink) inlineContext() bool {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1].hasText
	}
	return false
}

func (s *XMLSink) write(text string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, text)
}

func escapeXML(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

// xmlElement is the Element view over decoded XML.
type xmlElement struct {
	kind     string
	attrs    map[string]string
	children []*xmlElement
	parts    []string // character data runs; len(parts) == len(children)+1
}

// Kind implements Element.
func (e *xmlElement) Kind() string {
	return e.kind
}

// Children implements Element.
func (e *xmlElement) Children() []Element {
	children := make([]Element, len(e.children))
	for i, child := range e.children {
		children[i] = child
	}
	return children
}

// Text implements Element.
func (e *xmlElement) Text() string {
	return strings.Join(e.parts, "")
}

// TextParts implements Element.
func (e *xmlElement) TextParts() []string {
	return e.parts
}

// Attribute implements Element.
func (e *xmlElement) Attribute(name string) string {
	return e.attrs[name]
}

// DecodeXML parses XML text into an Element view suitable for Extract.
// Processing instructions and comments are ignored; the document must have
// exactly one root element.
func DecodeXML(r io.Reader) (Element, error) {
	decoder := xml.NewDecoder(r)

	var root *xmlElement
	var stack []*xmlElement

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("markup: invalid XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			el := &xmlElement{
				kind:  t.Name.Local,
				attrs: make(map[string]string, len(t.Attr)),
				parts: []string{""},
			}
			for _, attr := range t.Attr {
				if attr.Name.Space == "" && attr.Name.Local != "xmlns" {
					el.attrs[attr.Name.Local] = attr.Value
				}
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("markup: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
				parent.parts = append(parent.parts, "")
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				el := stack[len(stack)-1]
				el.parts[len(el.parts)-1] += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("markup: no root element")
	}
	return root, nil
}
