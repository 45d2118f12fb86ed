package markup_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gomathml/pkg/markup"
	"github.com/sandrolain/gomathml/pkg/types"
)

func sum(a, b string) types.Node {
	return &types.Apply{Op: "+", Operands: []types.Node{
		&types.Const{Value: types.Integer(a)},
		&types.Const{Value: types.Integer(b)},
	}}
}

func TestXMLSinkCompact(t *testing.T) {
	var b strings.Builder
	sink := markup.NewXMLSink(&b)
	require.NoError(t, markup.Emit(sum("1", "2"), sink))

	want := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<apply xmlns="http://www.w3.org/1998/Math/MathML">` +
		`<plus/>` +
		`<cn type="integer">1</cn>` +
		`<cn type="integer">2</cn>` +
		`</apply>`
	assert.Equal(t, want, b.String())
}

func TestXMLSinkWithoutDeclaration(t *testing.T) {
	var b strings.Builder
	sink := markup.NewXMLSink(&b, markup.WithDeclaration(false))
	require.NoError(t, markup.Emit(&types.Name{Identifier: "pi"}, sink))

	assert.Equal(t, `<pi xmlns="http://www.w3.org/1998/Math/MathML"/>`, b.String())
}

func TestXMLSinkIndent(t *testing.T) {
	var b strings.Builder
	sink := markup.NewXMLSink(&b, markup.WithIndent("  "))
	require.NoError(t, markup.Emit(sum("1", "2"), sink))

	want := `<?xml version="1.0" encoding="UTF-8"?>
<apply xmlns="http://www.w3.org/1998/Math/MathML">
  <plus/>
  <cn type="integer">1</cn>
  <cn type="integer">2</cn>
</apply>
`
	assert.Equal(t, want, b.String())
}

func TestXMLSinkMixedContentStaysInline(t *testing.T) {
	node := &types.Const{Value: types.Complex("1", "3")}

	var b strings.Builder
	sink := markup.NewXMLSink(&b, markup.WithIndent("  "), markup.WithDeclaration(false))
	require.NoError(t, markup.Emit(node, sink))

	want := `<cn xmlns="http://www.w3.org/1998/Math/MathML" type="complex">1<sep/>3</cn>` + "\n"
	assert.Equal(t, want, b.String())
}

func TestXMLSinkEscapesText(t *testing.T) {
	var b strings.Builder
	sink := markup.NewXMLSink(&b, markup.WithDeclaration(false))

	require.NoError(t, sink.OpenElement("ci", []markup.Attr{{Name: "id", Value: `a"b`}}))
	require.NoError(t, sink.Text("x < y & z"))
	require.NoError(t, sink.CloseElement("ci"))

	assert.Equal(t, `<ci id="a&#34;b">x &lt; y &amp; z</ci>`, b.String())
}

func TestXMLSinkUnbalancedClose(t *testing.T) {
	var b strings.Builder
	sink := markup.NewXMLSink(&b)
	require.NoError(t, sink.OpenElement("apply", nil))
	err := sink.CloseElement("cn")
	require.Error(t, err)
	assert.Equal(t, err, sink.Err())
}

func TestDecodeXML(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<apply xmlns="http://www.w3.org/1998/Math/MathML">` +
		`<plus/>` +
		`<cn type="complex">1<sep/>3</cn>` +
		`<ci>x</ci>` +
		`</apply>`

	root, err := markup.DecodeXML(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "apply", root.Kind())
	children := root.Children()
	require.Len(t, children, 3)

	assert.Equal(t, "plus", children[0].Kind())

	cn := children[1]
	assert.Equal(t, "cn", cn.Kind())
	assert.Equal(t, "complex", cn.Attribute("type"))
	assert.Equal(t, "", cn.Attribute("missing"))
	require.Len(t, cn.Children(), 1)
	assert.Equal(t, "sep", cn.Children()[0].Kind())
	assert.Equal(t, []string{"1", "3"}, cn.TextParts())
	assert.Equal(t, "13", cn.Text())

	ci := children[2]
	assert.Equal(t, "ci", ci.Kind())
	assert.Equal(t, "x", ci.Text())
}

func TestDecodeXMLErrors(t *testing.T) {
	_, err := markup.DecodeXML(strings.NewReader(""))
	assert.Error(t, err)

	_, err = markup.DecodeXML(strings.NewReader("<apply><plus/></apply"))
	assert.Error(t, err)

	_, err = markup.DecodeXML(strings.NewReader("<ci>x</ci><ci>y</ci>"))
	assert.Error(t, err)
}
