// Package markup converts between the AST and MathML content markup.
//
// The package has two symmetric halves:
//   - Emit walks an AST and produces a stream of typed element events on a
//     caller-supplied EventSink.
//   - Extract walks an Element view of a previously built document and
//     reconstructs the AST.
//
// Both halves share the static operator and constant tables below. The core
// never touches a concrete document type; NewXMLSink and DecodeXML are thin
// optional adapters for textual XML.
package markup

// Namespace is the fixed namespace URI of the markup vocabulary.
const Namespace = "http://www.w3.org/1998/Math/MathML"

// Element names of the markup vocabulary.
const (
	elApply     = "apply"
	elCI        = "ci"
	elCN        = "cn"
	elSep       = "sep"
	elPiecewise = "piecewise"
	elPiece     = "piece"
	elOtherwise = "otherwise"
	elList      = "list"
	elInterval  = "interval"
	elTrue      = "true"
	elFalse     = "false"
)

// Attribute names.
const (
	attrType    = "type"
	attrClosure = "closure"
)

// operatorElements maps AST operator symbols to their element names.
// Both relational spellings map forward; elementOperators below fixes "<>"
// as the canonical symbol recovered from markup.
var operatorElements = map[string]string{
	"+":  "plus",
	"-":  "minus",
	"*":  "times",
	"/":  "divide",
	"^":  "power",
	"|":  "factorof",
	"=":  "eq",
	"<>": "neq",
	"!=": "neq",
	">":  "gt",
	">=": "geq",
	"<=": "leq",
	"<":  "lt",
}

// elementOperators is the inverse of operatorElements. Both directions are
// spelled out so that the tables are immutable from initialization on.
var elementOperators = map[string]string{
	"plus":     "+",
	"minus":    "-",
	"times":    "*",
	"divide":   "/",
	"power":    "^",
	"factorof": "|",
	"eq":       "=",
	"neq":      "<>",
	"gt":       ">",
	"geq":      ">=",
	"leq":      "<=",
	"lt":       "<",
}

// constantElements maps bound symbolic names to their empty-element forms.
var constantElements = map[string]string{
	"true":  elTrue,
	"false": elFalse,
	"pi":    "pi",
	"i":     "imaginaryi",
	"e":     "exponentiale",
}

// elementConstants is the inverse of constantElements, recovering the short
// canonical names.
var elementConstants = map[string]string{
	elTrue:         "true",
	elFalse:        "false",
	"pi":           "pi",
	"imaginaryi":   "i",
	"exponentiale": "e",
}
