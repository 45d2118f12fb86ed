package types

// NumberKind identifies the variant of a numeric literal.
// The string values of the non-boolean kinds double as the value of the
// MathML <cn> "type" attribute.
type NumberKind string

const (
	KindInteger   NumberKind = "integer"
	KindDecimal   NumberKind = "decimal"
	KindRational  NumberKind = "rational"
	KindComplex   NumberKind = "complex"
	KindENotation NumberKind = "e-notation"
	KindBool      NumberKind = "bool"
)

// Number is an exact numeric literal.
//
// Single-part kinds (integer, decimal) keep the literal in Text exactly as
// written. Two-part kinds (rational, complex, e-notation) keep both parts in
// First and Second; each part must itself be a valid decimal literal so that
// no precision is lost between the text, tree and markup representations.
// Boolean constants use the Bool field.
type Number struct {
	Kind   NumberKind
	Text   string // integer and decimal kinds
	First  string // numerator, real part, mantissa
	Second string // denominator, imaginary part, exponent
	Bool   bool
}

// TwoPart reports whether the kind stores its value as a (First, Second) pair.
func (n Number) TwoPart() bool {
	switch n.Kind {
	case KindRational, KindComplex, KindENotation:
		return true
	default:
		return false
	}
}

// Integer returns an integer literal from its exact text.
func Integer(text string) Number {
	return Number{Kind: KindInteger, Text: text}
}

// Decimal returns a decimal literal from its exact text.
func Decimal(text string) Number {
	return Number{Kind: KindDecimal, Text: text}
}

// Rational returns an exact numerator/denominator pair.
func Rational(num, den string) Number {
	return Number{Kind: KindRational, First: num, Second: den}
}

// Complex returns an exact real/imaginary pair.
func Complex(re, im string) Number {
	return Number{Kind: KindComplex, First: re, Second: im}
}

// ENotation returns an exact mantissa/exponent pair.
func ENotation(mantissa, exponent string) Number {
	return Number{Kind: KindENotation, First: mantissa, Second: exponent}
}

// Bool returns a boolean constant.
func Bool(b bool) Number {
	return Number{Kind: KindBool, Bool: b}
}

// NumberKindFromAttr maps a <cn> type attribute value to a NumberKind.
// The second result is false for unknown attribute values.
func NumberKindFromAttr(attr string) (NumberKind, bool) {
	switch NumberKind(attr) {
	case KindInteger, KindDecimal, KindRational, KindComplex, KindENotation:
		return NumberKind(attr), true
	default:
		return "", false
	}
}

// IsIntegerLiteral reports whether s is a signed integer literal.
func IsIntegerLiteral(s string) bool {
	s = trimSign(s)
	if s == "" {
		return false
	}
	return allDigits(s)
}

// IsDecimalLiteral reports whether s is a signed decimal literal: an
// optionally signed digit sequence with at most one decimal point and at
// least one digit. Covers the forms the surface grammar accepts, including
// ".1" and "1.".
func IsDecimalLiteral(s string) bool {
	s = trimSign(s)
	if s == "" {
		return false
	}
	var digits bool
	var dots int
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits
}

func trimSign(s string) string {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[1:]
	}
	return s
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
