package builder

import (
	"strings"

	"github.com/sandrolain/gomathml/pkg/types"
)

// Binding powers shared by the builders; they mirror the parser's
// precedence table so that rendering and re-parsing agree on structure.
const (
	precOr         = 10
	precAnd        = 20
	precRelational = 30
	precAdditive   = 40
	precMultiplic  = 50
	precFactorOf   = 55
	precUnary      = 60
	precPower      = 70
	precAtom       = 100
)

// opInfo describes an infix operator.
type opInfo struct {
	prec       int
	rightAssoc bool
	nonAssoc   bool // parenthesize equal precedence on both sides
	word       bool // spelled operators need surrounding spaces
}

var infixOps = map[string]opInfo{
	"or":  {prec: precOr, word: true},
	"and": {prec: precAnd, word: true},
	"=":   {prec: precRelational, nonAssoc: true},
	"<>":  {prec: precRelational, nonAssoc: true},
	"!=":  {prec: precRelational, nonAssoc: true},
	">":   {prec: precRelational, nonAssoc: true},
	">=":  {prec: precRelational, nonAssoc: true},
	"<=":  {prec: precRelational, nonAssoc: true},
	"<":   {prec: precRelational, nonAssoc: true},
	"+":   {prec: precAdditive},
	"-":   {prec: precAdditive},
	"*":   {prec: precMultiplic},
	"/":   {prec: precMultiplic},
	"|":   {prec: precFactorOf},
	"^":   {prec: precPower, rightAssoc: true},
}

// renderNumber returns the textual form of a numeric literal and its
// binding power. Literals with a leading sign bind like a unary minus so
// that, for example, a negative mantissa gets parenthesized under "^".
func renderNumber(v types.Number) (string, int) {
	switch v.Kind {
	case types.KindBool:
		if v.Bool {
			return "true", precAtom
		}
		return "false", precAtom

	case types.KindENotation:
		return signedPrec(v.First + "e" + v.Second)

	case types.KindRational:
		return signedPrec(v.First + "//" + v.Second)

	case types.KindComplex:
		if v.First == "0" {
			return signedPrec(v.Second + "i")
		}
		// A complex constant with a non-zero real part has no literal
		// form; it renders parenthesized as a sum.
		if im, ok := strings.CutPrefix(v.Second, "-"); ok {
			return "(" + v.First + "-" + im + "i)", precAtom
		}
		return "(" + v.First + "+" + v.Second + "i)", precAtom

	default:
		return signedPrec(v.Text)
	}
}

func signedPrec(text string) (string, int) {
	if strings.HasPrefix(text, "-") {
		return text, precUnary
	}
	return text, precAtom
}

// intervalBrackets returns the opening and closing bracket characters for
// an interval closure.
func intervalBrackets(closure types.Closure) (string, string) {
	switch closure {
	case types.ClosureOpen:
		return "(", ")"
	case types.ClosureOpenClosed:
		return "(", "]"
	case types.ClosureClosedOpen:
		return "[", ")"
	default:
		return "[", "]"
	}
}
