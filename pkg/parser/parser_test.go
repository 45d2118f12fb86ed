package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gomathml/pkg/parser"
	"github.com/sandrolain/gomathml/pkg/types"
)

// AST construction shorthands.

func num(text string) types.Node {
	return &types.Const{Value: types.Integer(text)}
}

func dec(text string) types.Node {
	return &types.Const{Value: types.Decimal(text)}
}

func boolean(v bool) types.Node {
	return &types.Const{Value: types.Bool(v)}
}

func name(id string) types.Node {
	return &types.Name{Identifier: id}
}

func apply(op string, operands ...types.Node) types.Node {
	return &types.Apply{Op: op, Operands: operands}
}

func TestParseTermLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  types.Node
	}{
		{"42", num("42")},
		{"1.5", dec("1.5")},
		{".1", dec(".1")},
		{"1.2e10", &types.Const{Value: types.ENotation("1.2", "10")}},
		{"3E-4", &types.Const{Value: types.ENotation("3", "-4")}},
		{"3i", &types.Const{Value: types.Complex("0", "3")}},
		{"2.5i", &types.Const{Value: types.Complex("0", "2.5")}},
		{"3//4", &types.Const{Value: types.Rational("3", "4")}},
		{"x", name("x")},
		{"a.b", name("a.b")},
		{"pi", name("pi")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term, err := parser.ParseTerm(tt.input)
			require.NoError(t, err)
			assert.True(t, types.Equal(tt.want, term.AST()), "got %#v", term.AST())
			assert.Equal(t, tt.input, term.Source())
		})
	}
}

func TestParseTermOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Node
	}{
		{
			"multiplication binds tighter than addition",
			"1 + 2*3",
			apply("+", num("1"), apply("*", num("2"), num("3"))),
		},
		{
			"left associative subtraction",
			"1 - 2 - 3",
			apply("-", apply("-", num("1"), num("2")), num("3")),
		},
		{
			"right associative power",
			"2^3^4",
			apply("^", num("2"), apply("^", num("3"), num("4"))),
		},
		{
			"parenthesized power",
			"(2^3)^4",
			apply("^", apply("^", num("2"), num("3")), num("4")),
		},
		{
			"unary minus of power",
			"-2^2",
			apply("-", apply("^", num("2"), num("2"))),
		},
		{
			"unary minus binds tighter than multiplication",
			"-2*3",
			apply("*", apply("-", num("2")), num("3")),
		},
		{
			"double unary minus",
			"6*-1",
			apply("*", num("6"), apply("-", num("1"))),
		},
		{
			"divides relation",
			"3|12",
			apply("|", num("3"), num("12")),
		},
		{
			"divides binds tighter than multiplication",
			"2*3|12",
			apply("*", num("2"), apply("|", num("3"), num("12"))),
		},
		{
			"relational",
			"x < 2",
			apply("<", name("x"), num("2")),
		},
		{
			"not-equal forms normalize",
			"x != 2",
			apply("<>", name("x"), num("2")),
		},
		{
			"parentheses group",
			"(1+2)*3",
			apply("*", apply("+", num("1"), num("2")), num("3")),
		},
		{
			"function call",
			"sin(x)",
			apply("sin", name("x")),
		},
		{
			"multi-argument call",
			"max(1, 2, 3)",
			apply("max", num("1"), num("2"), num("3")),
		},
		{
			"imaginary in arithmetic",
			"2*(1+3i)",
			apply("*", num("2"), apply("+", num("1"), &types.Const{Value: types.Complex("0", "3")})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := parser.ParseTerm(tt.input)
			require.NoError(t, err)
			assert.True(t, types.Equal(tt.want, term.AST()), "input %q: got %#v", tt.input, term.AST())
		})
	}
}

func TestParseBoolExpression(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Node
	}{
		{
			"or of relations",
			"x = 1 or y = 2",
			apply("or", apply("=", name("x"), num("1")), apply("=", name("y"), num("2"))),
		},
		{
			"and binds tighter than or",
			"a or b and c",
			apply("or", name("a"), apply("and", name("b"), name("c"))),
		},
		{
			"not binds tighter than and",
			"not a and b",
			apply("and", apply("not", name("a")), name("b")),
		},
		{
			"not of relation",
			"not x < 2",
			apply("not", apply("<", name("x"), num("2"))),
		},
		{
			"boolean literals",
			"true or false",
			apply("or", boolean(true), boolean(false)),
		},
		{
			"plain term is a valid boolean expression",
			"1 + 2",
			apply("+", num("1"), num("2")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := parser.ParseBoolExpression(tt.input)
			require.NoError(t, err)
			assert.True(t, types.Equal(tt.want, term.AST()), "input %q: got %#v", tt.input, term.AST())
		})
	}
}

func TestParseCase(t *testing.T) {
	term, err := parser.ParseTerm("CASE WHEN 3|12 THEN 1+3 ELSE e^(4*1) END")
	require.NoError(t, err)

	want := &types.Case{
		Clauses: []types.CaseClause{
			{
				Condition: apply("|", num("3"), num("12")),
				Value:     apply("+", num("1"), num("3")),
			},
		},
		Otherwise: apply("^", name("e"), apply("*", num("4"), num("1"))),
	}
	assert.True(t, types.Equal(want, term.AST()), "got %#v", term.AST())
}

func TestParseCaseMultiClause(t *testing.T) {
	term, err := parser.ParseTerm("case when x < 0 then -1 when x = 0 then 0 else 1 end")
	require.NoError(t, err)

	want := &types.Case{
		Clauses: []types.CaseClause{
			{Condition: apply("<", name("x"), num("0")), Value: apply("-", num("1"))},
			{Condition: apply("=", name("x"), num("0")), Value: num("0")},
		},
		Otherwise: num("1"),
	}
	assert.True(t, types.Equal(want, term.AST()), "got %#v", term.AST())
}

func TestParseCaseNoOtherwise(t *testing.T) {
	term, err := parser.ParseTerm("case when x > 0 then x end")
	require.NoError(t, err)

	ast, ok := term.AST().(*types.Case)
	require.True(t, ok)
	assert.Len(t, ast.Clauses, 1)
	assert.Nil(t, ast.Otherwise)
}

func TestParseCaseBooleanCondition(t *testing.T) {
	// CASE conditions use the boolean grammar even inside a term.
	term, err := parser.ParseTerm("case when a and b then 1 else 2 end")
	require.NoError(t, err)

	ast, ok := term.AST().(*types.Case)
	require.True(t, ok)
	assert.True(t, types.Equal(apply("and", name("a"), name("b")), ast.Clauses[0].Condition))
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input   string
		closure types.Closure
	}{
		{"[1:2]", types.ClosureClosed},
		{"(1:2)", types.ClosureOpen},
		{"[1:2)", types.ClosureClosedOpen},
		{"(1:2]", types.ClosureOpenClosed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term, err := parser.ParseTerm(tt.input)
			require.NoError(t, err)

			coll, ok := term.AST().(*types.Collection)
			require.True(t, ok)
			assert.Equal(t, types.Interval, coll.Kind)
			assert.Equal(t, tt.closure, coll.Closure)
			require.Len(t, coll.Items, 2)
			assert.True(t, types.Equal(num("1"), coll.Items[0]))
			assert.True(t, types.Equal(num("2"), coll.Items[1]))
		})
	}
}

func TestParseTermList(t *testing.T) {
	term, err := parser.ParseTermList("1, 2+3, sin(x)")
	require.NoError(t, err)

	want := &types.Collection{
		Kind: types.List,
		Items: []types.Node{
			num("1"),
			apply("+", num("2"), num("3")),
			apply("sin", name("x")),
		},
	}
	assert.True(t, types.Equal(want, term.AST()), "got %#v", term.AST())
}

func TestParseTermListSingle(t *testing.T) {
	term, err := parser.ParseTermList("x")
	require.NoError(t, err)

	coll, ok := term.AST().(*types.Collection)
	require.True(t, ok)
	assert.Equal(t, types.List, coll.Kind)
	assert.Len(t, coll.Items, 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  types.ErrorCode
	}{
		{"empty input", "", types.ErrUnexpectedEnd},
		{"whitespace only", "   ", types.ErrUnexpectedEnd},
		{"trailing operator", "1+", types.ErrUnexpectedEnd},
		{"doubled operator", "1+*2", types.ErrSyntaxError},
		{"leftover input", "1 2", types.ErrSyntaxError},
		{"chained relation", "a = b = c", types.ErrChainedRelation},
		{"chained mixed relation", "1 < x <= 2", types.ErrChainedRelation},
		{"empty argument list", "f()", types.ErrEmptyArgumentList},
		{"unclosed paren", "(1+2", types.ErrExpectedToken},
		{"bracket without colon", "[1+2]", types.ErrExpectedToken},
		{"case without when", "case else 1 end", types.ErrExpectedKeyword},
		{"case without end", "case when a then 1", types.ErrExpectedToken},
		{"case without then", "case when a 1 end", types.ErrExpectedToken},
		{"invalid character", "1 $ 2", types.ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseTerm(tt.input)
			var perr *types.ParseError
			require.ErrorAs(t, err, &perr, "input %q", tt.input)
			assert.Equal(t, tt.code, perr.Code, "input %q: %v", tt.input, err)
		})
	}
}

func TestParseTermRejectsBooleanOperators(t *testing.T) {
	// The term grammar stops at "or"; the unconsumed token is the error.
	_, err := parser.ParseTerm("1 = 1 or true")
	var perr *types.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, types.ErrSyntaxError, perr.Code)

	_, err = parser.ParseTerm("not x")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, types.ErrSyntaxError, perr.Code)

	// The same input parses in the boolean grammar.
	_, err = parser.ParseBoolExpression("1 = 1 or true")
	assert.NoError(t, err)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.ParseTerm("1 + * 2")
	var perr *types.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Position)
	assert.Contains(t, err.Error(), "position 4")
}

func TestParseMaxDepth(t *testing.T) {
	input := ""
	for i := 0; i < 30; i++ {
		input += "("
	}
	input += "1"
	for i := 0; i < 30; i++ {
		input += ")"
	}

	_, err := parser.ParseTerm(input, parser.WithMaxDepth(10))
	var perr *types.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, types.ErrDepthExceeded, perr.Code)

	_, err = parser.ParseTerm(input)
	assert.NoError(t, err)
}

func TestParseDemoTerm(t *testing.T) {
	const input = ".1*pi+2*(1+3i)-5.6-6*-1/sin(-45*a.b) * CASE WHEN 3|12 THEN 1+3 ELSE e^(4*1) END + 1"

	term, err := parser.ParseTerm(input)
	require.NoError(t, err)
	require.NotNil(t, term.AST())
	assert.Equal(t, input, term.Source())
}
