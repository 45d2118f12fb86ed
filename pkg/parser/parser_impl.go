package parser

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gomathml/pkg/types"
)

// dialect selects which grammar the parser accepts.
type dialect uint8

const (
	dialectTerm dialect = iota
	dialectBool
)

// Parser implements a recursive descent parser for terms and boolean
// expressions, using precedence climbing for operator binding.
type Parser struct {
	lexer   *Lexer
	current Token
	dialect dialect
	depth   int
	opts    Options
}

// newParser creates a new parser for the given input string and dialect.
func newParser(input string, d dialect, opts ...Option) *Parser {
	options := Options{
		MaxDepth: 100,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		lexer:   NewLexer(input),
		dialect: d,
		opts:    options,
	}

	// Read the first token
	p.advance()

	return p
}

// parse parses the entire input and returns the parsed term.
func (p *Parser) parse() (*types.Term, error) {
	node, err := p.parseWhole()
	if err != nil {
		return nil, err
	}
	return types.NewTerm(node, p.lexer.input), nil
}

func (p *Parser) parseWhole() (types.Node, error) {
	if p.current.Type == TokenError {
		return nil, p.lexer.Err()
	}
	if p.current.Type == TokenEOF {
		return nil, p.error(types.ErrUnexpectedEnd, "Empty expression")
	}

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.current.Type == TokenError {
		return nil, p.lexer.Err()
	}
	if p.current.Type != TokenEOF {
		return nil, p.error(types.ErrSyntaxError, fmt.Sprintf("Unexpected token: %s", p.current.Value))
	}

	return node, nil
}

// parseList parses a comma-separated sequence of terms.
func (p *Parser) parseList() (*types.Term, error) {
	if p.current.Type == TokenError {
		return nil, p.lexer.Err()
	}
	if p.current.Type == TokenEOF {
		return nil, p.error(types.ErrUnexpectedEnd, "Empty term list")
	}

	var items []types.Node
	for {
		item, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}

	if p.current.Type == TokenError {
		return nil, p.lexer.Err()
	}
	if p.current.Type != TokenEOF {
		return nil, p.error(types.ErrSyntaxError, fmt.Sprintf("Unexpected token: %s", p.current.Value))
	}

	list := &types.Collection{Kind: types.List, Items: items}
	return types.NewTerm(list, p.lexer.input), nil
}

// Operator precedence table (binding power)
// Higher values bind more tightly
var precedence = map[TokenType]int{
	TokenOr:           10, // or
	TokenAnd:          20, // and
	TokenEqual:        30, // =
	TokenNotEqual:     30, // <>
	TokenLess:         30, // <
	TokenLessEqual:    30, // <=
	TokenGreater:      30, // >
	TokenGreaterEqual: 30, // >=
	TokenPlus:         40, // +
	TokenMinus:        40, // -
	TokenMult:         50, // *
	TokenDiv:          50, // /
	TokenFactor:       55, // |
	TokenPow:          70, // ^ (right-associative)
}

const (
	// precNot binds tighter than "and" but looser than relationals.
	precNot = 25
	// precUnaryMinus binds tighter than every binary operator except power.
	precUnaryMinus = 60
)

// operatorSymbols maps operator tokens to the AST operator symbol.
// Both "<>" and "!=" surface forms normalize to "<>" so that an AST
// round-tripped through markup compares equal to the original.
var operatorSymbols = map[TokenType]string{
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenMult:         "*",
	TokenDiv:          "/",
	TokenPow:          "^",
	TokenFactor:       "|",
	TokenEqual:        "=",
	TokenNotEqual:     "<>",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenAnd:          "and",
	TokenOr:           "or",
}

// getPrecedence returns the binding power of a token type under the
// current dialect. Boolean operators do not bind in the term dialect,
// so a term like "1 = 1 or true" fails at the "or" token.
func (p *Parser) getPrecedence(tt TokenType) int {
	if p.dialect == dialectTerm && (tt == TokenAnd || tt == TokenOr) {
		return 0
	}
	if prec, ok := precedence[tt]; ok {
		return prec
	}
	return 0
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.current = p.lexer.Next()
}

// expect checks that the current token matches the expected type and advances.
func (p *Parser) expect(tt TokenType) error {
	if p.current.Type != tt {
		return p.error(types.ErrExpectedToken, fmt.Sprintf("Expected %s but got %s", tt.String(), p.current.Type.String()))
	}
	p.advance()
	return nil
}

// error creates a parser error at the current token.
func (p *Parser) error(code types.ErrorCode, message string) error {
	return &types.ParseError{
		Code:     code,
		Message:  message,
		Position: p.current.Position,
		Token:    p.current.Value,
	}
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (p *Parser) parseExpression(rbp int) (types.Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.MaxDepth {
		return nil, p.error(types.ErrDepthExceeded, "Expression nesting too deep")
	}

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for rbp < p.getPrecedence(p.current.Type) {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses an expression that does not require a left-hand side.
func (p *Parser) parsePrefix() (types.Node, error) {
	token := p.current

	switch token.Type {
	case TokenNumber, TokenImaginary, TokenRational:
		return p.parseNumberLiteral()
	case TokenBoolean:
		return p.parseBooleanLiteral()
	case TokenName:
		return p.parseNameOrCall()
	case TokenMinus:
		return p.parseUnaryMinus()
	case TokenNot:
		return p.parseNot()
	case TokenParenOpen, TokenBracketOpen:
		return p.parseGroupOrInterval()
	case TokenCase:
		return p.parseCase()
	case TokenEOF:
		return nil, p.error(types.ErrUnexpectedEnd, "Unexpected end of input")
	case TokenError:
		return nil, p.lexer.Err()
	default:
		return nil, p.error(types.ErrSyntaxError, fmt.Sprintf("Unexpected token: %s", token.Type.String()))
	}
}

// parseInfix parses an expression that requires a left-hand side.
func (p *Parser) parseInfix(left types.Node) (types.Node, error) {
	switch p.current.Type {
	case TokenPlus, TokenMinus, TokenMult, TokenDiv, TokenPow, TokenFactor,
		TokenAnd, TokenOr:
		return p.parseBinary(left)
	case TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual,
		TokenGreater, TokenGreaterEqual:
		return p.parseRelational(left)
	default:
		return nil, p.error(types.ErrSyntaxError, fmt.Sprintf("Unexpected infix token: %s", p.current.Type.String()))
	}
}

// parseBinary parses a left-associative binary operator, except for power
// which is right-associative.
func (p *Parser) parseBinary(left types.Node) (types.Node, error) {
	token := p.current
	prec := p.getPrecedence(token.Type)
	p.advance()

	rbp := prec
	if token.Type == TokenPow {
		// Right-associative: allow an equal-precedence power on the right.
		rbp = prec - 1
	}

	right, err := p.parseExpression(rbp)
	if err != nil {
		return nil, err
	}

	return &types.Apply{
		Op:       operatorSymbols[token.Type],
		Operands: []types.Node{left, right},
	}, nil
}

// parseRelational parses a relational operator. Relational operators do not
// chain: "a = b = c" is a parse error, not an implicit conjunction.
func (p *Parser) parseRelational(left types.Node) (types.Node, error) {
	token := p.current
	prec := p.getPrecedence(token.Type)
	p.advance()

	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}

	if isRelational(p.current.Type) {
		return nil, p.error(types.ErrChainedRelation, "Relational operators cannot be chained")
	}

	return &types.Apply{
		Op:       operatorSymbols[token.Type],
		Operands: []types.Node{left, right},
	}, nil
}

func isRelational(tt TokenType) bool {
	switch tt {
	case TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual,
		TokenGreater, TokenGreaterEqual:
		return true
	default:
		return false
	}
}

// parseNumberLiteral parses an integer, decimal, e-notation, imaginary or
// rational literal into a Const node, keeping the exact source text.
func (p *Parser) parseNumberLiteral() (types.Node, error) {
	token := p.current
	p.advance()

	switch token.Type {
	case TokenImaginary:
		// A bare "Ni" literal is a single complex constant with zero
		// real part, not an operator application.
		im := strings.TrimSuffix(token.Value, "i")
		return &types.Const{Value: types.Complex("0", im)}, nil

	case TokenRational:
		num, den, _ := strings.Cut(token.Value, "//")
		return &types.Const{Value: types.Rational(num, den)}, nil
	}

	text := token.Value
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		return &types.Const{Value: types.ENotation(text[:i], text[i+1:])}, nil
	}
	if strings.Contains(text, ".") {
		return &types.Const{Value: types.Decimal(text)}, nil
	}
	return &types.Const{Value: types.Integer(text)}, nil
}

// parseBooleanLiteral parses "true" or "false".
func (p *Parser) parseBooleanLiteral() (types.Node, error) {
	value := strings.EqualFold(p.current.Value, "true")
	p.advance()
	return &types.Const{Value: types.Bool(value)}, nil
}

// parseNameOrCall parses an identifier, or a function call when the
// identifier is followed by an argument list.
func (p *Parser) parseNameOrCall() (types.Node, error) {
	name := p.current.Value
	p.advance()

	if p.current.Type != TokenParenOpen {
		return &types.Name{Identifier: name}, nil
	}
	p.advance()

	if p.current.Type == TokenParenClose {
		return nil, p.error(types.ErrEmptyArgumentList, fmt.Sprintf("Function call %s() requires at least one argument", name))
	}

	var args []types.Node
	for {
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	return &types.Apply{Op: name, Operands: args}, nil
}

// parseUnaryMinus parses a prefix minus. It binds tighter than every
// binary operator except power, so "-2^2" is the negation of "2^2".
func (p *Parser) parseUnaryMinus() (types.Node, error) {
	p.advance()

	operand, err := p.parseExpression(precUnaryMinus)
	if err != nil {
		return nil, err
	}

	return &types.Apply{Op: "-", Operands: []types.Node{operand}}, nil
}

// parseNot parses a prefix "not". Only the boolean dialect has it.
func (p *Parser) parseNot() (types.Node, error) {
	if p.dialect != dialectBool {
		return nil, p.error(types.ErrSyntaxError, "Unexpected token: not")
	}
	p.advance()

	operand, err := p.parseExpression(precNot)
	if err != nil {
		return nil, err
	}

	return &types.Apply{Op: "not", Operands: []types.Node{operand}}, nil
}

// parseGroupOrInterval parses a parenthesized expression or an interval
// literal. Interval endpoints are separated by a colon; the bracket shapes
// select the closure: [a:b] closed, (a:b) open, [a:b) closed-open,
// (a:b] open-closed.
func (p *Parser) parseGroupOrInterval() (types.Node, error) {
	open := p.current.Type
	p.advance()

	first, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.current.Type == TokenColon {
		p.advance()
		return p.parseIntervalEnd(open, first)
	}

	if open == TokenBracketOpen {
		return nil, p.error(types.ErrExpectedToken, "Expected : in interval")
	}
	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *Parser) parseIntervalEnd(open TokenType, first types.Node) (types.Node, error) {
	second, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	var closure types.Closure
	switch {
	case open == TokenParenOpen && p.current.Type == TokenParenClose:
		closure = types.ClosureOpen
	case open == TokenParenOpen && p.current.Type == TokenBracketClose:
		closure = types.ClosureOpenClosed
	case open == TokenBracketOpen && p.current.Type == TokenBracketClose:
		closure = types.ClosureClosed
	case open == TokenBracketOpen && p.current.Type == TokenParenClose:
		closure = types.ClosureClosedOpen
	default:
		return nil, p.error(types.ErrExpectedToken, fmt.Sprintf("Expected ) or ] but got %s", p.current.Type.String()))
	}
	p.advance()

	return &types.Collection{
		Kind:    types.Interval,
		Closure: closure,
		Items:   []types.Node{first, second},
	}, nil
}

// parseCase parses CASE WHEN cond THEN value [WHEN ...] [ELSE default] END.
// Keywords are case-insensitive. Conditions are parsed in the boolean
// dialect regardless of the enclosing grammar; values and the default stay
// in the enclosing dialect.
func (p *Parser) parseCase() (types.Node, error) {
	p.advance()

	var clauses []types.CaseClause
	for p.current.Type == TokenWhen {
		p.advance()

		saved := p.dialect
		p.dialect = dialectBool
		cond, err := p.parseExpression(0)
		p.dialect = saved
		if err != nil {
			return nil, err
		}

		if err := p.expect(TokenThen); err != nil {
			return nil, err
		}

		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}

		clauses = append(clauses, types.CaseClause{Condition: cond, Value: value})
	}

	if len(clauses) == 0 {
		return nil, p.error(types.ErrExpectedKeyword, "Expected WHEN after CASE")
	}

	var otherwise types.Node
	if p.current.Type == TokenElse {
		p.advance()
		var err error
		otherwise, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(TokenEnd); err != nil {
		return nil, err
	}

	return &types.Case{Clauses: clauses, Otherwise: otherwise}, nil
}
