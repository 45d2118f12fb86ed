package types

import "fmt"

// ErrorCode represents a GoMathML error code.
type ErrorCode string

const (
	// S01xx: Lexer errors
	ErrInvalidCharacter ErrorCode = "S0101"
	ErrUnexpectedEnd    ErrorCode = "S0104"
	ErrDepthExceeded    ErrorCode = "S0105"

	// S02xx: Parser errors
	ErrSyntaxError       ErrorCode = "S0201"
	ErrExpectedToken     ErrorCode = "S0202"
	ErrExpectedKeyword   ErrorCode = "S0203"
	ErrChainedRelation   ErrorCode = "S0204"
	ErrEmptyArgumentList ErrorCode = "S0205"

	// U03xx: Markup extraction errors
	ErrUnknownElement      ErrorCode = "U0301"
	ErrFunctionComposition ErrorCode = "U0302"
	ErrChildCount          ErrorCode = "U0303"
	ErrMalformedConstant   ErrorCode = "U0304"
	ErrInvalidAttribute    ErrorCode = "U0305"

	// U04xx: Notation builder errors
	ErrUnknownNotation ErrorCode = "U0401"
)

// ParseError reports malformed or incomplete input text.
// The input is never partially accepted: any ParseError means no AST.
type ParseError struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
}

// NewParseError creates a new parse error.
func NewParseError(code ErrorCode, message string, position int) *ParseError {
	return &ParseError{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithToken adds the offending token text to the error.
func (e *ParseError) WithToken(token string) *ParseError {
	e.Token = token
	return e
}

// UnsupportedConstructError reports a markup shape the AST cannot model:
// function composition, unknown element kinds, wrong child counts in
// piece/interval elements, or malformed two-part constants.
type UnsupportedConstructError struct {
	Code   ErrorCode
	Detail string
}

// NewUnsupportedConstruct creates a new unsupported-construct error.
func NewUnsupportedConstruct(code ErrorCode, detail string) *UnsupportedConstructError {
	return &UnsupportedConstructError{Code: code, Detail: detail}
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("%s: unsupported construct: %s", e.Code, e.Detail)
}

// UnknownNotationError reports a render request for an unregistered
// notation builder.
type UnknownNotationError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownNotationError) Error() string {
	return fmt.Sprintf("%s: unknown notation %q", ErrUnknownNotation, e.Name)
}
