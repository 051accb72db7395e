package compiler

import "fmt"

// ScanError reports an unrecoverable lexing failure, such as an
// unexpected character or an unterminated string literal.
type ScanError struct {
	Pos     Position
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func scanErrorf(pos Position, format string, args ...any) *ScanError {
	return &ScanError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ParseError reports the first syntax error encountered. The parser does
// not synchronize; the whole parse aborts at this error.
type ParseError struct {
	Token   Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Type == TokenEOF {
		return fmt.Sprintf("line %d:%d: at end: %s", e.Token.Pos.Line, e.Token.Pos.Column, e.Message)
	}
	return fmt.Sprintf("line %d:%d: at %q: %s", e.Token.Pos.Line, e.Token.Pos.Column, e.Token.Literal, e.Message)
}

func parseErrorf(tok Token, format string, args ...any) *ParseError {
	return &ParseError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
