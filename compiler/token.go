package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Token types for the Fen lexer
// ---------------------------------------------------------------------------

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Literals
	TokenNumber     // 42, 3.14
	TokenString     // "hello"
	TokenAtom       // #ok, #NotFound
	TokenIdentifier // foo, Bar

	// Operators
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenBang         // !
	TokenEqual        // =
	TokenPlusEqual    // +=
	TokenMinusEqual   // -=
	TokenStarEqual    // *=
	TokenSlashEqual   // /=
	TokenEqualEqual   // ==
	TokenBangEqual    // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenDotDot       // ..
	TokenArrow        // ->

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenComma     // ,
	TokenDot       // .
	TokenColon     // :
	TokenSemicolon // ;

	// Keywords
	TokenLet
	TokenFun
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenIn
	TokenMatch
	TokenBreak
	TokenReturn
	TokenAnd
	TokenOr
	TokenTrue
	TokenFalse
	TokenNil
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenNumber:       "NUMBER",
	TokenString:       "STRING",
	TokenAtom:         "ATOM",
	TokenIdentifier:   "IDENTIFIER",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenBang:         "!",
	TokenEqual:        "=",
	TokenPlusEqual:    "+=",
	TokenMinusEqual:   "-=",
	TokenStarEqual:    "*=",
	TokenSlashEqual:   "/=",
	TokenEqualEqual:   "==",
	TokenBangEqual:    "!=",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenDotDot:       "..",
	TokenArrow:        "->",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenColon:        ":",
	TokenSemicolon:    ";",
	TokenLet:          "let",
	TokenFun:          "fun",
	TokenIf:           "if",
	TokenElse:         "else",
	TokenWhile:        "while",
	TokenFor:          "for",
	TokenIn:           "in",
	TokenMatch:        "match",
	TokenBreak:        "break",
	TokenReturn:       "return",
	TokenAnd:          "and",
	TokenOr:           "or",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenNil:          "nil",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", t)
}

// Token represents a lexical token. Tokens are immutable once produced.
type Token struct {
	Type    TokenType
	Literal string   // raw text; payload for strings/atoms (sans delimiters)
	Pos     Position // start position
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%s(%q...)", t.Type, t.Literal[:20])
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

// Reserved words mapped to their token types.
var reservedWords = map[string]TokenType{
	"let":    TokenLet,
	"fun":    TokenFun,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"for":    TokenFor,
	"in":     TokenIn,
	"match":  TokenMatch,
	"break":  TokenBreak,
	"return": TokenReturn,
	"and":    TokenAnd,
	"or":     TokenOr,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"nil":    TokenNil,
}
