package compiler

import (
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for Fen syntax
// ---------------------------------------------------------------------------

// Lexer tokenizes Fen source code in a single left-to-right pass.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
	col     int  // current column (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// twoCharTokens maps a leading operator character to its two-character
// extension. The second character is attempted greedily before falling
// back to the one-character token.
var twoCharTokens = map[rune]struct {
	second  rune
	twoType TokenType
	oneType TokenType
}{
	'+': {'=', TokenPlusEqual, TokenPlus},
	'-': {'=', TokenMinusEqual, TokenMinus},
	'*': {'=', TokenStarEqual, TokenStar},
	'/': {'=', TokenSlashEqual, TokenSlash},
	'=': {'=', TokenEqualEqual, TokenEqual},
	'!': {'=', TokenBangEqual, TokenBang},
	'<': {'=', TokenLessEqual, TokenLess},
	'>': {'=', TokenGreaterEqual, TokenGreater},
	'.': {'.', TokenDotDot, TokenDot},
}

var oneCharTokens = map[rune]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
}

// NextToken returns the next token, or a ScanError for input the lexer
// cannot tokenize.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespaceAndComments()

	pos := l.position()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Literal: "", Pos: pos}, nil

	case l.ch == '"':
		return l.readString(pos)

	case l.ch == '#':
		return l.readAtom(pos)

	case isDigit(l.ch):
		return l.readNumber(pos), nil

	case isLetter(l.ch) || l.ch == '_':
		return l.readIdentifier(pos), nil
	}

	if tc, ok := twoCharTokens[l.ch]; ok {
		ch := l.ch
		l.readChar()
		// '->' shares its first character with '-' and '-='
		if ch == '-' && l.ch == '>' {
			l.readChar()
			return Token{Type: TokenArrow, Literal: "->", Pos: pos}, nil
		}
		if l.ch == tc.second {
			l.readChar()
			return Token{Type: tc.twoType, Literal: string(ch) + string(tc.second), Pos: pos}, nil
		}
		return Token{Type: tc.oneType, Literal: string(ch), Pos: pos}, nil
	}

	if typ, ok := oneCharTokens[l.ch]; ok {
		ch := l.ch
		l.readChar()
		return Token{Type: typ, Literal: string(ch), Pos: pos}, nil
	}

	ch := l.ch
	l.readChar()
	return Token{}, scanErrorf(pos, "unexpected character %q", ch)
}

// skipWhitespaceAndComments skips whitespace and // line comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

// readString reads a string literal. The raw content between the quotes
// becomes the payload; no escape sequences are processed.
func (l *Lexer) readString(pos Position) (Token, error) {
	l.readChar() // consume opening "

	start := l.pos
	for l.ch != '"' {
		if l.ch == 0 {
			return Token{}, scanErrorf(pos, "unterminated string")
		}
		l.readChar()
	}
	literal := l.input[start:l.pos]
	l.readChar() // consume closing "

	return Token{Type: TokenString, Literal: literal, Pos: pos}, nil
}

// readAtom reads an atom literal: # followed by an identifier.
func (l *Lexer) readAtom(pos Position) (Token, error) {
	l.readChar() // consume #

	if !isLetter(l.ch) && l.ch != '_' {
		return Token{}, scanErrorf(pos, "expected identifier after %q", '#')
	}

	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	return Token{Type: TokenAtom, Literal: l.input[start:l.pos], Pos: pos}, nil
}

// readNumber reads a numeric literal: digits, optionally followed by a
// dot and more digits. No exponent notation, no leading-dot form.
func (l *Lexer) readNumber(pos Position) Token {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	// A dot only continues the number when a digit follows; "1..3" keeps
	// its range operator intact.
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume .
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return Token{Type: TokenNumber, Literal: l.input[start:l.pos], Pos: pos}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(pos Position) Token {
	start := l.pos

	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	if typ, ok := reservedWords[literal]; ok {
		return Token{Type: typ, Literal: literal, Pos: pos}
	}
	return Token{Type: TokenIdentifier, Literal: literal, Pos: pos}
}

// Helper functions

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Tokenize returns all tokens from the input, or the first scan error.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
