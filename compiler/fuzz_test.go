package compiler

import (
	"testing"
)

// ---------------------------------------------------------------------------
// FuzzLexer: ensure the lexer never panics on arbitrary input.
// ---------------------------------------------------------------------------

func FuzzLexer(f *testing.F) {
	// Seed corpus: valid Fen snippets covering diverse token types
	seeds := []string{
		// Basic tokens
		`( ) [ ] { } , : ; . ..`,
		// Numbers
		`42`, `0`, `3.14`, `0.5`, `1000000`,
		// Strings
		`"hello"`, `"hello world"`, `""`, `"no \n escapes"`,
		// Atoms
		`#ok`, `#NotFound`, `#_private`,
		// Identifiers and reserved words
		`foo`, `FooBar`, `foo123`, `_private`, `nil`, `true`, `false`,
		`let`, `fun`, `match`, `while`, `for`, `in`,
		// Operators
		`+`, `-`, `*`, `/`, `<`, `>`, `<=`, `>=`, `=`, `!=`, `==`, `->`, `..`,
		`+=`, `-=`, `*=`, `/=`,
		// Comments
		"// a comment\nfoo",
		// Complete statements
		`let x = 42;`,
		`x += 1;`,
		`3 + 4 * 5`,
		`fun add(a, b) { a + b }`,
		`for (k, v) in d { print(k); }`,
		`match t { [a, b] -> a, _ -> nil }`,
		`[a: 1, b: 2]`,
		`[:]`,
		`1..10`,
		// Edge cases
		`#`, `"unterminated`, `1..`, `...`,
		// Unicode
		`"こんにちは"`, `café`, `naïve`,
		// Empty
		``,
		// Whitespace only
		`   `, "\t\n\r",
		// Binary soup
		"\x00\x01\x02", "\xff\xfe",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Must terminate and never panic; errors are fine.
		l := NewLexer(input)
		for {
			tok, err := l.NextToken()
			if err != nil {
				return
			}
			if tok.Type == TokenEOF {
				return
			}
		}
	})
}

// ---------------------------------------------------------------------------
// FuzzParse: ensure the parser never panics on arbitrary input.
// ---------------------------------------------------------------------------

func FuzzParse(f *testing.F) {
	seeds := []string{
		`let x = 1;`,
		`fun f(a) { if a { return 1; }; 2 }`,
		`while x < 10 { x += 1; }`,
		`for i in 0..3 { print(i); }`,
		`match [1, [2, 3]] { [a, [b, c]] -> b, _ -> nil }`,
		`let d = [status: #ok]; d.status`,
		`(1, 2, 3)`,
		`{ let y = 2; y }`,
		`x = y = z`,
		`a.b.c[0](1)(2)`,
		`if a { 1 } else if b { 2 } else { 3 }`,
		// Malformed
		`let;`, `fun (`, `match {`, `1 = 2;`, `[a:`, `..`, `{`,
		``,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Either a program or an error; never a panic.
		prog, err := Parse(input)
		if err == nil && prog == nil {
			t.Error("Parse returned nil program without error")
		}
	})
}
