package compiler

// ---------------------------------------------------------------------------
// AST: Abstract syntax tree for Fen
// ---------------------------------------------------------------------------

// Position represents a source location.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Position
	node() // marker method
}

// ---------------------------------------------------------------------------
// Expression nodes
// ---------------------------------------------------------------------------

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr() // marker method
}

// NumberLiteral represents a numeric literal.
type NumberLiteral struct {
	PosVal Position
	Value  float64
}

func (n *NumberLiteral) Pos() Position { return n.PosVal }
func (n *NumberLiteral) node()         {}
func (n *NumberLiteral) expr()         {}

// StringLiteral represents a string literal.
type StringLiteral struct {
	PosVal Position
	Value  string
}

func (n *StringLiteral) Pos() Position { return n.PosVal }
func (n *StringLiteral) node()         {}
func (n *StringLiteral) expr()         {}

// AtomLiteral represents an atom literal (#ok).
type AtomLiteral struct {
	PosVal Position
	Name   string
}

func (n *AtomLiteral) Pos() Position { return n.PosVal }
func (n *AtomLiteral) node()         {}
func (n *AtomLiteral) expr()         {}

// BoolLiteral represents true or false.
type BoolLiteral struct {
	PosVal Position
	Value  bool
}

func (n *BoolLiteral) Pos() Position { return n.PosVal }
func (n *BoolLiteral) node()         {}
func (n *BoolLiteral) expr()         {}

// NilLiteral represents the nil literal.
type NilLiteral struct {
	PosVal Position
}

func (n *NilLiteral) Pos() Position { return n.PosVal }
func (n *NilLiteral) node()         {}
func (n *NilLiteral) expr()         {}

// ListLiteral represents a list literal [1, 2, 3].
type ListLiteral struct {
	PosVal   Position
	Elements []Expr
}

func (n *ListLiteral) Pos() Position { return n.PosVal }
func (n *ListLiteral) node()         {}
func (n *ListLiteral) expr()         {}

// DictEntry is one key: value pair of a dict literal.
type DictEntry struct {
	Key   string
	Value Expr
}

// DictLiteral represents a dict literal [a: 1, b: 2] or [:].
type DictLiteral struct {
	PosVal  Position
	Entries []DictEntry
}

func (n *DictLiteral) Pos() Position { return n.PosVal }
func (n *DictLiteral) node()         {}
func (n *DictLiteral) expr()         {}

// TupleLiteral represents a tuple literal (a, b).
type TupleLiteral struct {
	PosVal   Position
	Elements []Expr
}

func (n *TupleLiteral) Pos() Position { return n.PosVal }
func (n *TupleLiteral) node()         {}
func (n *TupleLiteral) expr()         {}

// RangeLiteral represents a range expression start..end.
type RangeLiteral struct {
	PosVal Position
	Start  Expr
	End    Expr
}

func (n *RangeLiteral) Pos() Position { return n.PosVal }
func (n *RangeLiteral) node()         {}
func (n *RangeLiteral) expr()         {}

// Variable represents a variable reference.
type Variable struct {
	PosVal Position
	Name   string
}

func (n *Variable) Pos() Position { return n.PosVal }
func (n *Variable) node()         {}
func (n *Variable) expr()         {}

// Assignment represents an assignment (x = e, x += e, d.k = e, xs[0] = e).
// Target is a *Variable, *Member, or *Index; the parser rejects anything
// else. Op is the specific assignment token (compound forms desugar at
// evaluation time).
type Assignment struct {
	PosVal Position
	Target Expr
	Op     TokenType
	Value  Expr
}

func (n *Assignment) Pos() Position { return n.PosVal }
func (n *Assignment) node()         {}
func (n *Assignment) expr()         {}

// Binary represents a binary operator expression.
type Binary struct {
	PosVal Position
	Op     TokenType
	Left   Expr
	Right  Expr
}

func (n *Binary) Pos() Position { return n.PosVal }
func (n *Binary) node()         {}
func (n *Binary) expr()         {}

// Logical represents a short-circuiting and/or expression.
type Logical struct {
	PosVal Position
	Op     TokenType
	Left   Expr
	Right  Expr
}

func (n *Logical) Pos() Position { return n.PosVal }
func (n *Logical) node()         {}
func (n *Logical) expr()         {}

// Unary represents a prefix operator expression (!x, -x).
type Unary struct {
	PosVal  Position
	Op      TokenType
	Operand Expr
}

func (n *Unary) Pos() Position { return n.PosVal }
func (n *Unary) node()         {}
func (n *Unary) expr()         {}

// Grouping represents a parenthesized expression.
type Grouping struct {
	PosVal Position
	Expr   Expr
}

func (n *Grouping) Pos() Position { return n.PosVal }
func (n *Grouping) node()         {}
func (n *Grouping) expr()         {}

// Call represents a call expression f(a, b).
type Call struct {
	PosVal    Position
	Callee    Expr
	Arguments []Expr
}

func (n *Call) Pos() Position { return n.PosVal }
func (n *Call) node()         {}
func (n *Call) expr()         {}

// Member represents a member access expression (v.name).
type Member struct {
	PosVal Position
	Object Expr
	Name   string
}

func (n *Member) Pos() Position { return n.PosVal }
func (n *Member) node()         {}
func (n *Member) expr()         {}

// Index represents an index expression (v[e]).
type Index struct {
	PosVal Position
	Object Expr
	Key    Expr
}

func (n *Index) Pos() Position { return n.PosVal }
func (n *Index) node()         {}
func (n *Index) expr()         {}

// Block represents a brace-delimited statement sequence. A block is an
// expression: the value of its last statement, when that statement is an
// expression statement with no trailing semicolon, becomes the block's
// value.
type Block struct {
	PosVal     Position
	Statements []Stmt
}

func (n *Block) Pos() Position { return n.PosVal }
func (n *Block) node()         {}
func (n *Block) expr()         {}

// If represents an if/else expression. Else is a *Block, another *If, or
// nil.
type If struct {
	PosVal    Position
	Condition Expr
	Then      *Block
	Else      Expr
}

func (n *If) Pos() Position { return n.PosVal }
func (n *If) node()         {}
func (n *If) expr()         {}

// MatchClause is one pattern -> body clause of a match expression.
type MatchClause struct {
	Pattern Pattern
	Body    Expr
}

// Match represents a match expression. Clauses are tried strictly in
// order; the first structurally matching pattern wins.
type Match struct {
	PosVal  Position
	Target  Expr
	Clauses []MatchClause
}

func (n *Match) Pos() Position { return n.PosVal }
func (n *Match) node()         {}
func (n *Match) expr()         {}

// FunLiteral represents a function literal, optionally named.
type FunLiteral struct {
	PosVal Position
	Name   string // "" for anonymous functions
	Params []string
	Body   *Block
}

func (n *FunLiteral) Pos() Position { return n.PosVal }
func (n *FunLiteral) node()         {}
func (n *FunLiteral) expr()         {}

// ---------------------------------------------------------------------------
// Pattern nodes
// ---------------------------------------------------------------------------

// Pattern is the interface for match patterns.
type Pattern interface {
	Node
	pattern() // marker method
}

// LiteralPattern matches by value equality against a literal.
type LiteralPattern struct {
	PosVal Position
	Value  Expr // NumberLiteral, StringLiteral, AtomLiteral, BoolLiteral, NilLiteral
}

func (n *LiteralPattern) Pos() Position { return n.PosVal }
func (n *LiteralPattern) node()         {}
func (n *LiteralPattern) pattern()      {}

// CapturePattern always matches and binds the value under Name.
// Name "_" matches without binding.
type CapturePattern struct {
	PosVal Position
	Name   string
}

func (n *CapturePattern) Pos() Position { return n.PosVal }
func (n *CapturePattern) node()         {}
func (n *CapturePattern) pattern()      {}

// ListPattern matches lists of exactly the same length, element-wise.
type ListPattern struct {
	PosVal   Position
	Elements []Pattern
}

func (n *ListPattern) Pos() Position { return n.PosVal }
func (n *ListPattern) node()         {}
func (n *ListPattern) pattern()      {}

// DictPatternEntry is one key: pattern pair. A nil Pattern captures the
// value under the key's own name.
type DictPatternEntry struct {
	Key     string
	Pattern Pattern
}

// DictPattern matches dicts containing every named key; unmatched keys in
// the value are ignored.
type DictPattern struct {
	PosVal  Position
	Entries []DictPatternEntry
}

func (n *DictPattern) Pos() Position { return n.PosVal }
func (n *DictPattern) node()         {}
func (n *DictPattern) pattern()      {}

// ---------------------------------------------------------------------------
// Statement nodes
// ---------------------------------------------------------------------------

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt() // marker method
}

// ExprStmt is an expression used as a statement. Emit is true when the
// statement has no trailing semicolon: its value becomes the enclosing
// block's result.
type ExprStmt struct {
	PosVal Position
	Expr   Expr
	Emit   bool
}

func (n *ExprStmt) Pos() Position { return n.PosVal }
func (n *ExprStmt) node()         {}
func (n *ExprStmt) stmt()         {}

// LetStmt represents a variable declaration (let x = e;).
type LetStmt struct {
	PosVal Position
	Name   string
	Init   Expr // nil means the variable starts out nil
}

func (n *LetStmt) Pos() Position { return n.PosVal }
func (n *LetStmt) node()         {}
func (n *LetStmt) stmt()         {}

// FunStmt represents a named function declaration.
type FunStmt struct {
	PosVal Position
	Fun    *FunLiteral
}

func (n *FunStmt) Pos() Position { return n.PosVal }
func (n *FunStmt) node()         {}
func (n *FunStmt) stmt()         {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	PosVal    Position
	Condition Expr
	Body      *Block
}

func (n *WhileStmt) Pos() Position { return n.PosVal }
func (n *WhileStmt) node()         {}
func (n *WhileStmt) stmt()         {}

// ForStmt represents a for-in loop. Names holds one binding name, or
// several for destructuring iteration.
type ForStmt struct {
	PosVal   Position
	Names    []string
	Iterable Expr
	Body     *Block
}

func (n *ForStmt) Pos() Position { return n.PosVal }
func (n *ForStmt) node()         {}
func (n *ForStmt) stmt()         {}

// BreakStmt represents a break statement.
type BreakStmt struct {
	PosVal Position
}

func (n *BreakStmt) Pos() Position { return n.PosVal }
func (n *BreakStmt) node()         {}
func (n *BreakStmt) stmt()         {}

// ReturnStmt represents a return statement with an optional value.
type ReturnStmt struct {
	PosVal Position
	Value  Expr // nil returns nil
}

func (n *ReturnStmt) Pos() Position { return n.PosVal }
func (n *ReturnStmt) node()         {}
func (n *ReturnStmt) stmt()         {}

// ---------------------------------------------------------------------------
// Top-level structure
// ---------------------------------------------------------------------------

// Program represents one parsed source unit: an ordered sequence of
// top-level statements.
type Program struct {
	Statements []Stmt
}
