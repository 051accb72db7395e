package compiler

import (
	"testing"
)

// parseOne parses a source unit expected to hold exactly one statement.
func parseOne(t *testing.T, input string) Stmt {
	t.Helper()
	prog, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("Parse(%q): got %d statements, want 1", input, len(prog.Statements))
	}
	return prog.Statements[0]
}

// parseExpr parses a source unit expected to hold one expression statement.
func parseExpr(t *testing.T, input string) Expr {
	t.Helper()
	es, ok := parseOne(t, input).(*ExprStmt)
	if !ok {
		t.Fatalf("Parse(%q): not an expression statement", input)
	}
	return es.Expr
}

func TestParseLet(t *testing.T) {
	stmt := parseOne(t, "let x = 42;")
	let, ok := stmt.(*LetStmt)
	if !ok {
		t.Fatalf("statement type = %T, want *LetStmt", stmt)
	}
	if let.Name != "x" {
		t.Errorf("name = %q, want %q", let.Name, "x")
	}
	num, ok := let.Init.(*NumberLiteral)
	if !ok {
		t.Fatalf("init type = %T, want *NumberLiteral", let.Init)
	}
	if num.Value != 42 {
		t.Errorf("init value = %v, want 42", num.Value)
	}
}

func TestParseLetWithoutInit(t *testing.T) {
	let := parseOne(t, "let x;").(*LetStmt)
	if let.Init != nil {
		t.Errorf("init = %v, want nil", let.Init)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3)
	expr := parseExpr(t, "1 + 2 * 3")
	add, ok := expr.(*Binary)
	if !ok || add.Op != TokenPlus {
		t.Fatalf("top = %T %v, want Binary +", expr, expr)
	}
	mul, ok := add.Right.(*Binary)
	if !ok || mul.Op != TokenStar {
		t.Fatalf("right = %T, want Binary *", add.Right)
	}
}

func TestParseComparisonBindsLooserThanAdditive(t *testing.T) {
	// a + b < c must parse as (a + b) < c
	cmp, ok := parseExpr(t, "a + b < c").(*Binary)
	if !ok || cmp.Op != TokenLess {
		t.Fatal("top operator is not <")
	}
	if _, ok := cmp.Left.(*Binary); !ok {
		t.Fatalf("left = %T, want Binary", cmp.Left)
	}
}

func TestParseLogicalOperators(t *testing.T) {
	// a or b and c must parse as a or (b and c)
	or, ok := parseExpr(t, "a or b and c").(*Logical)
	if !ok || or.Op != TokenOr {
		t.Fatal("top operator is not or")
	}
	and, ok := or.Right.(*Logical)
	if !ok || and.Op != TokenAnd {
		t.Fatalf("right = %T, want Logical and", or.Right)
	}
}

func TestParseUnaryChain(t *testing.T) {
	neg, ok := parseExpr(t, "!!x").(*Unary)
	if !ok || neg.Op != TokenBang {
		t.Fatal("top is not unary !")
	}
	if inner, ok := neg.Operand.(*Unary); !ok || inner.Op != TokenBang {
		t.Fatalf("operand = %T, want inner unary !", neg.Operand)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	valid := []string{"x = 1", "x += 1", "d.k = 1", "xs[0] = 1", "x = y = 1"}
	for _, input := range valid {
		if _, ok := parseExpr(t, input).(*Assignment); !ok {
			t.Errorf("Parse(%q): not an assignment", input)
		}
	}

	invalid := []string{"1 = 2;", "f() = 3;", "(x) = 1;", "a + b = 1;", "[1] = 2;"}
	for _, input := range invalid {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q): expected error", input)
		}
	}
}

func TestParseRangeNotAssociative(t *testing.T) {
	if _, err := Parse("1..2..3;"); err == nil {
		t.Fatal("expected error for chained range")
	}
}

func TestParseRangeOfExpressions(t *testing.T) {
	rng, ok := parseExpr(t, "a..f(b)").(*RangeLiteral)
	if !ok {
		t.Fatal("not a range literal")
	}
	if _, ok := rng.End.(*Call); !ok {
		t.Fatalf("end = %T, want *Call", rng.End)
	}
}

func TestParsePostfixChain(t *testing.T) {
	// f(x).y[0] associates left: Index(Member(Call(f, x), y), 0)
	idx, ok := parseExpr(t, "f(x).y[0]").(*Index)
	if !ok {
		t.Fatal("top is not an index expression")
	}
	mem, ok := idx.Object.(*Member)
	if !ok || mem.Name != "y" {
		t.Fatalf("object = %T, want member .y", idx.Object)
	}
	if _, ok := mem.Object.(*Call); !ok {
		t.Fatalf("member object = %T, want *Call", mem.Object)
	}
}

func TestParseCollections(t *testing.T) {
	if _, ok := parseExpr(t, "[1, 2, 3]").(*ListLiteral); !ok {
		t.Error("[1, 2, 3] is not a list literal")
	}
	if lst, ok := parseExpr(t, "[]").(*ListLiteral); !ok || len(lst.Elements) != 0 {
		t.Error("[] is not an empty list literal")
	}

	dict, ok := parseExpr(t, "[a: 1, b: 2]").(*DictLiteral)
	if !ok {
		t.Fatal("[a: 1, b: 2] is not a dict literal")
	}
	if len(dict.Entries) != 2 || dict.Entries[0].Key != "a" || dict.Entries[1].Key != "b" {
		t.Errorf("dict entries = %v", dict.Entries)
	}

	if d, ok := parseExpr(t, "[:]").(*DictLiteral); !ok || len(d.Entries) != 0 {
		t.Error("[:] is not an empty dict literal")
	}
}

func TestParseGroupingVsTuple(t *testing.T) {
	if _, ok := parseExpr(t, "(1)").(*Grouping); !ok {
		t.Error("(1) is not a grouping")
	}
	tup, ok := parseExpr(t, "(1, 2)").(*TupleLiteral)
	if !ok {
		t.Fatal("(1, 2) is not a tuple")
	}
	if len(tup.Elements) != 2 {
		t.Errorf("tuple has %d elements, want 2", len(tup.Elements))
	}
}

func TestParseBlockIsExpression(t *testing.T) {
	let := parseOne(t, "let x = { let y = 1; y + 1 };").(*LetStmt)
	block, ok := let.Init.(*Block)
	if !ok {
		t.Fatalf("init = %T, want *Block", let.Init)
	}
	if len(block.Statements) != 2 {
		t.Fatalf("block has %d statements, want 2", len(block.Statements))
	}
	last, ok := block.Statements[1].(*ExprStmt)
	if !ok || !last.Emit {
		t.Error("final expression statement does not emit its value")
	}
}

func TestParseSemicolonRequiredMidBlock(t *testing.T) {
	if _, err := Parse("{ 1 2 };"); err == nil {
		t.Fatal("expected error for missing semicolon between expressions")
	}
}

func TestParseIfElseChain(t *testing.T) {
	expr := parseExpr(t, "if a { 1 } else if b { 2 } else { 3 }")
	ifExpr, ok := expr.(*If)
	if !ok {
		t.Fatalf("type = %T, want *If", expr)
	}
	elif, ok := ifExpr.Else.(*If)
	if !ok {
		t.Fatalf("else = %T, want nested *If", ifExpr.Else)
	}
	if _, ok := elif.Else.(*Block); !ok {
		t.Fatalf("final else = %T, want *Block", elif.Else)
	}
}

func TestParseWhile(t *testing.T) {
	w := parseOne(t, "while x < 10 { x += 1; }").(*WhileStmt)
	if _, ok := w.Condition.(*Binary); !ok {
		t.Errorf("condition = %T, want *Binary", w.Condition)
	}
}

func TestParseForVariants(t *testing.T) {
	single := parseOne(t, "for x in xs { print(x); }").(*ForStmt)
	if len(single.Names) != 1 || single.Names[0] != "x" {
		t.Errorf("names = %v, want [x]", single.Names)
	}

	pair := parseOne(t, "for (k, v) in d { print(k); }").(*ForStmt)
	if len(pair.Names) != 2 || pair.Names[0] != "k" || pair.Names[1] != "v" {
		t.Errorf("names = %v, want [k v]", pair.Names)
	}

	// The binding tuple also reads with a colon separator.
	colon := parseOne(t, "for (k: v) in d { print(k); }").(*ForStmt)
	if len(colon.Names) != 2 {
		t.Errorf("names = %v, want two names", colon.Names)
	}
}

func TestParseFunDeclAndLiteral(t *testing.T) {
	decl := parseOne(t, "fun add(a, b) { a + b }").(*FunStmt)
	if decl.Fun.Name != "add" || len(decl.Fun.Params) != 2 {
		t.Errorf("fun = %s/%d, want add/2", decl.Fun.Name, len(decl.Fun.Params))
	}

	let := parseOne(t, "let f = fun(x) { x };").(*LetStmt)
	lit, ok := let.Init.(*FunLiteral)
	if !ok {
		t.Fatalf("init = %T, want *FunLiteral", let.Init)
	}
	if lit.Name != "" {
		t.Errorf("anonymous fun has name %q", lit.Name)
	}
}

func TestParseReturnAndBreak(t *testing.T) {
	ret := parseOne(t, "return 1;").(*ReturnStmt)
	if ret.Value == nil {
		t.Error("return value is nil")
	}
	bare := parseOne(t, "return;").(*ReturnStmt)
	if bare.Value != nil {
		t.Error("bare return has a value")
	}
	if _, ok := parseOne(t, "break;").(*BreakStmt); !ok {
		t.Error("break did not parse")
	}
}

func TestParseMatch(t *testing.T) {
	expr := parseExpr(t, `match t {
		0 -> "zero",
		#ok -> "ok",
		[x, y] -> x,
		[status: s, code:] -> s,
		_ -> "other",
	}`)
	m, ok := expr.(*Match)
	if !ok {
		t.Fatalf("type = %T, want *Match", expr)
	}
	if len(m.Clauses) != 5 {
		t.Fatalf("got %d clauses, want 5", len(m.Clauses))
	}

	if _, ok := m.Clauses[0].Pattern.(*LiteralPattern); !ok {
		t.Errorf("clause 0 pattern = %T, want *LiteralPattern", m.Clauses[0].Pattern)
	}
	if _, ok := m.Clauses[2].Pattern.(*ListPattern); !ok {
		t.Errorf("clause 2 pattern = %T, want *ListPattern", m.Clauses[2].Pattern)
	}

	dp, ok := m.Clauses[3].Pattern.(*DictPattern)
	if !ok {
		t.Fatalf("clause 3 pattern = %T, want *DictPattern", m.Clauses[3].Pattern)
	}
	if len(dp.Entries) != 2 {
		t.Fatalf("dict pattern has %d entries, want 2", len(dp.Entries))
	}
	if dp.Entries[1].Key != "code" || dp.Entries[1].Pattern != nil {
		t.Errorf("shorthand entry = %+v, want code with nil pattern", dp.Entries[1])
	}

	cap, ok := m.Clauses[4].Pattern.(*CapturePattern)
	if !ok || cap.Name != "_" {
		t.Errorf("clause 4 pattern = %T, want wildcard capture", m.Clauses[4].Pattern)
	}
}

func TestParseMatchNegativeNumberPattern(t *testing.T) {
	m := parseExpr(t, "match t { -1 -> #neg, _ -> #other }").(*Match)
	lit := m.Clauses[0].Pattern.(*LiteralPattern)
	num, ok := lit.Value.(*NumberLiteral)
	if !ok || num.Value != -1 {
		t.Errorf("pattern value = %v, want -1", lit.Value)
	}
}

func TestParseMatchClauseRejectsSemicolon(t *testing.T) {
	if _, err := Parse("match t { 0 -> f(); }"); err == nil {
		t.Fatal("expected error for semicolon in match clause")
	}
}

func TestParseErrorMessages(t *testing.T) {
	tests := []string{
		"let = 1;",
		"let x 1;",
		"fun (a { }",
		"if { 1 }",
		"for in xs { }",
		"1 +",
		"[a: ]",
		"(1, 2",
	}
	for _, input := range tests {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q): expected error", input)
			continue
		}
	}
}

func TestParseErrorIsParseError(t *testing.T) {
	_, err := Parse("let x = ;")
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}

func TestParseTopLevelEmitsFinalExpression(t *testing.T) {
	prog, err := Parse("let x = 1; x + 1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	last, ok := prog.Statements[1].(*ExprStmt)
	if !ok || !last.Emit {
		t.Error("final top-level expression does not emit")
	}
}
