package compiler

import "strconv"

// ---------------------------------------------------------------------------
// Parser: Recursive descent parser for Fen syntax
// ---------------------------------------------------------------------------

// Parser parses a token sequence into an AST. The first error aborts the
// whole parse; no synchronization is attempted.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse scans and parses one source unit.
func Parse(input string) (*Program, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	return p.parseProgram()
}

// curToken returns the current token.
func (p *Parser) curToken() Token {
	return p.tokens[p.pos]
}

// peekToken returns the next token without consuming the current one.
func (p *Parser) peekToken() Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+1]
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken().Type == t
}

// peekTokenIs checks if the peek token is of the given type.
func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken().Type == t
}

// expect consumes the current token if it matches, or fails.
func (p *Parser) expect(t TokenType) (Token, error) {
	tok := p.curToken()
	if tok.Type != t {
		return tok, parseErrorf(tok, "expected %s, got %s", t, tok.Type)
	}
	p.nextToken()
	return tok, nil
}

// ---------------------------------------------------------------------------
// Top-level parsing
// ---------------------------------------------------------------------------

// parseProgram parses statements until EOF. The top level follows block
// semicolon rules, so a REPL unit like "1 + 2" produces a value.
func (p *Parser) parseProgram() (*Program, error) {
	stmts, err := p.parseStatementList(TokenEOF)
	if err != nil {
		return nil, err
	}
	return &Program{Statements: stmts}, nil
}

// parseStatementList parses statements up to the terminator. Expression
// statements must end with a semicolon unless they are the last statement
// before the terminator; that final statement's value becomes the
// enclosing block's result.
func (p *Parser) parseStatementList(term TokenType) ([]Stmt, error) {
	var stmts []Stmt

	for !p.curTokenIs(term) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		if es, ok := stmt.(*ExprStmt); ok {
			if p.curTokenIs(TokenSemicolon) {
				p.nextToken()
			} else if p.curTokenIs(term) {
				es.Emit = true
			} else {
				return nil, parseErrorf(p.curToken(), "expected %s after expression", TokenSemicolon)
			}
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

// parseStatement parses a single statement. Expression statements are
// returned without their trailing semicolon; parseStatementList owns the
// semicolon-or-terminator decision.
func (p *Parser) parseStatement() (Stmt, error) {
	switch {
	case p.curTokenIs(TokenLet):
		return p.parseLet()
	case p.curTokenIs(TokenFun) && p.peekTokenIs(TokenIdentifier):
		return p.parseFunDecl()
	case p.curTokenIs(TokenWhile):
		return p.parseWhile()
	case p.curTokenIs(TokenFor):
		return p.parseFor()
	case p.curTokenIs(TokenBreak):
		return p.parseBreak()
	case p.curTokenIs(TokenReturn):
		return p.parseReturn()
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{PosVal: expr.Pos(), Expr: expr}, nil
}

// parseLet parses: let name (= expr)? ;
func (p *Parser) parseLet() (Stmt, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume let

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.curTokenIs(TokenEqual) {
		p.nextToken()
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &LetStmt{PosVal: pos, Name: name.Literal, Init: init}, nil
}

// parseFunDecl parses a named function declaration statement.
func (p *Parser) parseFunDecl() (Stmt, error) {
	pos := p.curToken().Pos
	fn, err := p.parseFunLiteral()
	if err != nil {
		return nil, err
	}
	return &FunStmt{PosVal: pos, Fun: fn}, nil
}

// parseFunLiteral parses: fun name? ( params ) block
func (p *Parser) parseFunLiteral() (*FunLiteral, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume fun

	name := ""
	if p.curTokenIs(TokenIdentifier) {
		name = p.curToken().Literal
		p.nextToken()
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	params, err := p.parseNameList(TokenRParen, "parameter list")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &FunLiteral{PosVal: pos, Name: name, Params: params, Body: body}, nil
}

// parseNameList parses a comma-separated identifier list running to the
// terminator, permitting a trailing comma.
func (p *Parser) parseNameList(term TokenType, what string) ([]string, error) {
	var names []string
	for !p.curTokenIs(term) {
		tok, err := p.expect(TokenIdentifier)
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Literal)

		if p.curTokenIs(TokenComma) {
			p.nextToken()
			continue
		}
		if !p.curTokenIs(term) {
			return nil, parseErrorf(p.curToken(), "expected %s or %s in %s", TokenComma, term, what)
		}
	}
	return names, nil
}

// parseWhile parses: while cond block
func (p *Parser) parseWhile() (Stmt, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume while

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{PosVal: pos, Condition: cond, Body: body}, nil
}

// parseFor parses: for name in expr block, or for (a, b) in expr block.
// The binding tuple also accepts ':' as a separator, so dict iteration
// reads naturally as for (k: v) in d.
func (p *Parser) parseFor() (Stmt, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume for

	var names []string
	if p.curTokenIs(TokenLParen) {
		p.nextToken()
		for {
			tok, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			names = append(names, tok.Literal)
			if p.curTokenIs(TokenComma) || p.curTokenIs(TokenColon) {
				p.nextToken()
				continue
			}
			break
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	} else {
		tok, err := p.expect(TokenIdentifier)
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Literal)
	}

	if _, err := p.expect(TokenIn); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ForStmt{PosVal: pos, Names: names, Iterable: iterable, Body: body}, nil
}

// parseBreak parses: break ;
func (p *Parser) parseBreak() (Stmt, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume break
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &BreakStmt{PosVal: pos}, nil
}

// parseReturn parses: return expr? ;
func (p *Parser) parseReturn() (Stmt, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume return

	var value Expr
	if !p.curTokenIs(TokenSemicolon) {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &ReturnStmt{PosVal: pos, Value: value}, nil
}

// parseBlock parses: { statements }
func (p *Parser) parseBlock() (*Block, error) {
	pos := p.curToken().Pos
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList(TokenRBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return &Block{PosVal: pos, Statements: stmts}, nil
}

// ---------------------------------------------------------------------------
// Expression parsing (precedence tiers, loosest to tightest)
// ---------------------------------------------------------------------------

// parseExpression parses at the loosest tier: assignment.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

var assignOps = map[TokenType]bool{
	TokenEqual:      true,
	TokenPlusEqual:  true,
	TokenMinusEqual: true,
	TokenStarEqual:  true,
	TokenSlashEqual: true,
}

// parseAssignment parses right-associative assignment. The left-hand side
// must be a variable, member access, or index expression.
func (p *Parser) parseAssignment() (Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !assignOps[p.curToken().Type] {
		return left, nil
	}

	opTok := p.curToken()
	switch left.(type) {
	case *Variable, *Member, *Index:
	default:
		return nil, parseErrorf(opTok, "cannot assign to %s", exprKindName(left))
	}

	p.nextToken() // consume operator
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	return &Assignment{PosVal: left.Pos(), Target: left, Op: opTok.Type, Value: value}, nil
}

// exprKindName names an expression kind for error messages.
func exprKindName(e Expr) string {
	switch e.(type) {
	case *NumberLiteral, *StringLiteral, *AtomLiteral, *BoolLiteral, *NilLiteral:
		return "a literal"
	case *ListLiteral:
		return "a list literal"
	case *DictLiteral:
		return "a dict literal"
	case *TupleLiteral:
		return "a tuple"
	case *RangeLiteral:
		return "a range"
	case *Call:
		return "a call"
	case *Grouping:
		return "a grouping"
	case *Binary, *Logical, *Unary:
		return "an operator expression"
	default:
		return "this expression"
	}
}

// parseOr parses short-circuiting or.
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curTokenIs(TokenOr) {
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Logical{PosVal: left.Pos(), Op: TokenOr, Left: left, Right: right}
	}
	return left, nil
}

// parseAnd parses short-circuiting and.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.curTokenIs(TokenAnd) {
		p.nextToken()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &Logical{PosVal: left.Pos(), Op: TokenAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseBinaryTier parses one left-associative binary tier.
func (p *Parser) parseBinaryTier(ops []TokenType, next func() (Expr, error)) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.curTokenIs(op) {
				p.nextToken()
				right, err := next()
				if err != nil {
					return nil, err
				}
				left = &Binary{PosVal: left.Pos(), Op: op, Left: left, Right: right}
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
	}
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.parseBinaryTier([]TokenType{TokenEqualEqual, TokenBangEqual}, p.parseComparison)
}

func (p *Parser) parseComparison() (Expr, error) {
	return p.parseBinaryTier(
		[]TokenType{TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual},
		p.parseAdditive,
	)
}

func (p *Parser) parseAdditive() (Expr, error) {
	return p.parseBinaryTier([]TokenType{TokenPlus, TokenMinus}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	return p.parseBinaryTier([]TokenType{TokenStar, TokenSlash}, p.parseUnary)
}

// parseUnary parses prefix ! and -.
func (p *Parser) parseUnary() (Expr, error) {
	if p.curTokenIs(TokenBang) || p.curTokenIs(TokenMinus) {
		opTok := p.curToken()
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{PosVal: opTok.Pos, Op: opTok.Type, Operand: operand}, nil
	}
	return p.parseRange()
}

// parseRange parses start..end. The range operator is non-associative and
// binds looser than call/index/member access.
func (p *Parser) parseRange() (Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(TokenDotDot) {
		return left, nil
	}
	p.nextToken() // consume ..
	right, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.curTokenIs(TokenDotDot) {
		return nil, parseErrorf(p.curToken(), "range is not associative")
	}
	return &RangeLiteral{PosVal: left.Pos(), Start: left, End: right}, nil
}

// parsePostfix parses chained calls, member accesses, and index
// expressions: f(x).y[0] associates left.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.curTokenIs(TokenLParen):
			pos := p.curToken().Pos
			p.nextToken()
			args, err := p.parseExprList(TokenRParen, "argument list")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRParen); err != nil {
				return nil, err
			}
			expr = &Call{PosVal: pos, Callee: expr, Arguments: args}

		case p.curTokenIs(TokenDot):
			p.nextToken()
			name, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			expr = &Member{PosVal: expr.Pos(), Object: expr, Name: name.Literal}

		case p.curTokenIs(TokenLBracket):
			pos := p.curToken().Pos
			p.nextToken()
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRBracket); err != nil {
				return nil, err
			}
			expr = &Index{PosVal: pos, Object: expr, Key: key}

		default:
			return expr, nil
		}
	}
}

// parseExprList parses a comma-separated expression list running to the
// terminator, permitting a trailing comma.
func (p *Parser) parseExprList(term TokenType, what string) ([]Expr, error) {
	var elems []Expr
	for !p.curTokenIs(term) {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)

		if p.curTokenIs(TokenComma) {
			p.nextToken()
			continue
		}
		if !p.curTokenIs(term) {
			return nil, parseErrorf(p.curToken(), "expected %s or %s in %s", TokenComma, term, what)
		}
	}
	return elems, nil
}

// ---------------------------------------------------------------------------
// Primary expressions
// ---------------------------------------------------------------------------

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.curToken()

	switch tok.Type {
	case TokenNumber:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, parseErrorf(tok, "invalid number literal")
		}
		p.nextToken()
		return &NumberLiteral{PosVal: tok.Pos, Value: value}, nil

	case TokenString:
		p.nextToken()
		return &StringLiteral{PosVal: tok.Pos, Value: tok.Literal}, nil

	case TokenAtom:
		p.nextToken()
		return &AtomLiteral{PosVal: tok.Pos, Name: tok.Literal}, nil

	case TokenTrue, TokenFalse:
		p.nextToken()
		return &BoolLiteral{PosVal: tok.Pos, Value: tok.Type == TokenTrue}, nil

	case TokenNil:
		p.nextToken()
		return &NilLiteral{PosVal: tok.Pos}, nil

	case TokenIdentifier:
		p.nextToken()
		return &Variable{PosVal: tok.Pos, Name: tok.Literal}, nil

	case TokenLParen:
		return p.parseGroupOrTuple()

	case TokenLBracket:
		return p.parseCollection()

	case TokenLBrace:
		return p.parseBlock()

	case TokenIf:
		return p.parseIf()

	case TokenMatch:
		return p.parseMatch()

	case TokenFun:
		return p.parseFunLiteral()
	}

	return nil, parseErrorf(tok, "expected expression")
}

// parseGroupOrTuple parses ( expr ) as a grouping and ( expr, ... ) as a
// tuple literal. A single parenthesized expression is never a 1-tuple.
func (p *Parser) parseGroupOrTuple() (Expr, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume (

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(TokenComma) {
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &Grouping{PosVal: pos, Expr: first}, nil
	}

	p.nextToken() // consume ,
	rest, err := p.parseExprList(TokenRParen, "tuple")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &TupleLiteral{PosVal: pos, Elements: append([]Expr{first}, rest...)}, nil
}

// parseCollection parses list and dict literals, which share the '['
// opener. An identifier immediately followed by ':' signals a dict; an
// immediate ':]' is the explicit empty dict.
func (p *Parser) parseCollection() (Expr, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume [

	// Empty dict [:]
	if p.curTokenIs(TokenColon) && p.peekTokenIs(TokenRBracket) {
		p.nextToken()
		p.nextToken()
		return &DictLiteral{PosVal: pos}, nil
	}

	// Dict [key: value, ...]
	if p.curTokenIs(TokenIdentifier) && p.peekTokenIs(TokenColon) {
		var entries []DictEntry
		for !p.curTokenIs(TokenRBracket) {
			key, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenColon); err != nil {
				return nil, err
			}
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			entries = append(entries, DictEntry{Key: key.Literal, Value: value})

			if p.curTokenIs(TokenComma) {
				p.nextToken()
				continue
			}
			if !p.curTokenIs(TokenRBracket) {
				return nil, parseErrorf(p.curToken(), "expected %s or %s in dict literal", TokenComma, TokenRBracket)
			}
		}
		p.nextToken() // consume ]
		return &DictLiteral{PosVal: pos, Entries: entries}, nil
	}

	// List [e1, e2, ...]
	elems, err := p.parseExprList(TokenRBracket, "list literal")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return &ListLiteral{PosVal: pos, Elements: elems}, nil
}

// parseIf parses: if cond block (else (block | if ...))?
func (p *Parser) parseIf() (Expr, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume if

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var alt Expr
	if p.curTokenIs(TokenElse) {
		p.nextToken()
		if p.curTokenIs(TokenIf) {
			alt, err = p.parseIf()
		} else {
			alt, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}

	return &If{PosVal: pos, Condition: cond, Then: then, Else: alt}, nil
}

// parseMatch parses: match target { pattern -> expr, ... }
// Clause bodies are single expressions; a trailing semicolon would
// suppress the clause value and is rejected.
func (p *Parser) parseMatch() (Expr, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume match

	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	var clauses []MatchClause
	for !p.curTokenIs(TokenRBrace) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenArrow); err != nil {
			return nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curTokenIs(TokenSemicolon) {
			return nil, parseErrorf(p.curToken(), "match clause body must produce a value")
		}
		clauses = append(clauses, MatchClause{Pattern: pat, Body: body})

		if p.curTokenIs(TokenComma) {
			p.nextToken()
		}
	}
	p.nextToken() // consume }

	return &Match{PosVal: pos, Target: target, Clauses: clauses}, nil
}

// ---------------------------------------------------------------------------
// Pattern parsing
// ---------------------------------------------------------------------------

func (p *Parser) parsePattern() (Pattern, error) {
	tok := p.curToken()

	switch tok.Type {
	case TokenNumber, TokenString, TokenAtom, TokenTrue, TokenFalse, TokenNil:
		lit, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &LiteralPattern{PosVal: tok.Pos, Value: lit}, nil

	case TokenMinus:
		// Negative number literal
		p.nextToken()
		num, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(num.Literal, 64)
		if err != nil {
			return nil, parseErrorf(num, "invalid number literal")
		}
		return &LiteralPattern{
			PosVal: tok.Pos,
			Value:  &NumberLiteral{PosVal: tok.Pos, Value: -value},
		}, nil

	case TokenIdentifier:
		p.nextToken()
		return &CapturePattern{PosVal: tok.Pos, Name: tok.Literal}, nil

	case TokenLBracket:
		return p.parseCollectionPattern()
	}

	return nil, parseErrorf(tok, "expected pattern")
}

// parseCollectionPattern parses list and dict patterns, with the same
// '[' disambiguation as collection literals.
func (p *Parser) parseCollectionPattern() (Pattern, error) {
	pos := p.curToken().Pos
	p.nextToken() // consume [

	// [:] matches any dict
	if p.curTokenIs(TokenColon) && p.peekTokenIs(TokenRBracket) {
		p.nextToken()
		p.nextToken()
		return &DictPattern{PosVal: pos}, nil
	}

	// Dict pattern [key: pat, other:, ...]. A key with no sub-pattern
	// captures the value under the key's own name.
	if p.curTokenIs(TokenIdentifier) && p.peekTokenIs(TokenColon) {
		var entries []DictPatternEntry
		for !p.curTokenIs(TokenRBracket) {
			key, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenColon); err != nil {
				return nil, err
			}

			var sub Pattern
			if !p.curTokenIs(TokenComma) && !p.curTokenIs(TokenRBracket) {
				sub, err = p.parsePattern()
				if err != nil {
					return nil, err
				}
			}
			entries = append(entries, DictPatternEntry{Key: key.Literal, Pattern: sub})

			if p.curTokenIs(TokenComma) {
				p.nextToken()
				continue
			}
			if !p.curTokenIs(TokenRBracket) {
				return nil, parseErrorf(p.curToken(), "expected %s or %s in dict pattern", TokenComma, TokenRBracket)
			}
		}
		p.nextToken() // consume ]
		return &DictPattern{PosVal: pos, Entries: entries}, nil
	}

	// List pattern [p1, p2, ...]
	var elems []Pattern
	for !p.curTokenIs(TokenRBracket) {
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		elems = append(elems, sub)

		if p.curTokenIs(TokenComma) {
			p.nextToken()
			continue
		}
		if !p.curTokenIs(TokenRBracket) {
			return nil, parseErrorf(p.curToken(), "expected %s or %s in list pattern", TokenComma, TokenRBracket)
		}
	}
	p.nextToken() // consume ]
	return &ListPattern{PosVal: pos, Elements: elems}, nil
}
