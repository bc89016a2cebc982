package main

// Parser is a recursive descent parser for MiniC.
//
// Grammar:
//
//	program    → statement*
//	statement  → varDecl | assignment | ifStmt | whileStmt | printStmt | block
//	varDecl    → ("int" | "bool") IDENT ";"
//	assignment → IDENT "=" expression ";"
//	ifStmt     → "if" "(" expression ")" block ("else" block)?
//	whileStmt  → "while" "(" expression ")" block
//	printStmt  → "print" "(" expression ")" ";"
//	block      → "{" statement* "}"
//
//	expression → logicalOr
//	logicalOr  → logicalAnd ("||" logicalAnd)*
//	logicalAnd → equality ("&&" equality)*
//	equality   → comparison (("==" | "!=") comparison)*
//	comparison → term (("<" | ">" | "<=" | ">=") term)*
//	term       → factor (("+" | "-") factor)*
//	factor     → unary (("*" | "/" | "%") unary)*
//	unary      → ("!" | "-") unary | primary
//	primary    → NUMBER | "true" | "false" | IDENT | "(" expression ")"
//
// Parsing is fail-fast: the first syntax error aborts with a single
// diagnostic and no partial AST is returned.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over the full token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the token stream and returns the Program root node.
func (p *Parser) Parse() (*ASTNode, error) {
	program := &ASTNode{Kind: NodeProgram, Line: 1, Col: 1}
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Children = append(program.Children, stmt)
	}
	return program, nil
}

func (p *Parser) parseStatement() (*ASTNode, error) {
	tok := p.peek()
	switch tok.Type {
	case INT, BOOL:
		return p.parseVarDecl()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case PRINT:
		return p.parsePrint()
	case LBRACE:
		return p.parseBlock()
	case IDENT:
		return p.parseAssignment()
	default:
		return nil, syntaxErrorf(tok.Line, tok.Col, "unexpected token '%s'", tok.Literal)
	}
}

func (p *Parser) parseVarDecl() (*ASTNode, error) {
	typeTok := p.advance()
	varType := TypeInt
	if typeTok.Type == BOOL {
		varType = TypeBool
	}

	nameTok, err := p.expect(IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &ASTNode{
		Kind:    NodeVarDecl,
		String:  nameTok.Literal,
		VarType: varType,
		Line:    typeTok.Line,
		Col:     typeTok.Col,
	}, nil
}

func (p *Parser) parseAssignment() (*ASTNode, error) {
	nameTok := p.advance()
	if _, err := p.expect(ASSIGN, "expected '=' in assignment"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "expected ';' after assignment"); err != nil {
		return nil, err
	}
	return &ASTNode{
		Kind:     NodeAssign,
		String:   nameTok.Literal,
		Children: []*ASTNode{expr},
		Line:     nameTok.Line,
		Col:      nameTok.Col,
	}, nil
}

func (p *Parser) parseIf() (*ASTNode, error) {
	ifTok := p.advance()
	if _, err := p.expect(LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	children := []*ASTNode{cond, thenBlock}
	if p.peek().Type == ELSE {
		p.advance()
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		children = append(children, elseBlock)
	}

	return &ASTNode{Kind: NodeIf, Children: children, Line: ifTok.Line, Col: ifTok.Col}, nil
}

func (p *Parser) parseWhile() (*ASTNode, error) {
	whileTok := p.advance()
	if _, err := p.expect(LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ASTNode{
		Kind:     NodeWhile,
		Children: []*ASTNode{cond, body},
		Line:     whileTok.Line,
		Col:      whileTok.Col,
	}, nil
}

func (p *Parser) parsePrint() (*ASTNode, error) {
	printTok := p.advance()
	if _, err := p.expect(LPAREN, "expected '(' after 'print'"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "expected ')' after print expression"); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "expected ';' after print statement"); err != nil {
		return nil, err
	}
	return &ASTNode{
		Kind:     NodePrint,
		Children: []*ASTNode{expr},
		Line:     printTok.Line,
		Col:      printTok.Col,
	}, nil
}

func (p *Parser) parseBlock() (*ASTNode, error) {
	openTok, err := p.expect(LBRACE, "expected '{'")
	if err != nil {
		return nil, err
	}
	block := &ASTNode{Kind: NodeBlock, Line: openTok.Line, Col: openTok.Col}
	for p.peek().Type != RBRACE && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Children = append(block.Children, stmt)
	}
	if _, err := p.expect(RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return block, nil
}

// Expression parsing: one function per precedence level, low to high.

func (p *Parser) parseExpression() (*ASTNode, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (*ASTNode, error) {
	return p.parseBinaryLevel(p.parseLogicalAnd, OR)
}

func (p *Parser) parseLogicalAnd() (*ASTNode, error) {
	return p.parseBinaryLevel(p.parseEquality, AND)
}

func (p *Parser) parseEquality() (*ASTNode, error) {
	return p.parseBinaryLevel(p.parseComparison, EQ, NOT_EQ)
}

func (p *Parser) parseComparison() (*ASTNode, error) {
	return p.parseBinaryLevel(p.parseTerm, LT, GT, LE, GE)
}

func (p *Parser) parseTerm() (*ASTNode, error) {
	return p.parseBinaryLevel(p.parseFactor, PLUS, MINUS)
}

func (p *Parser) parseFactor() (*ASTNode, error) {
	return p.parseBinaryLevel(p.parseUnary, ASTERISK, SLASH, PERCENT)
}

// parseBinaryLevel parses a left-associative run of the given operators
// over the next-higher precedence level.
func (p *Parser) parseBinaryLevel(next func() (*ASTNode, error), ops ...TokenType) (*ASTNode, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.matchAny(ops...) {
		opTok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ASTNode{
			Kind:     NodeBinary,
			Op:       opTok.Literal,
			Children: []*ASTNode{left, right},
			Line:     opTok.Line,
			Col:      opTok.Col,
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (*ASTNode, error) {
	if p.matchAny(BANG, MINUS) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ASTNode{
			Kind:     NodeUnary,
			Op:       opTok.Literal,
			Children: []*ASTNode{operand},
			Line:     opTok.Line,
			Col:      opTok.Col,
		}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (*ASTNode, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		return &ASTNode{Kind: NodeInteger, Integer: tok.IntValue, Line: tok.Line, Col: tok.Col}, nil
	case TRUE:
		p.advance()
		return &ASTNode{Kind: NodeBoolean, Boolean: true, Line: tok.Line, Col: tok.Col}, nil
	case FALSE:
		p.advance()
		return &ASTNode{Kind: NodeBoolean, Boolean: false, Line: tok.Line, Col: tok.Col}, nil
	case IDENT:
		p.advance()
		return &ASTNode{Kind: NodeIdent, String: tok.Literal, Line: tok.Line, Col: tok.Col}, nil
	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, syntaxErrorf(tok.Line, tok.Col, "expected expression, got '%s'", tok.Literal)
	}
}

// Helpers

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.tokens[p.pos].Type == EOF
}

func (p *Parser) matchAny(types ...TokenType) bool {
	cur := p.peek().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

func (p *Parser) expect(typ TokenType, msg string) (Token, error) {
	tok := p.peek()
	if tok.Type != typ {
		got := tok.Literal
		if tok.Type == EOF {
			got = "end of input"
		}
		return Token{}, syntaxErrorf(tok.Line, tok.Col, "%s, got '%s'", msg, got)
	}
	return p.advance(), nil
}
