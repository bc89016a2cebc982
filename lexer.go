package main

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // x, foo, _bar
	NUMBER = "NUMBER" // 12345

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"

	LT     = "<"
	GT     = ">"
	EQ     = "=="
	NOT_EQ = "!="
	LE     = "<="
	GE     = ">="

	AND = "&&"
	OR  = "||"

	// Delimiters
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	INT   = "INT"
	BOOL  = "BOOL"
	TRUE  = "TRUE"
	FALSE = "FALSE"
	IF    = "IF"
	ELSE  = "ELSE"
	WHILE = "WHILE"
	PRINT = "PRINT"
)

var keywords = map[string]TokenType{
	"int":   INT,
	"bool":  BOOL,
	"true":  TRUE,
	"false": FALSE,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"print": PRINT,
}

// Token is a single lexical token with its source position.
type Token struct {
	Type     TokenType
	Literal  string
	IntValue int64 // only meaningful when Type == NUMBER
	Line     int
	Col      int
}

// Lexer scans MiniC source into tokens. The input must end with a 0 byte.
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// NewLexer creates a lexer for the given input (must end with a 0 byte).
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize scans the whole input and returns the token stream, ending
// with an EOF token. It stops at the first invalid character.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()

	line, col := l.line, l.col
	c := l.input[l.pos]

	switch {
	case c == 0:
		return Token{Type: EOF, Literal: "", Line: line, Col: col}, nil

	case c == '=':
		if l.peekByte() == '=' {
			l.advance(2)
			return Token{Type: EQ, Literal: "==", Line: line, Col: col}, nil
		}
		l.advance(1)
		return Token{Type: ASSIGN, Literal: "=", Line: line, Col: col}, nil

	case c == '!':
		if l.peekByte() == '=' {
			l.advance(2)
			return Token{Type: NOT_EQ, Literal: "!=", Line: line, Col: col}, nil
		}
		l.advance(1)
		return Token{Type: BANG, Literal: "!", Line: line, Col: col}, nil

	case c == '<':
		if l.peekByte() == '=' {
			l.advance(2)
			return Token{Type: LE, Literal: "<=", Line: line, Col: col}, nil
		}
		l.advance(1)
		return Token{Type: LT, Literal: "<", Line: line, Col: col}, nil

	case c == '>':
		if l.peekByte() == '=' {
			l.advance(2)
			return Token{Type: GE, Literal: ">=", Line: line, Col: col}, nil
		}
		l.advance(1)
		return Token{Type: GT, Literal: ">", Line: line, Col: col}, nil

	case c == '&':
		if l.peekByte() == '&' {
			l.advance(2)
			return Token{Type: AND, Literal: "&&", Line: line, Col: col}, nil
		}
		return Token{}, lexicalErrorf(line, col, "invalid character '&'")

	case c == '|':
		if l.peekByte() == '|' {
			l.advance(2)
			return Token{Type: OR, Literal: "||", Line: line, Col: col}, nil
		}
		return Token{}, lexicalErrorf(line, col, "invalid character '|'")

	case c == '+':
		l.advance(1)
		return Token{Type: PLUS, Literal: "+", Line: line, Col: col}, nil
	case c == '-':
		l.advance(1)
		return Token{Type: MINUS, Literal: "-", Line: line, Col: col}, nil
	case c == '*':
		l.advance(1)
		return Token{Type: ASTERISK, Literal: "*", Line: line, Col: col}, nil
	case c == '/':
		l.advance(1)
		return Token{Type: SLASH, Literal: "/", Line: line, Col: col}, nil
	case c == '%':
		l.advance(1)
		return Token{Type: PERCENT, Literal: "%", Line: line, Col: col}, nil
	case c == ';':
		l.advance(1)
		return Token{Type: SEMICOLON, Literal: ";", Line: line, Col: col}, nil
	case c == '(':
		l.advance(1)
		return Token{Type: LPAREN, Literal: "(", Line: line, Col: col}, nil
	case c == ')':
		l.advance(1)
		return Token{Type: RPAREN, Literal: ")", Line: line, Col: col}, nil
	case c == '{':
		l.advance(1)
		return Token{Type: LBRACE, Literal: "{", Line: line, Col: col}, nil
	case c == '}':
		l.advance(1)
		return Token{Type: RBRACE, Literal: "}", Line: line, Col: col}, nil

	case isLetter(c):
		lit := l.readIdentifier()
		typ := TokenType(IDENT)
		if kw, ok := keywords[lit]; ok {
			typ = kw
		}
		return Token{Type: typ, Literal: lit, Line: line, Col: col}, nil

	case isDigit(c):
		lit, val := l.readNumber()
		return Token{Type: NUMBER, Literal: lit, IntValue: val, Line: line, Col: col}, nil

	default:
		return Token{}, lexicalErrorf(line, col, "invalid character %q", string(c))
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		c := l.input[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.advance(1)
		} else if c == '/' && l.peekByte() == '/' {
			for l.input[l.pos] != '\n' && l.input[l.pos] != 0 {
				l.advance(1)
			}
		} else if c == '/' && l.peekByte() == '*' {
			l.advance(2)
			for l.input[l.pos] != 0 && !(l.input[l.pos] == '*' && l.peekByte() == '/') {
				l.advance(1)
			}
			if l.input[l.pos] == '*' {
				l.advance(2)
			}
		} else {
			return
		}
	}
}

func (l *Lexer) peekByte() byte {
	return l.input[l.pos+1]
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) {
		l.advance(1)
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() (string, int64) {
	start := l.pos
	var val int64
	for isDigit(l.input[l.pos]) {
		val = val*10 + int64(l.input[l.pos]-'0')
		l.advance(1)
	}
	return string(l.input[start:l.pos]), val
}
