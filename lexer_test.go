package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func lexTokens(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := NewLexer([]byte(source + "\x00")).Tokenize()
	be.Err(t, err, nil)
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizeDeclarationAndAssignment(t *testing.T) {
	tokens := lexTokens(t, "int x; x = 42;")
	be.Equal(t, tokenTypes(tokens), []TokenType{
		INT, IDENT, SEMICOLON, IDENT, ASSIGN, NUMBER, SEMICOLON, EOF,
	})
	be.Equal(t, tokens[1].Literal, "x")
	be.Equal(t, tokens[5].Literal, "42")
	be.Equal(t, tokens[5].IntValue, int64(42))
}

func TestTokenizeKeywords(t *testing.T) {
	tokens := lexTokens(t, "int bool true false if else while print")
	be.Equal(t, tokenTypes(tokens), []TokenType{
		INT, BOOL, TRUE, FALSE, IF, ELSE, WHILE, PRINT, EOF,
	})
}

func TestTokenizeKeywordPrefixIsIdent(t *testing.T) {
	tokens := lexTokens(t, "integer whiled printx")
	be.Equal(t, tokenTypes(tokens), []TokenType{IDENT, IDENT, IDENT, EOF})
	be.Equal(t, tokens[0].Literal, "integer")
}

func TestTokenizeOperators(t *testing.T) {
	tokens := lexTokens(t, "+ - * / % < > <= >= == != && || ! =")
	be.Equal(t, tokenTypes(tokens), []TokenType{
		PLUS, MINUS, ASTERISK, SLASH, PERCENT,
		LT, GT, LE, GE, EQ, NOT_EQ, AND, OR, BANG, ASSIGN, EOF,
	})
}

func TestTokenizeDelimiters(t *testing.T) {
	tokens := lexTokens(t, "( ) { } ;")
	be.Equal(t, tokenTypes(tokens), []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, SEMICOLON, EOF,
	})
}

func TestTokenizePositions(t *testing.T) {
	tokens := lexTokens(t, "int x;\nx = 1;")
	// "int" at 1:1, "x" at 1:5, ";" at 1:6
	be.Equal(t, tokens[0].Line, 1)
	be.Equal(t, tokens[0].Col, 1)
	be.Equal(t, tokens[1].Col, 5)
	// second line starts over at column 1
	be.Equal(t, tokens[3].Line, 2)
	be.Equal(t, tokens[3].Col, 1)
	be.Equal(t, tokens[5].Line, 2)
	be.Equal(t, tokens[5].Col, 5)
}

func TestTokenizeLineComment(t *testing.T) {
	tokens := lexTokens(t, "int x; // a counter\nx = 1;")
	be.Equal(t, tokenTypes(tokens), []TokenType{
		INT, IDENT, SEMICOLON, IDENT, ASSIGN, NUMBER, SEMICOLON, EOF,
	})
}

func TestTokenizeBlockComment(t *testing.T) {
	tokens := lexTokens(t, "int /* the\n counter */ x;")
	be.Equal(t, tokenTypes(tokens), []TokenType{INT, IDENT, SEMICOLON, EOF})
	be.Equal(t, tokens[1].Line, 2)
}

func TestTokenizeUnterminatedBlockCommentReachesEOF(t *testing.T) {
	tokens := lexTokens(t, "int x; /* never closed")
	be.Equal(t, tokens[len(tokens)-1].Type, TokenType(EOF))
}

func TestTokenizeIdentifierWithUnderscoreAndDigits(t *testing.T) {
	tokens := lexTokens(t, "_tmp2 = 0;")
	be.Equal(t, tokens[0].Type, TokenType(IDENT))
	be.Equal(t, tokens[0].Literal, "_tmp2")
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := NewLexer([]byte("int x; @\x00")).Tokenize()
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "lexical error at line 1, column 8"))
	be.True(t, strings.Contains(err.Error(), "invalid character"))
}

func TestTokenizeLoneAmpersand(t *testing.T) {
	_, err := NewLexer([]byte("a & b\x00")).Tokenize()
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "invalid character '&'"))
}

func TestTokenizeLonePipe(t *testing.T) {
	_, err := NewLexer([]byte("a | b\x00")).Tokenize()
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "invalid character '|'"))
}

func TestTokenizeEmptyInput(t *testing.T) {
	tokens := lexTokens(t, "")
	be.Equal(t, tokenTypes(tokens), []TokenType{EOF})
}
