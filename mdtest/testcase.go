// Package mdtest extracts compiler test cases from Markdown documents.
//
// A test case is a heading of the form "Test: <name>" followed by one
// fenced code block with language "minic-program" (the source under
// test) and one or more assertion fences:
//
//	ast            expected AST as an s-expression
//	ir             expected three-address code before optimization
//	ir-opt         expected three-address code after optimization
//	asm            expected pseudocode assembly
//	output         expected print output, one value per line
//	compile-error  substring the compile error must contain
package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputLanguage is the fence language marking a test's source program.
const InputLanguage = "minic-program"

// AssertionType identifies what an assertion fence checks.
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"
	AssertionTypeIR           AssertionType = "ir"
	AssertionTypeIROpt        AssertionType = "ir-opt"
	AssertionTypeASM          AssertionType = "asm"
	AssertionTypeOutput       AssertionType = "output"
	AssertionTypeCompileError AssertionType = "compile-error"
)

// Assertion is a single assertion fence within a test case.
type Assertion struct {
	Type    AssertionType
	Content string // fence content with trailing newlines trimmed
}

// TestCase is one extracted test: a named program plus its assertions.
type TestCase struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all test
// cases. Fences with an unknown language, fences outside a test case,
// tests without an input fence, and tests without assertions are all
// reported as errors with line numbers.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)
	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if strings.HasPrefix(headingText, "Test: ") {
				if current != nil {
					if err := validateTestCase(current); err != nil {
						return ast.WalkStop, err
					}
					testCases = append(testCases, *current)
				}
				current = &TestCase{
					Name: strings.TrimPrefix(headingText, "Test: "),
				}
			}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlockContent(n, source)
			lineNum := getLineNumber(n, source)

			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: fence with language '%s' found outside of test case", lineNum, language)
				}
				// Plain code blocks in prose are fine.
				return ast.WalkContinue, nil
			}

			switch {
			case language == InputLanguage:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, current.Name)
				}
				current.Input = strings.TrimRight(content, "\n")

			case isAssertionFence(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: strings.TrimRight(content, "\n"),
				})

			case language != "":
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}
		testCases = append(testCases, *current)
	}

	return testCases, nil
}

func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionTypeAST, AssertionTypeIR, AssertionTypeIROpt,
		AssertionTypeASM, AssertionTypeOutput, AssertionTypeCompileError:
		return true
	}
	return false
}

func validateTestCase(testCase *TestCase) error {
	if testCase.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", testCase.Name)
	}
	if len(testCase.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", testCase.Name)
	}
	return nil
}

// getLineNumber calculates the 1-based line number of a node's first
// content line.
func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	lineNum := 1
	for i := 0; i < startPos && i < len(source); i++ {
		if source[i] == '\n' {
			lineNum++
		}
	}
	return lineNum
}
