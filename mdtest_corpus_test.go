package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/minic/mdtest"
)

// TestCompilerCorpus runs every test case extracted from the Markdown
// files under testdata/.
func TestCompilerCorpus(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := mdtest.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					runCorpusCase(t, tc)
				})
			}
		})
	}
}

func runCorpusCase(t *testing.T, tc mdtest.TestCase) {
	input := []byte(tc.Input + "\x00")

	// A compile-error case short-circuits the rest of the pipeline.
	if expected, ok := findAssertion(tc, mdtest.AssertionTypeCompileError); ok {
		_, err := compileToTAC(input)
		if err == nil {
			t.Fatalf("expected compile error containing %q, got none", expected)
		}
		if !strings.Contains(err.Error(), expected) {
			t.Fatalf("expected compile error containing %q, got %q", expected, err.Error())
		}
		return
	}

	tac, err := compileToTAC(input)
	be.Err(t, err, nil)
	optimized := Optimize(tac.Instructions)

	for _, assertion := range tc.Assertions {
		switch assertion.Type {
		case mdtest.AssertionTypeAST:
			tokens, err := NewLexer(input).Tokenize()
			be.Err(t, err, nil)
			program, err := NewParser(tokens).Parse()
			be.Err(t, err, nil)
			be.Equal(t, ToSExpr(program), assertion.Content)

		case mdtest.AssertionTypeIR:
			be.Equal(t, strings.TrimRight(FormatTAC(tac.Instructions), "\n"), assertion.Content)

		case mdtest.AssertionTypeIROpt:
			be.Equal(t, strings.TrimRight(FormatTAC(optimized), "\n"), assertion.Content)

		case mdtest.AssertionTypeASM:
			emitted := EmitAssembly(&TACProgram{Instructions: optimized, Variables: tac.Variables})
			be.Equal(t, strings.TrimRight(emitted, "\n"), assertion.Content)

		case mdtest.AssertionTypeOutput:
			output, err := NewInterpreter().Run(optimized)
			be.Err(t, err, nil)
			be.Equal(t, strings.Join(output, "\n"), assertion.Content)

		default:
			t.Fatalf("unknown assertion type %q in test %q", assertion.Type, tc.Name)
		}
	}
}

func findAssertion(tc mdtest.TestCase, typ mdtest.AssertionType) (string, bool) {
	for _, assertion := range tc.Assertions {
		if assertion.Type == typ {
			return assertion.Content, true
		}
	}
	return "", false
}
