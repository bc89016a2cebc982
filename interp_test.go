package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func runProgram(t *testing.T, source string) []string {
	t.Helper()
	tac, err := compileToTAC([]byte(source + "\x00"))
	be.Err(t, err, nil)
	output, err := NewInterpreter().Run(Optimize(tac.Instructions))
	be.Err(t, err, nil)
	return output
}

func TestRunArithmetic(t *testing.T) {
	be.Equal(t, runProgram(t, "print(2 + 3 * 4);"), []string{"14"})
	be.Equal(t, runProgram(t, "print(10 - 3 - 2);"), []string{"5"})
	be.Equal(t, runProgram(t, "print(17 / 5); print(17 % 5);"), []string{"3", "2"})
}

func TestRunTruncatingDivision(t *testing.T) {
	be.Equal(t, runProgram(t, "int a; a = 0 - 7; print(a / 2); print(a % 2);"),
		[]string{"-3", "-1"})
}

func TestRunBooleansPrintAsZeroOrOne(t *testing.T) {
	be.Equal(t, runProgram(t, "print(true); print(false); print(1 < 2);"),
		[]string{"1", "0", "1"})
}

func TestRunVariables(t *testing.T) {
	be.Equal(t, runProgram(t, "int a; int b; a = 15; b = 4; print(a + b);"),
		[]string{"19"})
}

func TestRunIfElse(t *testing.T) {
	be.Equal(t, runProgram(t, "int x; x = 3; if (x > 2) { print(1); } else { print(2); }"),
		[]string{"1"})
	be.Equal(t, runProgram(t, "int x; x = 1; if (x > 2) { print(1); } else { print(2); }"),
		[]string{"2"})
}

func TestRunIfWithoutElseSkipsBody(t *testing.T) {
	be.Equal(t, runProgram(t, "int x; x = 1; if (x > 2) { print(1); } print(9);"),
		[]string{"9"})
}

func TestRunWhileCountdown(t *testing.T) {
	be.Equal(t, runProgram(t, "int x; x = 3; while (x > 0) { print(x); x = x - 1; }"),
		[]string{"3", "2", "1"})
}

func TestRunWhileNeverEntered(t *testing.T) {
	be.Equal(t, runProgram(t, "int x; x = 0; while (x > 0) { print(x); } print(7);"),
		[]string{"7"})
}

func TestRunNestedLoops(t *testing.T) {
	be.Equal(t, runProgram(t, `
		int i;
		i = 0;
		while (i < 2) {
			int j;
			j = 0;
			while (j < 2) {
				print(i * 10 + j);
				j = j + 1;
			}
			i = i + 1;
		}
	`), []string{"0", "1", "10", "11"})
}

func TestRunLogicalOperators(t *testing.T) {
	be.Equal(t, runProgram(t, "print(true && true); print(true && false);"),
		[]string{"1", "0"})
	be.Equal(t, runProgram(t, "print(false || true); print(false || false);"),
		[]string{"1", "0"})
	be.Equal(t, runProgram(t, "print(!true); print(!false);"),
		[]string{"0", "1"})
}

func TestRunDivisionByComputedZero(t *testing.T) {
	tac, err := compileToTAC([]byte("int x; x = 0; print(1 / x);\x00"))
	be.Err(t, err, nil)
	_, err = NewInterpreter().Run(tac.Instructions)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "division by zero"))
}

func TestRunModuloByComputedZero(t *testing.T) {
	tac, err := compileToTAC([]byte("int x; x = 0; print(1 % x);\x00"))
	be.Err(t, err, nil)
	_, err = NewInterpreter().Run(tac.Instructions)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "modulo by zero"))
}

func TestRunInfiniteLoopHitsStepCap(t *testing.T) {
	tac, err := compileToTAC([]byte("int x; x = 1; while (x > 0) { x = x + 0; }\x00"))
	be.Err(t, err, nil)
	_, err = NewInterpreter().Run(tac.Instructions)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "execution exceeded"))
}

func TestRunUndefinedNameRead(t *testing.T) {
	_, err := NewInterpreter().Run([]Instruction{TACPrint{Value: "ghost"}})
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "read of undefined name 'ghost'"))
}

func TestRunUnknownGotoLabel(t *testing.T) {
	_, err := NewInterpreter().Run([]Instruction{TACGoto{Label: "L9"}})
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown label 'L9'"))
}

// Optimization must never change what a program prints.
func TestRunOptimizedMatchesUnoptimized(t *testing.T) {
	sources := []string{
		"int a; int b; int sum; a = 15; b = 4; sum = a + b; print(sum);",
		"int x; x = 10; while (x > 0) { print(x); x = x - 1; }",
		"int x; int y; y = 5; x = y + 0; print(x);",
		"int a; a = 2 + 3 * 4; print(a);",
		"int x; x = 7; print(x * 2);",
		"bool p; p = true && false; print(p);",
		"int x; x = 3; if (x > 2) { print(1); } else { print(2); }",
		"int n; n = 1; while (n < 100) { n = n * 2; print(n); }",
		"print(-(2 + 3)); print(!(1 == 1));",
	}
	for _, source := range sources {
		tac, err := compileToTAC([]byte(source + "\x00"))
		be.Err(t, err, nil)

		plain, err := NewInterpreter().Run(tac.Instructions)
		be.Err(t, err, nil)
		optimized, err := NewInterpreter().Run(Optimize(tac.Instructions))
		be.Err(t, err, nil)

		be.Equal(t, optimized, plain)
	}
}
