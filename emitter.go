package main

import "strings"

// binaryOpNames maps TAC operators to their emitted keywords. Keyword
// spelling and field order are an exact-match contract for downstream
// tooling; do not reword.
var binaryOpNames = map[string]string{
	"+":  "ADD",
	"-":  "SUBTRACT",
	"*":  "MULTIPLY",
	"/":  "DIVIDE",
	"%":  "MODULO",
	"<":  "LESS_THAN",
	">":  "GREATER_THAN",
	"<=": "LESS_EQUAL",
	">=": "GREATER_EQUAL",
	"==": "EQUAL",
	"!=": "NOT_EQUAL",
	"&&": "LOGICAL_AND",
	"||": "LOGICAL_OR",
}

var unaryOpNames = map[string]string{
	"-": "NEGATE",
	"!": "LOGICAL_NOT",
}

// Emitter renders optimized TAC as readable pseudocode assembly. It is
// a pure formatting pass: one line of output text per instruction, no
// register allocation or instruction selection.
type Emitter struct{}

// Emit renders the program. DECLARE lines cover the user-declared
// variables in first-declaration order; temporaries surviving
// optimization need no declaration.
func (e *Emitter) Emit(program *TACProgram) string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	b.WriteString(rule + "\n")
	b.WriteString("PSEUDOCODE ASSEMBLY\n")
	b.WriteString(rule + "\n")
	b.WriteString("\n")
	b.WriteString("PROGRAM START:\n")
	b.WriteString("\n")

	if len(program.Variables) > 0 {
		b.WriteString("  // Allocate memory for variables\n")
		for _, name := range program.Variables {
			b.WriteString("  DECLARE " + name + "\n")
		}
		b.WriteString("\n")
	}

	for _, instr := range program.Instructions {
		b.WriteString(e.emitInstruction(instr))
	}

	b.WriteString("\n")
	b.WriteString("  RETURN 0\n")
	b.WriteString("\n")
	b.WriteString("PROGRAM END\n")
	b.WriteString(rule + "\n")

	return b.String()
}

func (e *Emitter) emitInstruction(instr Instruction) string {
	switch in := instr.(type) {
	case TACAssign:
		return "  SET " + in.Dest + " = " + in.Src + "\n"
	case TACBinary:
		op := binaryOpNames[in.Op]
		if op == "" {
			op = in.Op
		}
		return "  SET " + in.Dest + " = " + op + "(" + in.Left + ", " + in.Right + ")\n"
	case TACUnary:
		op := unaryOpNames[in.Op]
		if op == "" {
			op = in.Op
		}
		return "  SET " + in.Dest + " = " + op + "(" + in.Operand + ")\n"
	case TACLabel:
		return "\n" + in.Name + ":\n"
	case TACGoto:
		return "  GOTO " + in.Label + "\n"
	case TACIfFalse:
		return "  IF " + in.Cond + " == false THEN GOTO " + in.Label + "\n"
	case TACPrint:
		return "  PRINT(" + in.Value + ")\n"
	default:
		return ""
	}
}

// EmitAssembly is a convenience wrapper around Emitter.
func EmitAssembly(program *TACProgram) string {
	var e Emitter
	return e.Emit(program)
}
