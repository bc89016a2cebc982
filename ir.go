package main

import (
	"strconv"
	"strings"
)

// Instruction is a single three-address-code instruction. Operands are
// plain strings: a variable name, a temporary name (t0, t1, ...), or a
// literal constant ("15", "true").
type Instruction interface {
	String() string
}

// TACAssign is a copy: dest = src.
type TACAssign struct {
	Dest string
	Src  string
}

func (i TACAssign) String() string { return i.Dest + " = " + i.Src }

// TACBinary is a binary operation: dest = left op right.
type TACBinary struct {
	Dest  string
	Left  string
	Op    string
	Right string
}

func (i TACBinary) String() string { return i.Dest + " = " + i.Left + " " + i.Op + " " + i.Right }

// TACUnary is a unary operation: dest = op operand.
type TACUnary struct {
	Dest    string
	Op      string
	Operand string
}

func (i TACUnary) String() string { return i.Dest + " = " + i.Op + i.Operand }

// TACLabel marks a jump target.
type TACLabel struct {
	Name string
}

func (i TACLabel) String() string { return i.Name + ":" }

// TACGoto is an unconditional jump.
type TACGoto struct {
	Label string
}

func (i TACGoto) String() string { return "goto " + i.Label }

// TACIfFalse jumps to Label when Cond is false.
type TACIfFalse struct {
	Cond  string
	Label string
}

func (i TACIfFalse) String() string { return "if !" + i.Cond + " goto " + i.Label }

// TACPrint prints a value.
type TACPrint struct {
	Value string
}

func (i TACPrint) String() string { return "print " + i.Value }

// TACProgram is the result of lowering one program: the instruction
// sequence plus the user-declared variables in declaration order.
type TACProgram struct {
	Instructions []Instruction
	Variables    []string
}

// FormatTAC renders instructions one per line, labels outdented.
func FormatTAC(instructions []Instruction) string {
	var b strings.Builder
	for _, instr := range instructions {
		if _, isLabel := instr.(TACLabel); !isLabel {
			b.WriteString("    ")
		}
		b.WriteString(instr.String())
		b.WriteString("\n")
	}
	return b.String()
}

// IRGenerator lowers a semantically valid AST into TAC. The lowering is
// deliberately naive: every literal and identifier materializes into its
// own temporary, and assignments copy through two extra temporaries, so
// the optimizer has visible redundancy to remove.
//
// Temporary and label counters are per-generator; a generator compiles
// exactly one program.
type IRGenerator struct {
	instructions []Instruction
	variables    []string
	tempCount    int
	labelCount   int
}

// NewIRGenerator creates a generator with fresh temp/label counters.
func NewIRGenerator() *IRGenerator {
	return &IRGenerator{}
}

// Generate lowers the program. The only generation-time failure is a
// division or modulo by a literal zero.
func (g *IRGenerator) Generate(program *ASTNode) (*TACProgram, error) {
	for _, stmt := range program.Children {
		if err := g.genStatement(stmt); err != nil {
			return nil, err
		}
	}
	return &TACProgram{Instructions: g.instructions, Variables: g.variables}, nil
}

func (g *IRGenerator) newTemp() string {
	temp := "t" + strconv.Itoa(g.tempCount)
	g.tempCount++
	return temp
}

func (g *IRGenerator) newLabel() string {
	label := "L" + strconv.Itoa(g.labelCount)
	g.labelCount++
	return label
}

func (g *IRGenerator) emit(instr Instruction) {
	g.instructions = append(g.instructions, instr)
}

func (g *IRGenerator) genStatement(node *ASTNode) error {
	switch node.Kind {
	case NodeVarDecl:
		g.variables = append(g.variables, node.String)
		return nil

	case NodeAssign:
		result, err := g.genExpression(node.Children[0])
		if err != nil {
			return err
		}
		// Copy through an extra temporary before the final store.
		temp := g.newTemp()
		g.emit(TACAssign{Dest: temp, Src: result})
		g.emit(TACAssign{Dest: node.String, Src: temp})
		return nil

	case NodePrint:
		result, err := g.genExpression(node.Children[0])
		if err != nil {
			return err
		}
		g.emit(TACPrint{Value: result})
		return nil

	case NodeIf:
		cond, err := g.genExpression(node.Children[0])
		if err != nil {
			return err
		}
		hasElse := len(node.Children) == 3
		if hasElse {
			elseLabel := g.newLabel()
			endLabel := g.newLabel()
			g.emit(TACIfFalse{Cond: cond, Label: elseLabel})
			if err := g.genStatements(node.Children[1]); err != nil {
				return err
			}
			g.emit(TACGoto{Label: endLabel})
			g.emit(TACLabel{Name: elseLabel})
			if err := g.genStatements(node.Children[2]); err != nil {
				return err
			}
			g.emit(TACLabel{Name: endLabel})
			return nil
		}
		endLabel := g.newLabel()
		g.emit(TACIfFalse{Cond: cond, Label: endLabel})
		if err := g.genStatements(node.Children[1]); err != nil {
			return err
		}
		g.emit(TACLabel{Name: endLabel})
		return nil

	case NodeWhile:
		startLabel := g.newLabel()
		endLabel := g.newLabel()
		g.emit(TACLabel{Name: startLabel})
		cond, err := g.genExpression(node.Children[0])
		if err != nil {
			return err
		}
		g.emit(TACIfFalse{Cond: cond, Label: endLabel})
		if err := g.genStatements(node.Children[1]); err != nil {
			return err
		}
		g.emit(TACGoto{Label: startLabel})
		g.emit(TACLabel{Name: endLabel})
		return nil

	case NodeBlock:
		return g.genStatements(node)

	default:
		return syntaxErrorf(node.Line, node.Col, "unexpected statement node %s", node.Kind)
	}
}

func (g *IRGenerator) genStatements(block *ASTNode) error {
	for _, stmt := range block.Children {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// genExpression lowers an expression and returns the name of the
// temporary holding its value.
func (g *IRGenerator) genExpression(node *ASTNode) (string, error) {
	switch node.Kind {
	case NodeInteger:
		temp := g.newTemp()
		g.emit(TACAssign{Dest: temp, Src: strconv.FormatInt(node.Integer, 10)})
		return temp, nil

	case NodeBoolean:
		temp := g.newTemp()
		g.emit(TACAssign{Dest: temp, Src: boolLiteral(node.Boolean)})
		return temp, nil

	case NodeIdent:
		// Copying the variable into a temp is the deliberate
		// inefficiency; copy propagation undoes it.
		temp := g.newTemp()
		g.emit(TACAssign{Dest: temp, Src: node.String})
		return temp, nil

	case NodeBinary:
		if (node.Op == "/" || node.Op == "%") && isZeroLiteral(node.Children[1]) {
			return "", &Error{
				Kind: ErrDivisionByZero,
				Msg:  "division by zero",
				Line: node.Line,
				Col:  node.Col,
			}
		}
		left, err := g.genExpression(node.Children[0])
		if err != nil {
			return "", err
		}
		right, err := g.genExpression(node.Children[1])
		if err != nil {
			return "", err
		}
		temp := g.newTemp()
		g.emit(TACBinary{Dest: temp, Left: left, Op: node.Op, Right: right})
		return temp, nil

	case NodeUnary:
		operand, err := g.genExpression(node.Children[0])
		if err != nil {
			return "", err
		}
		temp := g.newTemp()
		g.emit(TACUnary{Dest: temp, Op: node.Op, Operand: operand})
		return temp, nil

	default:
		return "", syntaxErrorf(node.Line, node.Col, "unexpected expression node %s", node.Kind)
	}
}

func isZeroLiteral(node *ASTNode) bool {
	return node.Kind == NodeInteger && node.Integer == 0
}

func boolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// isTemp reports whether a name is a compiler temporary (t0, t1, ...).
func isTemp(name string) bool {
	if len(name) < 2 || name[0] != 't' {
		return false
	}
	for i := 1; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// isIntConst reports whether an operand is an integer literal.
func isIntConst(operand string) bool {
	_, err := strconv.ParseInt(operand, 10, 64)
	return err == nil
}

// isConst reports whether an operand is any literal constant.
func isConst(operand string) bool {
	return operand == "true" || operand == "false" || isIntConst(operand)
}
