package main

import (
	"fmt"
	"strconv"
)

// maxInterpSteps bounds TAC interpretation so a non-terminating loop in
// a submitted program cannot hang the host.
const maxInterpSteps = 1_000_000

// Interpreter executes a TAC sequence directly. It exists as the
// reference semantics for the optimizer: a program's print output must
// be identical before and after optimization.
//
// Values are 32-bit signed integers; booleans are stored as 0/1 and the
// literals "true"/"false" are accepted wherever an operand may appear.
type Interpreter struct {
	env map[string]int32
}

// NewInterpreter creates an interpreter with an empty environment.
func NewInterpreter() *Interpreter {
	return &Interpreter{env: map[string]int32{}}
}

// Run executes the instructions and returns the printed values, one
// string per PRINT in execution order.
func (ip *Interpreter) Run(instructions []Instruction) ([]string, error) {
	labels := map[string]int{}
	for i, instr := range instructions {
		if l, ok := instr.(TACLabel); ok {
			labels[l.Name] = i
		}
	}

	var output []string
	pc := 0
	for steps := 0; pc < len(instructions); steps++ {
		if steps >= maxInterpSteps {
			return nil, fmt.Errorf("execution exceeded %d steps", maxInterpSteps)
		}

		switch in := instructions[pc].(type) {
		case TACAssign:
			v, err := ip.operand(in.Src)
			if err != nil {
				return nil, err
			}
			ip.env[in.Dest] = v

		case TACBinary:
			l, err := ip.operand(in.Left)
			if err != nil {
				return nil, err
			}
			r, err := ip.operand(in.Right)
			if err != nil {
				return nil, err
			}
			v, err := applyBinary(in.Op, l, r)
			if err != nil {
				return nil, err
			}
			ip.env[in.Dest] = v

		case TACUnary:
			operand, err := ip.operand(in.Operand)
			if err != nil {
				return nil, err
			}
			switch in.Op {
			case "-":
				ip.env[in.Dest] = -operand
			case "!":
				ip.env[in.Dest] = boolToInt(operand == 0)
			default:
				return nil, fmt.Errorf("unknown unary operator '%s'", in.Op)
			}

		case TACPrint:
			v, err := ip.operand(in.Value)
			if err != nil {
				return nil, err
			}
			output = append(output, strconv.FormatInt(int64(v), 10))

		case TACLabel:
			// no-op

		case TACGoto:
			target, ok := labels[in.Label]
			if !ok {
				return nil, fmt.Errorf("goto to unknown label '%s'", in.Label)
			}
			pc = target
			continue

		case TACIfFalse:
			cond, err := ip.operand(in.Cond)
			if err != nil {
				return nil, err
			}
			if cond == 0 {
				target, ok := labels[in.Label]
				if !ok {
					return nil, fmt.Errorf("goto to unknown label '%s'", in.Label)
				}
				pc = target
				continue
			}

		default:
			return nil, fmt.Errorf("unknown instruction %T", instructions[pc])
		}
		pc++
	}
	return output, nil
}

// operand resolves a literal constant or a variable/temporary name.
func (ip *Interpreter) operand(name string) (int32, error) {
	switch name {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	if v, err := strconv.ParseInt(name, 10, 32); err == nil {
		return int32(v), nil
	}
	v, ok := ip.env[name]
	if !ok {
		return 0, fmt.Errorf("read of undefined name '%s'", name)
	}
	return v, nil
}

func applyBinary(op string, l, r int32) (int32, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, fmt.Errorf("modulo by zero")
		}
		return l % r, nil
	case "<":
		return boolToInt(l < r), nil
	case ">":
		return boolToInt(l > r), nil
	case "<=":
		return boolToInt(l <= r), nil
	case ">=":
		return boolToInt(l >= r), nil
	case "==":
		return boolToInt(l == r), nil
	case "!=":
		return boolToInt(l != r), nil
	case "&&":
		return boolToInt(l != 0 && r != 0), nil
	case "||":
		return boolToInt(l != 0 || r != 0), nil
	default:
		return 0, fmt.Errorf("unknown operator '%s'", op)
	}
}

func boolToInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
