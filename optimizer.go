package main

import "strconv"

// maxOptPasses caps fixed-point iteration. Each pass runs the full rule
// battery; iteration stops as soon as a pass changes nothing.
const maxOptPasses = 10

// Optimize rewrites a TAC sequence into a shorter-or-equal semantically
// equivalent sequence. It is a pure function of its input and never
// fails; at worst it returns the input unchanged.
//
// Rules per pass, in order: constant folding, copy propagation,
// algebraic simplification, strength reduction, dead code elimination.
func Optimize(instructions []Instruction) []Instruction {
	current := instructions
	for pass := 0; pass < maxOptPasses; pass++ {
		next := constantFolding(current)
		next = copyPropagation(next)
		next = algebraicSimplification(next)
		next = strengthReduction(next)
		next = deadCodeElimination(next)
		if tacEqual(next, current) {
			return next
		}
		current = next
	}
	return current
}

func tacEqual(a, b []Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// constantFolding evaluates operations whose operands are compile-time
// constants. Only temporaries are tracked as known constants; tracking
// is local to a basic block (the map resets at every label, the only
// possible merge points).
func constantFolding(instructions []Instruction) []Instruction {
	optimized := make([]Instruction, 0, len(instructions))
	constants := map[string]string{}

	track := func(dest, value string) {
		if isTemp(dest) {
			constants[dest] = value
		} else {
			delete(constants, dest)
		}
	}
	resolve := func(operand string) (string, bool) {
		if isConst(operand) {
			return operand, true
		}
		if v, ok := constants[operand]; ok {
			return v, true
		}
		return operand, false
	}

	for _, instr := range instructions {
		switch in := instr.(type) {
		case TACAssign:
			if v, ok := resolve(in.Src); ok {
				optimized = append(optimized, TACAssign{Dest: in.Dest, Src: v})
				track(in.Dest, v)
			} else {
				optimized = append(optimized, in)
				delete(constants, in.Dest)
			}

		case TACBinary:
			left, leftOK := resolve(in.Left)
			right, rightOK := resolve(in.Right)
			if leftOK && rightOK {
				if result, ok := evalBinary(in.Op, left, right); ok {
					optimized = append(optimized, TACAssign{Dest: in.Dest, Src: result})
					track(in.Dest, result)
					continue
				}
			}
			optimized = append(optimized, in)
			delete(constants, in.Dest)

		case TACUnary:
			if operand, ok := resolve(in.Operand); ok {
				if result, ok := evalUnary(in.Op, operand); ok {
					optimized = append(optimized, TACAssign{Dest: in.Dest, Src: result})
					track(in.Dest, result)
					continue
				}
			}
			optimized = append(optimized, in)
			delete(constants, in.Dest)

		case TACLabel:
			constants = map[string]string{}
			optimized = append(optimized, in)

		default:
			optimized = append(optimized, instr)
		}
	}
	return optimized
}

// copyPropagation replaces uses of copied values with their original
// source. Copy chains are tracked per basic block and invalidated when
// their source is reassigned, so a propagated name always denotes the
// same value at its use as at the copy. Instructions are never removed
// here; dead code elimination picks up the now-unused copies.
func copyPropagation(instructions []Instruction) []Instruction {
	optimized := make([]Instruction, 0, len(instructions))
	copies := map[string]string{}

	resolve := func(name string) string {
		for {
			src, ok := copies[name]
			if !ok {
				return name
			}
			name = src
		}
	}
	// invalidate drops every chain that ends at dest, plus dest itself.
	invalidate := func(dest string) {
		delete(copies, dest)
		for name := range copies {
			if resolve(name) == dest {
				delete(copies, name)
			}
		}
	}

	for _, instr := range instructions {
		switch in := instr.(type) {
		case TACAssign:
			src := resolve(in.Src)
			invalidate(in.Dest)
			optimized = append(optimized, TACAssign{Dest: in.Dest, Src: src})
			if isTemp(in.Dest) && src != in.Dest {
				copies[in.Dest] = src
			}

		case TACBinary:
			left := resolve(in.Left)
			right := resolve(in.Right)
			invalidate(in.Dest)
			optimized = append(optimized, TACBinary{Dest: in.Dest, Left: left, Op: in.Op, Right: right})

		case TACUnary:
			operand := resolve(in.Operand)
			invalidate(in.Dest)
			optimized = append(optimized, TACUnary{Dest: in.Dest, Op: in.Op, Operand: operand})

		case TACIfFalse:
			optimized = append(optimized, TACIfFalse{Cond: resolve(in.Cond), Label: in.Label})

		case TACPrint:
			optimized = append(optimized, TACPrint{Value: resolve(in.Value)})

		case TACLabel:
			copies = map[string]string{}
			optimized = append(optimized, in)

		default:
			optimized = append(optimized, instr)
		}
	}
	return optimized
}

// algebraicSimplification rewrites operations with a literal identity or
// absorbing operand. MiniC expressions have no side effects, so the
// rewrite is always safe.
func algebraicSimplification(instructions []Instruction) []Instruction {
	optimized := make([]Instruction, 0, len(instructions))

	for _, instr := range instructions {
		in, ok := instr.(TACBinary)
		if !ok {
			optimized = append(optimized, instr)
			continue
		}

		var replacement Instruction
		switch in.Op {
		case "+":
			if in.Right == "0" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Left}
			} else if in.Left == "0" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Right}
			}
		case "-":
			if in.Right == "0" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Left}
			}
		case "*":
			if in.Right == "0" || in.Left == "0" {
				replacement = TACAssign{Dest: in.Dest, Src: "0"}
			} else if in.Right == "1" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Left}
			} else if in.Left == "1" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Right}
			}
		case "/":
			if in.Right == "1" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Left}
			}
		case "||":
			if in.Left == "true" || in.Right == "true" {
				replacement = TACAssign{Dest: in.Dest, Src: "true"}
			} else if in.Left == "false" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Right}
			} else if in.Right == "false" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Left}
			}
		case "&&":
			if in.Left == "false" || in.Right == "false" {
				replacement = TACAssign{Dest: in.Dest, Src: "false"}
			} else if in.Left == "true" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Right}
			} else if in.Right == "true" {
				replacement = TACAssign{Dest: in.Dest, Src: in.Left}
			}
		}

		if replacement != nil {
			optimized = append(optimized, replacement)
		} else {
			optimized = append(optimized, in)
		}
	}
	return optimized
}

// strengthReduction replaces multiplication by two with an addition.
func strengthReduction(instructions []Instruction) []Instruction {
	optimized := make([]Instruction, 0, len(instructions))

	for _, instr := range instructions {
		if in, ok := instr.(TACBinary); ok && in.Op == "*" {
			if in.Right == "2" {
				optimized = append(optimized, TACBinary{Dest: in.Dest, Left: in.Left, Op: "+", Right: in.Left})
				continue
			}
			if in.Left == "2" {
				optimized = append(optimized, TACBinary{Dest: in.Dest, Left: in.Right, Op: "+", Right: in.Right})
				continue
			}
		}
		optimized = append(optimized, instr)
	}
	return optimized
}

// deadCodeElimination removes unreachable instructions and assignments
// to temporaries that are never read. Labels are never removed: a later
// pass may still reference them, and their liveness is recomputed from
// the current jump targets every pass.
func deadCodeElimination(instructions []Instruction) []Instruction {
	optimized := removeUnreachable(instructions)
	return removeUnusedTemps(optimized)
}

func removeUnreachable(instructions []Instruction) []Instruction {
	labels := map[string]int{}
	for i, instr := range instructions {
		if l, ok := instr.(TACLabel); ok {
			labels[l.Name] = i
		}
	}

	reachable := map[int]bool{}
	worklist := []int{0}
	for len(worklist) > 0 {
		idx := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if idx < 0 || idx >= len(instructions) || reachable[idx] {
			continue
		}
		reachable[idx] = true

		switch in := instructions[idx].(type) {
		case TACGoto:
			if target, ok := labels[in.Label]; ok {
				worklist = append(worklist, target)
			}
		case TACIfFalse:
			if target, ok := labels[in.Label]; ok {
				worklist = append(worklist, target)
			}
			worklist = append(worklist, idx+1)
		default:
			worklist = append(worklist, idx+1)
		}
	}

	optimized := make([]Instruction, 0, len(instructions))
	for i, instr := range instructions {
		if _, isLabel := instr.(TACLabel); isLabel || reachable[i] {
			optimized = append(optimized, instr)
		}
	}
	return optimized
}

// removeUnusedTemps deletes assignments to temporaries that no later
// instruction reads. User variables are never removed: they may be the
// target of a print or feed a still-live variable. Removal cascades, so
// iterate until stable.
func removeUnusedTemps(instructions []Instruction) []Instruction {
	current := instructions
	for {
		used := map[string]bool{}
		for _, instr := range current {
			switch in := instr.(type) {
			case TACAssign:
				used[in.Src] = true
			case TACBinary:
				used[in.Left] = true
				used[in.Right] = true
			case TACUnary:
				used[in.Operand] = true
			case TACIfFalse:
				used[in.Cond] = true
			case TACPrint:
				used[in.Value] = true
			}
		}

		optimized := make([]Instruction, 0, len(current))
		for _, instr := range current {
			dest := ""
			switch in := instr.(type) {
			case TACAssign:
				dest = in.Dest
			case TACBinary:
				dest = in.Dest
			case TACUnary:
				dest = in.Dest
			}
			if dest != "" && isTemp(dest) && !used[dest] {
				continue
			}
			optimized = append(optimized, instr)
		}

		if len(optimized) == len(current) {
			return optimized
		}
		current = optimized
	}
}

// Constant evaluation. All arithmetic is signed 32-bit with truncating
// division; division or modulo by zero is never folded.

func evalBinary(op, left, right string) (string, bool) {
	switch op {
	case "+", "-", "*", "/", "%", "<", ">", "<=", ">=":
		l, lok := parseInt32(left)
		r, rok := parseInt32(right)
		if !lok || !rok {
			return "", false
		}
		switch op {
		case "+":
			return formatInt32(l + r), true
		case "-":
			return formatInt32(l - r), true
		case "*":
			return formatInt32(l * r), true
		case "/":
			if r == 0 {
				return "", false
			}
			return formatInt32(l / r), true
		case "%":
			if r == 0 {
				return "", false
			}
			return formatInt32(l % r), true
		case "<":
			return boolLiteral(l < r), true
		case ">":
			return boolLiteral(l > r), true
		case "<=":
			return boolLiteral(l <= r), true
		case ">=":
			return boolLiteral(l >= r), true
		}
		return "", false

	case "==", "!=":
		if l, lok := parseInt32(left); lok {
			if r, rok := parseInt32(right); rok {
				if op == "==" {
					return boolLiteral(l == r), true
				}
				return boolLiteral(l != r), true
			}
			return "", false
		}
		if l, lok := parseBool(left); lok {
			if r, rok := parseBool(right); rok {
				if op == "==" {
					return boolLiteral(l == r), true
				}
				return boolLiteral(l != r), true
			}
		}
		return "", false

	case "&&", "||":
		l, lok := parseBool(left)
		r, rok := parseBool(right)
		if !lok || !rok {
			return "", false
		}
		if op == "&&" {
			return boolLiteral(l && r), true
		}
		return boolLiteral(l || r), true

	default:
		return "", false
	}
}

func evalUnary(op, operand string) (string, bool) {
	switch op {
	case "-":
		if v, ok := parseInt32(operand); ok {
			return formatInt32(-v), true
		}
	case "!":
		if v, ok := parseBool(operand); ok {
			return boolLiteral(!v), true
		}
	}
	return "", false
}

func parseInt32(s string) (int32, bool) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

func formatInt32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
