package main

// symbol records a declared variable inside one scope.
type symbol struct {
	typ  Type
	line int
	col  int
}

// scope maps declared names to their symbols within one lexical region.
type scope map[string]symbol

// Analyzer walks the AST once, maintaining a stack of scopes, and checks
// declarations and types. Each Analyzer is good for one program; the
// scope stack never outlives the traversal that created it.
type Analyzer struct {
	scopes []scope
}

// NewAnalyzer creates a semantic analyzer with a single (global) scope.
func NewAnalyzer() *Analyzer {
	return &Analyzer{scopes: []scope{{}}}
}

// Analyze checks the program for semantic errors. On success it returns
// nil and every expression node carries its resolved Type; the first
// violation in source order aborts the traversal.
func (a *Analyzer) Analyze(program *ASTNode) error {
	for _, stmt := range program.Children {
		if err := a.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) pushScope() {
	a.scopes = append(a.scopes, scope{})
}

func (a *Analyzer) popScope() {
	a.scopes = a.scopes[:len(a.scopes)-1]
}

// declare adds a name to the innermost scope, rejecting duplicates
// within that scope. Shadowing an outer scope's name is allowed.
func (a *Analyzer) declare(name string, typ Type, line, col int) error {
	inner := a.scopes[len(a.scopes)-1]
	if _, ok := inner[name]; ok {
		return semanticErrorf(ErrDuplicateDeclaration, line, col,
			"variable '%s' already declared in this scope", name)
	}
	inner[name] = symbol{typ: typ, line: line, col: col}
	return nil
}

// lookup resolves a name innermost-scope-first.
func (a *Analyzer) lookup(name string) (symbol, bool) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if sym, ok := a.scopes[i][name]; ok {
			return sym, true
		}
	}
	return symbol{}, false
}

func (a *Analyzer) checkStatement(node *ASTNode) error {
	switch node.Kind {
	case NodeVarDecl:
		return a.declare(node.String, node.VarType, node.Line, node.Col)

	case NodeAssign:
		sym, ok := a.lookup(node.String)
		if !ok {
			return semanticErrorf(ErrUndeclaredVariable, node.Line, node.Col,
				"undeclared variable '%s'", node.String)
		}
		exprType, err := a.checkExpression(node.Children[0])
		if err != nil {
			return err
		}
		if exprType != sym.typ {
			return semanticErrorf(ErrTypeMismatch, node.Line, node.Col,
				"cannot assign %s to %s variable '%s'", exprType, sym.typ, node.String)
		}
		return nil

	case NodePrint:
		_, err := a.checkExpression(node.Children[0])
		return err

	case NodeIf:
		condType, err := a.checkExpression(node.Children[0])
		if err != nil {
			return err
		}
		if condType != TypeBool {
			return semanticErrorf(ErrTypeMismatch, node.Children[0].Line, node.Children[0].Col,
				"if condition must be of type bool, got %s", condType)
		}
		if err := a.checkBlock(node.Children[1]); err != nil {
			return err
		}
		if len(node.Children) == 3 {
			return a.checkBlock(node.Children[2])
		}
		return nil

	case NodeWhile:
		condType, err := a.checkExpression(node.Children[0])
		if err != nil {
			return err
		}
		if condType != TypeBool {
			return semanticErrorf(ErrTypeMismatch, node.Children[0].Line, node.Children[0].Col,
				"while condition must be of type bool, got %s", condType)
		}
		return a.checkBlock(node.Children[1])

	case NodeBlock:
		return a.checkBlock(node)

	default:
		return semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
			"unexpected statement node %s", node.Kind)
	}
}

// checkBlock checks a block's statements inside a fresh scope.
func (a *Analyzer) checkBlock(block *ASTNode) error {
	a.pushScope()
	defer a.popScope()
	for _, stmt := range block.Children {
		if err := a.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// checkExpression infers and returns the expression's type, decorating
// the node along the way.
func (a *Analyzer) checkExpression(node *ASTNode) (Type, error) {
	switch node.Kind {
	case NodeInteger:
		node.Type = TypeInt
		return TypeInt, nil

	case NodeBoolean:
		node.Type = TypeBool
		return TypeBool, nil

	case NodeIdent:
		sym, ok := a.lookup(node.String)
		if !ok {
			return "", semanticErrorf(ErrUndeclaredVariable, node.Line, node.Col,
				"undeclared variable '%s'", node.String)
		}
		node.Type = sym.typ
		return sym.typ, nil

	case NodeBinary:
		leftType, err := a.checkExpression(node.Children[0])
		if err != nil {
			return "", err
		}
		rightType, err := a.checkExpression(node.Children[1])
		if err != nil {
			return "", err
		}
		resultType, err := a.binaryResultType(node, leftType, rightType)
		if err != nil {
			return "", err
		}
		node.Type = resultType
		return resultType, nil

	case NodeUnary:
		operandType, err := a.checkExpression(node.Children[0])
		if err != nil {
			return "", err
		}
		switch node.Op {
		case "-":
			if operandType != TypeInt {
				return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
					"unary '-' requires int operand, got %s", operandType)
			}
			node.Type = TypeInt
			return TypeInt, nil
		case "!":
			if operandType != TypeBool {
				return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
					"unary '!' requires bool operand, got %s", operandType)
			}
			node.Type = TypeBool
			return TypeBool, nil
		default:
			return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
				"unknown unary operator '%s'", node.Op)
		}

	default:
		return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
			"unexpected expression node %s", node.Kind)
	}
}

func (a *Analyzer) binaryResultType(node *ASTNode, left, right Type) (Type, error) {
	switch node.Op {
	case "+", "-", "*", "/", "%":
		if left != TypeInt || right != TypeInt {
			return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
				"arithmetic operator '%s' requires int operands, got %s and %s", node.Op, left, right)
		}
		return TypeInt, nil

	case "<", ">", "<=", ">=":
		if left != TypeInt || right != TypeInt {
			return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
				"comparison operator '%s' requires int operands, got %s and %s", node.Op, left, right)
		}
		return TypeBool, nil

	case "==", "!=":
		if left != right {
			return "", semanticErrorf(ErrTypeMismatch, node.Line, node.Col,
				"equality operator '%s' requires operands of same type, got %s and %s", node.Op, left, right)
		}
		return TypeBool, nil

	case "&&", "||":
		if left != TypeBool || right != TypeBool {
			return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
				"logical operator '%s' requires bool operands, got %s and %s", node.Op, left, right)
		}
		return TypeBool, nil

	default:
		return "", semanticErrorf(ErrInvalidOperandType, node.Line, node.Col,
			"unknown operator '%s'", node.Op)
	}
}
