package main

import "strconv"

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	NodeProgram NodeKind = "NodeProgram"
	NodeVarDecl NodeKind = "NodeVarDecl"
	NodeAssign  NodeKind = "NodeAssign"
	NodePrint   NodeKind = "NodePrint"
	NodeIf      NodeKind = "NodeIf"
	NodeWhile   NodeKind = "NodeWhile"
	NodeBlock   NodeKind = "NodeBlock"
	NodeBinary  NodeKind = "NodeBinary"
	NodeUnary   NodeKind = "NodeUnary"
	NodeIdent   NodeKind = "NodeIdent"
	NodeInteger NodeKind = "NodeInteger"
	NodeBoolean NodeKind = "NodeBoolean"
)

// Type is a MiniC value type. The zero value means "not yet resolved".
type Type string

const (
	TypeInt  Type = "int"
	TypeBool Type = "bool"
)

// ASTNode represents a node in the Abstract Syntax Tree.
//
// The tree is strict: every node owns its children exclusively. The
// parser builds it once; the semantic analyzer only writes the Type
// decoration on expression nodes.
type ASTNode struct {
	Kind NodeKind
	// NodeIdent, NodeVarDecl, NodeAssign: variable name
	String string
	// NodeVarDecl: declared type
	VarType Type
	// NodeInteger:
	Integer int64
	// NodeBoolean:
	Boolean bool
	// NodeBinary, NodeUnary:
	Op string // "+", "-", "==", "!", ...
	// NodeProgram, NodeBlock: statements
	// NodeAssign, NodePrint, NodeUnary: single operand
	// NodeBinary: left, right
	// NodeIf: condition, then block, optional else block
	// NodeWhile: condition, body block
	Children []*ASTNode

	// Source position for diagnostics.
	Line int
	Col  int

	// Type resolved by the semantic analyzer (expressions only).
	Type Type
}

// ToSExpr converts an AST node to s-expression string representation
func ToSExpr(node *ASTNode) string {
	switch node.Kind {
	case NodeProgram:
		result := "(program"
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		result += ")"
		return result
	case NodeVarDecl:
		return "(var \"" + node.String + "\" " + string(node.VarType) + ")"
	case NodeAssign:
		return "(assign \"" + node.String + "\" " + ToSExpr(node.Children[0]) + ")"
	case NodePrint:
		return "(print " + ToSExpr(node.Children[0]) + ")"
	case NodeIf:
		result := "(if " + ToSExpr(node.Children[0]) + " " + ToSExpr(node.Children[1])
		if len(node.Children) == 3 {
			result += " " + ToSExpr(node.Children[2])
		}
		result += ")"
		return result
	case NodeWhile:
		return "(while " + ToSExpr(node.Children[0]) + " " + ToSExpr(node.Children[1]) + ")"
	case NodeBlock:
		result := "(block"
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		result += ")"
		return result
	case NodeBinary:
		left := ToSExpr(node.Children[0])
		right := ToSExpr(node.Children[1])
		return "(binary \"" + node.Op + "\" " + left + " " + right + ")"
	case NodeUnary:
		return "(unary \"" + node.Op + "\" " + ToSExpr(node.Children[0]) + ")"
	case NodeIdent:
		return "(ident \"" + node.String + "\")"
	case NodeInteger:
		return "(integer " + strconv.FormatInt(node.Integer, 10) + ")"
	case NodeBoolean:
		if node.Boolean {
			return "(boolean true)"
		}
		return "(boolean false)"
	default:
		return ""
	}
}
