package semantic

import (
	"strconv"

	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/types"
)

var (
	arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
	comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true}
	logicalOps    = map[string]bool{"&&": true, "||": true}
)

// expression types one expression node, rejecting ill-typed forms.
func (a *Analyzer) expression(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return types.Parse(e.TypeTag)
	case *ast.Variable:
		return a.variable(e)
	case *ast.BinaryOp:
		return a.binaryOp(e)
	case *ast.UnaryOp:
		return a.unaryOp(e)
	case *ast.Assignment:
		return a.assignment(e)
	case *ast.FunctionCall:
		return a.functionCall(e)
	case *ast.ListLiteral:
		return a.listLiteral(e)
	case *ast.TupleLiteral:
		return a.tupleLiteral(e)
	case *ast.IndexAccess:
		return a.indexAccess(e)
	default:
		a.errorf(expr, "unexpected expression %T", expr)
		return nil
	}
}

func (a *Analyzer) variable(v *ast.Variable) types.Type {
	sym, ok := a.scope.Resolve(v.Name)
	if !ok {
		a.errorf(v, "undefined variable '%s'", v.Name)
	}
	return sym.Type
}

func (a *Analyzer) binaryOp(bo *ast.BinaryOp) types.Type {
	leftType := a.expression(bo.Left)
	rightType := a.expression(bo.Right)
	op := bo.Operator

	switch {
	case arithmeticOps[op]:
		if !types.IsNumeric(leftType) || !types.IsNumeric(rightType) {
			a.errorf(bo, "arithmetic operator '%s' requires numeric operands", op)
		}
		if leftType.Equals(types.FLOAT) || rightType.Equals(types.FLOAT) {
			return types.FLOAT
		}
		return types.INT
	case comparisonOps[op]:
		if !leftType.Equals(rightType) {
			a.errorf(bo, "comparison operator '%s' requires operands of the same type", op)
		}
		return types.BOOL
	case logicalOps[op]:
		if !leftType.Equals(types.BOOL) || !rightType.Equals(types.BOOL) {
			a.errorf(bo, "logical operator '%s' requires boolean operands", op)
		}
		return types.BOOL
	default:
		a.errorf(bo, "unknown binary operator '%s'", op)
		return nil
	}
}

func (a *Analyzer) unaryOp(uo *ast.UnaryOp) types.Type {
	operandType := a.expression(uo.Operand)

	switch uo.Operator {
	case "!":
		if !operandType.Equals(types.BOOL) {
			a.errorf(uo, "logical NOT operator '!' requires a boolean operand")
		}
		return types.BOOL
	case "-":
		if !types.IsNumeric(operandType) {
			a.errorf(uo, "unary minus operator '-' requires a numeric operand")
		}
		return operandType
	case "++", "--":
		switch uo.Operand.(type) {
		case *ast.Variable, *ast.IndexAccess:
		default:
			a.errorf(uo, "operator '%s' requires an assignable operand", uo.Operator)
		}
		if !types.IsNumeric(operandType) {
			a.errorf(uo, "operator '%s' requires a numeric operand", uo.Operator)
		}
		return operandType
	default:
		a.errorf(uo, "unknown unary operator '%s'", uo.Operator)
		return nil
	}
}

func (a *Analyzer) assignment(as *ast.Assignment) types.Type {
	targetType := a.expression(as.Target)
	valueType := a.expression(as.Value)

	// Compound forms imply an arithmetic operation on the target.
	if as.Operator != "=" {
		if !types.IsNumeric(targetType) || !types.IsNumeric(valueType) {
			a.errorf(as, "operator '%s' requires numeric operands", as.Operator)
		}
	}

	if !types.Assignable(targetType, valueType) {
		a.errorf(as, "type mismatch in assignment: expected '%s', got '%s'", targetType.Name(), valueType.Name())
	}

	// Tuples are immutable: storing through an index access whose
	// collection is a tuple is rejected.
	if ia, ok := as.Target.(*ast.IndexAccess); ok {
		collectionType := a.expression(ia.Collection)
		if _, isTuple := collectionType.(*types.Tuple); isTuple {
			a.errorf(as, "tuples are immutable and cannot be assigned to")
		}
	}

	return targetType
}

func (a *Analyzer) functionCall(fc *ast.FunctionCall) types.Type {
	sym, ok := a.scope.Resolve(fc.Name)
	if !ok {
		a.errorf(fc, "undefined function '%s'", fc.Name)
	}
	if sym.Kind != SymbolFunction {
		a.errorf(fc, "'%s' is not a function", fc.Name)
	}

	if sym.IsVariadic {
		// Library variadics (print) accept any arguments, including
		// none; the arguments are still typed for their own errors.
		for _, arg := range fc.Arguments {
			a.expression(arg)
		}
		return sym.Type
	}

	if len(fc.Arguments) != len(sym.Params) {
		a.errorf(fc, "function '%s' expects %d parameters, got %d", fc.Name, len(sym.Params), len(fc.Arguments))
	}
	for i, arg := range fc.Arguments {
		argType := a.expression(arg)
		param := sym.Params[i]
		if !types.Assignable(param.Type, argType) {
			a.errorf(fc, "type mismatch in function '%s' argument '%s': expected '%s', got '%s'",
				fc.Name, param.Name, param.Type.Name(), argType.Name())
		}
	}
	return sym.Type
}

func (a *Analyzer) listLiteral(ll *ast.ListLiteral) types.Type {
	if len(ll.Elements) == 0 {
		a.errorf(ll, "list cannot be empty; element type cannot be inferred")
	}
	first := a.expression(ll.Elements[0])
	for _, elem := range ll.Elements[1:] {
		elemType := a.expression(elem)
		if !types.Assignable(first, elemType) {
			a.errorf(ll, "all elements in the list must have the same type")
		}
	}
	return &types.List{Element: first}
}

func (a *Analyzer) tupleLiteral(tl *ast.TupleLiteral) types.Type {
	elems := make([]types.Type, len(tl.Elements))
	for i, e := range tl.Elements {
		elems[i] = a.expression(e)
	}
	return &types.Tuple{Elements: elems}
}

func (a *Analyzer) indexAccess(ia *ast.IndexAccess) types.Type {
	collectionType := a.expression(ia.Collection)

	var elementType types.Type
	switch ct := collectionType.(type) {
	case *types.List:
		elementType = ct.Element
	case *types.Tuple:
		// Tuple indices must be integer literals so the element type is
		// known statically.
		lit, ok := ia.Index.(*ast.Literal)
		if !ok || lit.TypeTag != "int" {
			a.errorf(ia, "tuple index must be a constant integer")
		}
		index, err := strconv.Atoi(lit.Value)
		if err != nil || index < 0 || index >= len(ct.Elements) {
			a.errorf(ia, "tuple index %s out of range", lit.Value)
		}
		elementType = ct.Elements[index]
	default:
		a.errorf(ia, "indexing is only supported on 'list' and 'tuple' types")
	}

	indexType := a.expression(ia.Index)
	if !types.Assignable(types.INT, indexType) {
		a.errorf(ia, "index expression must be of type 'int', got '%s'", indexType.Name())
	}

	return elementType
}
