package tac

import (
	"fmt"

	"github.com/cwbudde/go-slate/internal/ast"
)

// expression lowers one expression and returns the operand naming where
// its value resides: a literal spelling, a variable name, or a fresh
// temporary. Literals and variables emit no instruction.
func (c *Compiler) expression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalOperand(e)
	case *ast.Variable:
		if !c.vars[e.Name] {
			c.errorf(e, "undefined variable '%s'", e.Name)
		}
		return e.Name
	case *ast.BinaryOp:
		return c.binaryOp(e)
	case *ast.UnaryOp:
		return c.unaryOp(e)
	case *ast.Assignment:
		return c.assignment(e)
	case *ast.FunctionCall:
		return c.functionCall(e)
	case *ast.ListLiteral:
		return c.listLiteral(e)
	case *ast.TupleLiteral:
		return c.tupleLiteral(e)
	case *ast.IndexAccess:
		return c.indexAccess(e)
	default:
		c.errorf(expr, "cannot lower expression %T", expr)
		return ""
	}
}

// literalOperand spells a literal the way the VM resolves it: strings
// quoted, everything else verbatim.
func literalOperand(lit *ast.Literal) string {
	if lit.TypeTag == "str" {
		return "\"" + lit.Value + "\""
	}
	return lit.Value
}

// binaryOp lowers `a OP b` into a fresh temporary. Comparison operators
// are emitted flipped with the operands kept in source order; the VM's
// inverse-sense evaluation restores the source predicate.
func (c *Compiler) binaryOp(bo *ast.BinaryOp) string {
	left := c.expression(bo.Left)
	right := c.expression(bo.Right)
	temp := c.newTemp()

	opcode := bo.Operator
	if flipped, ok := compareFlip[bo.Operator]; ok {
		opcode = flipped
	}
	c.emit(&Instruction{Opcode: opcode, Arg1: left, Arg2: right, Result: temp})
	return temp
}

// unaryOp lowers prefix operators. ++ and -- update the operand in
// place and yield the new value in a fresh temporary; ! and - compute
// into a fresh temporary.
func (c *Compiler) unaryOp(uo *ast.UnaryOp) string {
	if uo.Operator == "++" || uo.Operator == "--" {
		arith := "+"
		if uo.Operator == "--" {
			arith = "-"
		}

		// List elements are read, combined, then written back.
		if target, ok := uo.Operand.(*ast.IndexAccess); ok {
			collection := c.expression(target.Collection)
			index := c.expression(target.Index)
			current := c.newTemp()
			c.emit(&Instruction{Opcode: OpArrayLoad, Arg1: collection, Arg2: index, Result: current})
			temp := c.newTemp()
			c.emit(&Instruction{Opcode: arith, Arg1: current, Arg2: "1", Result: temp})
			c.emit(&Instruction{Opcode: OpArrayStore, Arg1: collection, Arg2: index + "," + temp})
			return temp
		}

		operand := c.expression(uo.Operand)
		temp := c.newTemp()
		c.emit(&Instruction{Opcode: arith, Arg1: operand, Arg2: "1", Result: operand})
		c.emit(&Instruction{Opcode: OpAssign, Arg1: operand, Result: temp})
		return temp
	}

	operand := c.expression(uo.Operand)
	temp := c.newTemp()
	c.emit(&Instruction{Opcode: uo.Operator, Arg1: operand, Result: temp})
	return temp
}

// assignment lowers plain and compound assignment to variables and list
// elements. Compound forms read, combine, then write back.
func (c *Compiler) assignment(as *ast.Assignment) string {
	value := c.expression(as.Value)

	arith := ""
	if as.Operator != "=" {
		arith = as.Operator[:1] // "+=" -> "+"
	}

	if target, ok := as.Target.(*ast.IndexAccess); ok {
		collection := c.expression(target.Collection)
		index := c.expression(target.Index)

		if arith != "" {
			current := c.newTemp()
			c.emit(&Instruction{Opcode: OpArrayLoad, Arg1: collection, Arg2: index, Result: current})
			combined := c.newTemp()
			c.emit(&Instruction{Opcode: arith, Arg1: current, Arg2: value, Result: combined})
			value = combined
		}

		c.emit(&Instruction{Opcode: OpArrayStore, Arg1: collection, Arg2: index + "," + value})
		return value
	}

	target := c.expression(as.Target)

	if arith != "" {
		combined := c.newTemp()
		c.emit(&Instruction{Opcode: arith, Arg1: target, Arg2: value, Result: combined})
		value = combined
	}

	if c.tupleVars[value] {
		c.tupleVars[target] = true
	}
	c.emit(&Instruction{Opcode: OpAssign, Arg1: value, Result: target})
	return target
}

// functionCall lowers a call: arguments are evaluated right to left so
// nested calls sequence correctly, param instructions are emitted left
// to right, then the call writes into a fresh temporary.
func (c *Compiler) functionCall(fc *ast.FunctionCall) string {
	args := make([]string, len(fc.Arguments))
	for i := len(fc.Arguments) - 1; i >= 0; i-- {
		args[i] = c.expression(fc.Arguments[i])
	}

	for _, arg := range args {
		c.emit(&Instruction{Opcode: OpParam, Arg1: arg})
	}

	temp := c.newTemp()
	c.emit(&Instruction{
		Opcode: OpCall,
		Arg1:   fc.Name,
		Arg2:   fmt.Sprintf("%d", len(args)),
		Result: temp,
	})
	return temp
}

// listLiteral allocates the backing array and stores each element.
func (c *Compiler) listLiteral(ll *ast.ListLiteral) string {
	listVar := c.newTemp()
	c.emit(&Instruction{Opcode: OpAllocArray, Arg1: fmt.Sprintf("%d", len(ll.Elements)), Result: listVar})

	for i, elem := range ll.Elements {
		value := c.expression(elem)
		c.emit(&Instruction{Opcode: OpArrayStore, Arg1: listVar, Arg2: fmt.Sprintf("%d,%s", i, value)})
	}
	return listVar
}

// tupleLiteral allocates the tuple and stores each element once.
func (c *Compiler) tupleLiteral(tl *ast.TupleLiteral) string {
	tupleVar := c.newTemp()
	c.tupleVars[tupleVar] = true
	c.emit(&Instruction{Opcode: OpAllocTuple, Arg1: fmt.Sprintf("%d", len(tl.Elements)), Result: tupleVar})

	for i, elem := range tl.Elements {
		value := c.expression(elem)
		c.emit(&Instruction{Opcode: OpTupleStore, Arg1: tupleVar, Arg2: fmt.Sprintf("%d,%s", i, value)})
	}
	return tupleVar
}

// indexAccess loads one element into a fresh temporary, using
// tuple_load when the collection is known to hold a tuple. The VM's
// array_load also serves tuple references, so the distinction is a
// listing nicety, not a correctness requirement.
func (c *Compiler) indexAccess(ia *ast.IndexAccess) string {
	collection := c.expression(ia.Collection)
	index := c.expression(ia.Index)
	temp := c.newTemp()

	opcode := OpArrayLoad
	if c.tupleVars[collection] {
		opcode = OpTupleLoad
	}
	c.emit(&Instruction{Opcode: opcode, Arg1: collection, Arg2: index, Result: temp})
	return temp
}
