// Package tac implements the three-address-code layer of the Slate
// toolchain: the instruction model, the AST-to-TAC compiler, and the
// virtual machine that executes TAC programs.
//
// A TAC program is a flat ordered list whose items are either labels or
// instructions. Operands are textual: a literal spelling, a variable
// name, or a temporary (t0, t1, ...). Control-flow labels are anonymous
// (L0, L1, ...); function labels carry the ordered parameter name list.
package tac

import (
	"strings"
)

// Opcodes. Binary arithmetic and comparison instructions use the
// operator symbol itself as the opcode; comparisons are emitted with
// the inversion convention (see compiler.go) and executed in inverse
// sense by the VM so the net predicate matches the source program.
const (
	OpAssign     = "assign"
	OpGoto       = "goto"
	OpIfGoto     = "if_goto"
	OpParam      = "param"
	OpCall       = "call"
	OpReturn     = "return"
	OpAllocArray = "alloc_array"
	OpAllocTuple = "alloc_tuple"
	OpArrayStore = "array_store"
	OpTupleStore = "tuple_store"
	OpArrayLoad  = "array_load"
	OpTupleLoad  = "tuple_load"
	OpNot        = "!"
	OpNeg        = "-" // unary when Arg2 is empty
)

// Item is one element of a TAC program: a *Label or an *Instruction.
type Item interface {
	String() string
	tacItem()
}

// Label marks a jump target. Function labels carry the parameter names
// the VM binds on call entry; control-flow labels have none.
type Label struct {
	Name   string
	Params []string
}

func (l *Label) tacItem()       {}
func (l *Label) String() string { return l.Name + ":" }

// Instruction is a single three-address instruction. Unused fields are
// empty strings. Store instructions pack "index,value" into Arg2,
// split at the first comma.
type Instruction struct {
	Opcode string
	Arg1   string
	Arg2   string
	Result string
}

func (i *Instruction) tacItem() {}

// String renders the instruction in the wire syntax used by the -g
// listing and the disassembly snapshots.
func (i *Instruction) String() string {
	switch i.Opcode {
	case OpGoto:
		return "goto " + i.Arg1
	case OpIfGoto:
		return "if " + i.Arg1 + " goto " + i.Arg2
	case OpReturn:
		if i.Arg1 == "" {
			return "return"
		}
		return "return " + i.Arg1
	case OpParam:
		return "param " + i.Arg1
	case OpCall:
		return i.Result + " = call " + i.Arg1 + ", " + i.Arg2
	case OpAssign:
		return i.Result + " = " + i.Arg1
	case OpAllocArray:
		return i.Result + " = new array[" + i.Arg1 + "]"
	case OpAllocTuple:
		return i.Result + " = new tuple[" + i.Arg1 + "]"
	case OpArrayStore, OpTupleStore:
		index, value := splitStoreOperand(i.Arg2)
		return i.Opcode + " " + i.Arg1 + "[" + index + "] = " + value
	case OpArrayLoad, OpTupleLoad:
		return i.Result + " = " + i.Arg1 + "[" + i.Arg2 + "]"
	default:
		if i.Arg2 == "" {
			return i.Result + " = " + i.Opcode + " " + i.Arg1
		}
		return i.Result + " = " + i.Arg1 + " " + i.Opcode + " " + i.Arg2
	}
}

// splitStoreOperand splits a packed "index,value" operand at the first
// comma; the value half may itself contain commas.
func splitStoreOperand(packed string) (index, value string) {
	if at := strings.Index(packed, ","); at >= 0 {
		return packed[:at], packed[at+1:]
	}
	return packed, ""
}

// Program is an ordered TAC item list.
type Program struct {
	Items []Item
}

// Add appends an item.
func (p *Program) Add(item Item) {
	p.Items = append(p.Items, item)
}

// String renders the whole program, one item per line.
func (p *Program) String() string {
	lines := make([]string, len(p.Items))
	for i, item := range p.Items {
		lines[i] = item.String()
	}
	return strings.Join(lines, "\n")
}
