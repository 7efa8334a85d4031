package semantic

import (
	"fmt"

	"github.com/cwbudde/go-slate/internal/types"
)

// SymbolKind classifies what a name refers to.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolClass
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	}
	return "unknown"
}

// Param is one declared parameter of a function symbol.
type Param struct {
	Name string
	Type types.Type
}

// Symbol is a single symbol-table entry. For functions, Type holds the
// return type and Params the declared parameter list; IsVariadic marks
// library functions whose call sites skip arity and type checks.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       types.Type
	Params     []Param
	IsVariadic bool
}

// SymbolTable manages symbols for one lexical scope, chained to its
// enclosing scope. Lookup walks outward; definition is strictly local.
type SymbolTable struct {
	symbols map[string]*Symbol
	outer   *SymbolTable
}

// NewSymbolTable creates an unenclosed (global) symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable creates a symbol table nested in outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	st := NewSymbolTable()
	st.outer = outer
	return st
}

// Define adds a symbol to the current scope. Redefining a name already
// present in this scope is an error; shadowing an outer scope is not.
func (st *SymbolTable) Define(sym *Symbol) error {
	if _, exists := st.symbols[sym.Name]; exists {
		return fmt.Errorf("symbol '%s' already defined in current scope", sym.Name)
	}
	st.symbols[sym.Name] = sym
	return nil
}

// Resolve looks up a symbol in this scope and then outward.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.outer != nil {
		return st.outer.Resolve(name)
	}
	return nil, false
}

// IsDeclaredInCurrentScope checks this scope only, ignoring parents.
func (st *SymbolTable) IsDeclaredInCurrentScope(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// Outer returns the enclosing scope, or nil for the global table.
func (st *SymbolTable) Outer() *SymbolTable {
	return st.outer
}
