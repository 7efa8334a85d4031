// Package types defines the Slate type system: base types, generic list
// and tuple types, type-string parsing, and the assignability relation
// used by the semantic analyzer.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface implemented by all Slate types.
// Equality is structural: two types are equal if they have the same shape.
type Type interface {
	// Name returns the canonical spelling of the type, e.g. "int",
	// "list<int>", "tuple<int, str>".
	Name() string

	// Equals reports structural equality with another type.
	Equals(other Type) bool

	// String returns the same spelling as Name, for debugging output.
	String() string
}

// Basic is a non-generic type identified by its name: the builtin base
// types (nil, bool, int, float, str, char, void) or a user-defined class
// name.
type Basic struct {
	TypeName string
}

// Builtin base types.
var (
	NIL   = &Basic{TypeName: "nil"}
	BOOL  = &Basic{TypeName: "bool"}
	INT   = &Basic{TypeName: "int"}
	FLOAT = &Basic{TypeName: "float"}
	STR   = &Basic{TypeName: "str"}
	CHAR  = &Basic{TypeName: "char"}
	VOID  = &Basic{TypeName: "void"}
)

func (b *Basic) Name() string   { return b.TypeName }
func (b *Basic) String() string { return b.TypeName }

func (b *Basic) Equals(other Type) bool {
	o, ok := other.(*Basic)
	return ok && b.TypeName == o.TypeName
}

// IsNumeric reports whether b is int or float.
func (b *Basic) IsNumeric() bool {
	return b.TypeName == "int" || b.TypeName == "float"
}

// List is a homogeneous list type, e.g. list<int>.
type List struct {
	Element Type
}

func (l *List) Name() string   { return fmt.Sprintf("list<%s>", l.Element.Name()) }
func (l *List) String() string { return l.Name() }

func (l *List) Equals(other Type) bool {
	o, ok := other.(*List)
	return ok && l.Element.Equals(o.Element)
}

// Tuple is a fixed-arity heterogeneous tuple type, e.g. tuple<int, str>.
type Tuple struct {
	Elements []Type
}

func (t *Tuple) Name() string {
	names := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		names[i] = e.Name()
	}
	return fmt.Sprintf("tuple<%s>", strings.Join(names, ", "))
}

func (t *Tuple) String() string { return t.Name() }

func (t *Tuple) Equals(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(t.Elements) != len(o.Elements) {
		return false
	}
	for i, e := range t.Elements {
		if !e.Equals(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Parse resolves a type string into a Type. Resolution is syntactic only:
// "list<T>" and "tuple<T1, ...>" recurse on their arguments, anything else
// becomes a Basic with that name (including user-defined class names).
func Parse(s string) Type {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "list<") && strings.HasSuffix(s, ">"):
		inner := s[len("list<") : len(s)-1]
		return &List{Element: Parse(inner)}
	case strings.HasPrefix(s, "tuple<") && strings.HasSuffix(s, ">"):
		inner := s[len("tuple<") : len(s)-1]
		elems := splitTypeArgs(inner)
		parsed := make([]Type, len(elems))
		for i, e := range elems {
			parsed[i] = Parse(e)
		}
		return &Tuple{Elements: parsed}
	default:
		return &Basic{TypeName: s}
	}
}

// splitTypeArgs splits a comma-separated type-argument list at the top
// nesting level, so "int, list<tuple<int, str>>" yields two entries.
func splitTypeArgs(s string) []string {
	var args []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(s[start:]))
	return args
}

// Assignable reports whether a value of type actual may be stored where
// expected is required. The relation is identity plus int→float widening,
// char↔str interchange, and elementwise recursion for lists and tuples.
func Assignable(expected, actual Type) bool {
	if expected.Equals(actual) {
		return true
	}
	if eb, ok := expected.(*Basic); ok {
		if ab, ok := actual.(*Basic); ok {
			if eb.TypeName == "float" && ab.TypeName == "int" {
				return true
			}
			if (eb.TypeName == "char" && ab.TypeName == "str") ||
				(eb.TypeName == "str" && ab.TypeName == "char") {
				return true
			}
		}
	}
	if el, ok := expected.(*List); ok {
		if al, ok := actual.(*List); ok {
			return Assignable(el.Element, al.Element)
		}
	}
	if et, ok := expected.(*Tuple); ok {
		if at, ok := actual.(*Tuple); ok {
			if len(et.Elements) != len(at.Elements) {
				return false
			}
			for i := range et.Elements {
				if !Assignable(et.Elements[i], at.Elements[i]) {
					return false
				}
			}
			return true
		}
	}
	return false
}

// IsNumeric reports whether t is the int or float base type.
func IsNumeric(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.IsNumeric()
}

// IsVoid reports whether t is void or nil, the two spellings of "no value".
func IsVoid(t Type) bool {
	b, ok := t.(*Basic)
	return ok && (b.TypeName == "void" || b.TypeName == "nil")
}
