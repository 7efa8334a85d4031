package types

import (
	"testing"
)

func TestParseBasic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int", "int"},
		{"float", "float"},
		{"str", "str"},
		{"void", "void"},
		{"Shape", "Shape"},
		{"list<int>", "list<int>"},
		{"list<list<str>>", "list<list<str>>"},
		{"tuple<int, str>", "tuple<int, str>"},
		{"tuple<int, list<float>, str>", "tuple<int, list<float>, str>"},
	}
	for _, tt := range tests {
		got := Parse(tt.input)
		if got.Name() != tt.want {
			t.Errorf("Parse(%q).Name() = %q, want %q", tt.input, got.Name(), tt.want)
		}
	}
}

func TestParseShapes(t *testing.T) {
	lt, ok := Parse("list<int>").(*List)
	if !ok {
		t.Fatalf("expected *List, got %T", Parse("list<int>"))
	}
	if !lt.Element.Equals(INT) {
		t.Errorf("element type: got %s, want int", lt.Element)
	}

	tt, ok := Parse("tuple<int, str>").(*Tuple)
	if !ok {
		t.Fatalf("expected *Tuple, got %T", Parse("tuple<int, str>"))
	}
	if len(tt.Elements) != 2 || !tt.Elements[0].Equals(INT) || !tt.Elements[1].Equals(STR) {
		t.Errorf("tuple elements: got %s", tt)
	}
}

func TestStructuralEquality(t *testing.T) {
	if !Parse("list<int>").Equals(Parse("list<int>")) {
		t.Error("identical list types should be equal")
	}
	if Parse("list<int>").Equals(Parse("list<float>")) {
		t.Error("lists of different element types should differ")
	}
	if Parse("tuple<int, str>").Equals(Parse("tuple<str, int>")) {
		t.Error("tuples with reordered elements should differ")
	}
	if Parse("int").Equals(Parse("list<int>")) {
		t.Error("basic and list types should differ")
	}
}

func TestAssignable(t *testing.T) {
	tests := []struct {
		expected string
		actual   string
		want     bool
	}{
		{"int", "int", true},
		{"float", "int", true},
		{"int", "float", false},
		{"str", "char", true},
		{"char", "str", true},
		{"bool", "int", false},
		{"list<float>", "list<int>", true},
		{"list<int>", "list<float>", false},
		{"tuple<float, str>", "tuple<int, str>", true},
		{"tuple<int, str>", "tuple<int>", false},
		{"list<int>", "tuple<int>", false},
	}
	for _, tt := range tests {
		got := Assignable(Parse(tt.expected), Parse(tt.actual))
		if got != tt.want {
			t.Errorf("Assignable(%s, %s) = %t, want %t", tt.expected, tt.actual, got, tt.want)
		}
	}
}

func TestNumericAndVoidPredicates(t *testing.T) {
	if !IsNumeric(INT) || !IsNumeric(FLOAT) {
		t.Error("int and float are numeric")
	}
	if IsNumeric(STR) || IsNumeric(Parse("list<int>")) {
		t.Error("str and list<int> are not numeric")
	}
	if !IsVoid(VOID) || !IsVoid(NIL) {
		t.Error("void and nil are both void-like")
	}
	if IsVoid(INT) {
		t.Error("int is not void-like")
	}
}
