// Package errors provides error formatting for the Slate toolchain.
// It formats positioned compiler errors (lexical, syntax, semantic,
// IR-generation) with source context and a caret pointing at the
// offending column.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-slate/internal/lexer"
)

// Stage names for positioned errors, matching the pipeline phases.
const (
	StageLexical  = "lexical"
	StageSyntax   = "syntax"
	StageSemantic = "semantic"
	StageIR       = "ir-generation"
)

// CompilerError is a single compilation error with position and context.
type CompilerError struct {
	Stage   string
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// New creates a positioned compiler error.
func New(stage string, pos lexer.Position, message string) *CompilerError {
	return &CompilerError{Stage: stage, Pos: pos, Message: message}
}

// WithSource attaches the source text and file name used by Format.
func (e *CompilerError) WithSource(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s error at line %d, column %d: %s", e.Stage, e.Pos.Line, e.Pos.Column, e.Message)
}

// Format renders the error with the offending source line and a caret.
func (e *CompilerError) Format() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s error in %s:%d:%d\n", e.Stage, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s error at line %d:%d\n", e.Stage, e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		caretCol := e.Pos.Column
		if caretCol < 1 {
			caretCol = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretCol-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
