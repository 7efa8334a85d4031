// Package slate is the embedding API for the Slate toolchain. It ties
// the pipeline together: tokenize, parse, analyze, lower to TAC, and
// execute on the VM. The CLI and the end-to-end tests are both built on
// this package.
package slate

import (
	"io"
	"os"

	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/errors"
	"github.com/cwbudde/go-slate/internal/lexer"
	"github.com/cwbudde/go-slate/internal/parser"
	"github.com/cwbudde/go-slate/internal/semantic"
	"github.com/cwbudde/go-slate/internal/tac"
)

// Program is a fully compiled Slate program, ready to run.
type Program struct {
	source string
	file   string
	tree   *ast.Program
	code   *tac.Program
}

// Tokenize scans source into its token list, including the trailing
// EOF token. Unrecognized characters appear as ILLEGAL tokens.
func Tokenize(source string) []lexer.Token {
	return lexer.New(source).Tokenize()
}

// Parse tokenizes and parses source. The first lexical or syntax error
// aborts with a positioned error.
func Parse(source, file string) (*ast.Program, error) {
	tokens := Tokenize(source)
	for _, tok := range tokens {
		if tok.Type == lexer.ILLEGAL {
			return nil, errors.New(errors.StageLexical, tok.Pos,
				"unrecognized character "+quote(tok.Literal)).WithSource(source, file)
		}
	}

	tree, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, withSource(err, source, file)
	}
	return tree, nil
}

// Compile runs the full front half of the pipeline: parse, semantic
// analysis, and TAC lowering. Any failure is returned as a stage-tagged
// error and nothing partial survives.
func Compile(source, file string) (*Program, error) {
	tree, err := Parse(source, file)
	if err != nil {
		return nil, err
	}

	if err := semantic.NewAnalyzer().Analyze(tree); err != nil {
		return nil, withSource(err, source, file)
	}

	code, err := tac.NewCompiler().Compile(tree)
	if err != nil {
		return nil, withSource(err, source, file)
	}

	return &Program{source: source, file: file, tree: tree, code: code}, nil
}

// AST returns the parsed tree.
func (p *Program) AST() *ast.Program {
	return p.tree
}

// IR returns the lowered TAC program.
func (p *Program) IR() *tac.Program {
	return p.code
}

// RunOptions configures one execution.
type RunOptions struct {
	Stdout io.Writer // program output; defaults to os.Stdout
	Stdin  io.Reader // input builtin source; defaults to os.Stdin
	Debug  bool      // trace each instruction before executing
	Trace  io.Writer // trace destination; defaults to Stdout
}

// Run executes the program on a fresh VM and returns the value of the
// outermost return.
func (p *Program) Run(opts RunOptions) (tac.Value, error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	vm := tac.NewVM(out)
	if opts.Stdin != nil {
		vm.SetInput(opts.Stdin)
	}
	if opts.Debug {
		vm.SetDebug(true)
	}
	if opts.Trace != nil {
		vm.SetTrace(opts.Trace)
	}

	if err := vm.Load(p.code); err != nil {
		return nil, err
	}
	return vm.Run()
}

// withSource attaches source context to positioned errors so they can
// render a caret; other errors pass through unchanged.
func withSource(err error, source, file string) error {
	if ce, ok := err.(*errors.CompilerError); ok {
		return ce.WithSource(source, file)
	}
	return err
}

func quote(s string) string {
	return "'" + s + "'"
}
