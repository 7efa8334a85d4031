// Package cmd implements the slate command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-slate/internal/errors"
	"github.com/cwbudde/go-slate/internal/lexer"
	"github.com/cwbudde/go-slate/pkg/printer"
	"github.com/cwbudde/go-slate/pkg/slate"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	showTokens bool
	showAST    bool
	showIR     bool
	debugTrace bool
)

var rootCmd = &cobra.Command{
	Use:   "slate [flags] <file.sl>",
	Short: "Slate interpreter",
	Long: `slate compiles and runs Slate programs: a small statically-typed
imperative language with lists, tuples and C-style control flow.

The pipeline tokenizes the source, parses it, checks its semantics,
lowers it to three-address code and interprets that code on a
register-style virtual machine. Each -l/-a/-g flag stops the pipeline
after the named phase and prints its result:

  slate program.sl          compile and run
  slate -l program.sl       print the token stream and stop
  slate -a program.sl       print the syntax tree and stop
  slate -g program.sl       print the intermediate code and stop
  slate --debug program.sl  trace each instruction while running`,
	Version:       Version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPipeline,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVarP(&showTokens, "lex", "l", false, "print tokens and halt")
	rootCmd.Flags().BoolVarP(&showAST, "ast", "a", false, "print the syntax tree and halt")
	rootCmd.Flags().BoolVarP(&showIR, "gen", "g", false, "print the intermediate code and halt")
	rootCmd.Flags().BoolVar(&debugTrace, "debug", false, "trace each instruction before executing")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to read %s: %v\n", filename, err)
		return err
	}
	source := string(content)

	if showTokens {
		for _, tok := range slate.Tokenize(source) {
			printToken(tok)
		}
		return nil
	}

	if showAST {
		tree, err := slate.Parse(source, filename)
		if err != nil {
			return reportError(err)
		}
		fmt.Print(printer.Print(tree))
		return nil
	}

	program, err := slate.Compile(source, filename)
	if err != nil {
		return reportError(err)
	}

	if showIR {
		fmt.Println(program.IR().String())
		return nil
	}

	_, err = program.Run(slate.RunOptions{
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
		Debug:  debugTrace,
		Trace:  os.Stderr,
	})
	if err != nil {
		return reportError(err)
	}
	return nil
}

// reportError prints a pipeline error to stderr, with source context
// when the error carries a position.
func reportError(err error) error {
	if ce, ok := err.(*errors.CompilerError); ok {
		fmt.Fprintln(os.Stderr, ce.Format())
		return err
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return err
}

// printToken prints one token in the -l listing format:
// [TYPE] "literal" @line:col
func printToken(tok lexer.Token) {
	switch tok.Type {
	case lexer.EOF:
		fmt.Printf("[%-8s] @%d:%d\n", tok.Type, tok.Pos.Line, tok.Pos.Column)
	default:
		fmt.Printf("[%-8s] %q @%d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
	}
}
