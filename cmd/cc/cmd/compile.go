package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minicc/minicc/internal/ccerrors"
	"github.com/minicc/minicc/internal/codegen"
	"github.com/minicc/minicc/internal/lexer"
	"github.com/minicc/minicc/internal/parser"
	"github.com/spf13/cobra"
)

var (
	outputPath     string
	compileAst     bool
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file to x86-64 assembly",
	Long: `Compile reads one translation unit, lexes and parses it into a
typed syntax tree, and generates GNU-assembler, Intel-syntax, System V
AMD64 source text.

With no file argument (or "-"), source is read from standard input.
Assembly is written to the path given by -o, or to standard output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVar(&compileAst, "ast", false, "print the parsed syntax tree as JSON instead of generating assembly")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "report pipeline stage progress to stderr")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := "<stdin>"
	if len(args) == 1 && args[0] != "-" {
		filename = args[0]
	}

	source, err := readSource(filename)
	if err != nil {
		return err
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "cc: compiling %s\n", filename)
	}

	l := lexer.New(source)
	p, err := parser.New(l)
	if err != nil {
		return reportCompileError(err, source, filename)
	}
	unit, err := p.ParseUnit()
	if err != nil {
		return reportCompileError(err, source, filename)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "cc: parsed %d function(s), %d global(s)\n", len(unit.Functions), len(unit.Globals))
	}

	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	if compileAst {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(unit)
	}

	asm, err := codegen.Generate(unit)
	if err != nil {
		return reportCompileError(err, source, filename)
	}
	_, err = io.WriteString(out, asm)
	return err
}

func readSource(filename string) (string, error) {
	if filename == "<stdin>" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return string(data), nil
}

func openOutput() (io.WriteCloser, error) {
	if outputPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", outputPath, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// reportCompileError attaches source context to a *ccerrors.CompileError
// and prints the formatted caret diagnostic to stderr; any other error
// (I/O, etc.) is printed as-is. Either way the pipeline aborts: this
// compiler does not attempt multi-error recovery.
func reportCompileError(err error, source, filename string) error {
	var ce *ccerrors.CompileError
	if errors.As(err, &ce) {
		ce.Source = source
		ce.File = filename
		fmt.Fprintln(os.Stderr, ce.Format(true))
		return ce
	}
	fmt.Fprintln(os.Stderr, err)
	return err
}
