package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/shapepath/internal/querydoc"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult holds the compiled queries of one document.
type CompilationResult struct {
	Definition string            `json:"definition"`
	Queries    []querydoc.Result `json:"queries"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <schema-dir> <queries.yaml>",
		Short: "Compile a query document to JSONPath",
		Long: `Compile the queries of a YAML query document to JSONPath strings.

The document names a record definition from the CUE package in
schema-dir. Each query is built through the typed accessor tree of that
definition and rendered with a stable content-addressed ID.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, schemaDir, queryFile string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := formatter.Logger()

	doc, loaded, err := loadDocument(schemaDir, queryFile)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	logger.Debug("schema loaded",
		"dir", schemaDir,
		"definition", loaded.Definition,
		"files", loaded.FileCount,
	)

	results, err := querydoc.NewCompiler(logger).Compile(doc, loaded.Root)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	result := &CompilationResult{Definition: loaded.Definition, Queries: results}

	if opts.Output != "" {
		if err := writeResultToFile(result, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// loadDocument reads a query document and the schema it names.
func loadDocument(schemaDir, queryFile string) (*querydoc.Document, *LoadResult, error) {
	doc, err := querydoc.Load(queryFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query file not found: %s", queryFile)}
		}
		return nil, nil, &LoadError{Code: ErrCodeInvalidDocument, Message: err.Error()}
	}

	loaded, err := LoadSchema(schemaDir, doc.Schema)
	if err != nil {
		return nil, nil, err
	}
	return doc, loaded, nil
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	noun := "queries"
	if len(result.Queries) == 1 {
		noun = "query"
	}
	formatter.Check("Compiled %d %s against %s", len(result.Queries), noun, result.Definition)
	fmt.Fprintln(formatter.Writer)
	for _, q := range result.Queries {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", q.Name, q.Path)
	}

	if outputFile != "" {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintf(formatter.Writer, "Wrote compiled queries to %s\n", outputFile)
	}
	return nil
}

// outputCompileError outputs the error of the first failing query.
func outputCompileError(formatter *OutputFormatter, err error) error {
	code := MapErrorToCode(err)
	if formatter.Format == "json" {
		_ = formatter.Error(code, err.Error(), nil)
	} else {
		formatter.Cross("Compilation failed")
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, err.Error())
	}
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, code, err)
}

// writeResultToFile writes the compilation result as indented JSON.
func writeResultToFile(result *CompilationResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
