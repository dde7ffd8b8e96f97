package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/shapepath/internal/querydoc"
)

// QueryError is one rejected query in validate output.
type QueryError struct {
	Query   string `json:"query"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool         `json:"valid"`
	Checked int          `json:"checked"`
	Errors  []QueryError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema-dir> <queries.yaml>",
		Short: "Check a query document without writing output",
		Long: `Check every query of a YAML query document against its schema.

Unlike compile, validate does not stop at the first rejected query: all
queries are checked and every failure is reported.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, schemaDir, queryFile string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := formatter.Logger()

	doc, loaded, err := loadDocument(schemaDir, queryFile)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	compiler := querydoc.NewCompiler(logger)
	result := ValidationResult{Valid: true, Checked: len(doc.Queries)}
	var passed []string
	for _, q := range doc.Queries {
		logger.Debug("validating query", "query", q.Name)
		if _, err := compiler.CompileQuery(q, loaded.Root); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, QueryError{
				Query:   q.Name,
				Code:    MapErrorToCode(err),
				Message: queryMessage(err),
			})
			continue
		}
		passed = append(passed, q.Name)
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result, passed)
	}
	return outputValidateSuccess(formatter, result, passed)
}

// queryMessage strips the query name that querydoc.Error prefixes.
func queryMessage(err error) string {
	var qerr *querydoc.Error
	if errors.As(err, &qerr) {
		return qerr.Err.Error()
	}
	return err.Error()
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult, passed []string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, name := range passed {
		formatter.Check("%s", name)
	}
	fmt.Fprintln(formatter.Writer)
	formatter.Check("All %d queries valid", result.Checked)
	return nil
}

// outputValidationErrors outputs every rejected query.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult, passed []string) error {
	failed := len(result.Errors)

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    result.Errors[0].Code,
				Message: result.Errors[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", failed))
	}

	for _, name := range passed {
		formatter.Check("%s", name)
	}
	for _, e := range result.Errors {
		formatter.Cross("%s", e.Query)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", e.Code, e.Message)
	}
	fmt.Fprintln(formatter.Writer)
	formatter.Cross("Validation failed: %d of %d queries rejected", failed, result.Checked)

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", failed))
}
