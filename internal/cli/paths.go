package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/shapepath/internal/jsonpath"
)

// PathInfo is one addressable member in paths output.
type PathInfo struct {
	Path     string `json:"path"`
	Shape    string `json:"shape"`
	Optional bool   `json:"optional,omitempty"`
	Doc      string `json:"doc,omitempty"`
}

// PathsResult is the paths command payload.
type PathsResult struct {
	Definition string     `json:"definition"`
	Paths      []PathInfo `json:"paths"`
}

// NewPathsCommand creates the paths command.
func NewPathsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <schema-dir> <definition>",
		Short: "List the query paths of a record definition",
		Long: `List every record member reachable from a definition, with the
JSONPath that addresses it and its shape.

Members of nested records are listed below their parent. Members inside
arrays and maps are not listed; address them with index, key or filter
steps in a query document.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runPaths(opts *RootOptions, schemaDir, definition string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := formatter.Logger()

	loaded, err := LoadSchema(schemaDir, definition)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	logger.Debug("schema loaded",
		"dir", schemaDir,
		"definition", loaded.Definition,
		"files", loaded.FileCount,
	)

	entries, err := jsonpath.Paths(loaded.Root)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	result := PathsResult{Definition: loaded.Definition, Paths: make([]PathInfo, len(entries))}
	for i, e := range entries {
		result.Paths[i] = PathInfo{
			Path:     e.Path,
			Shape:    e.Shape.String(),
			Optional: e.Optional,
			Doc:      e.Doc,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	formatter.Check("%s: %d path(s)", result.Definition, len(result.Paths))
	fmt.Fprintln(formatter.Writer)

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	for _, p := range result.Paths {
		optional := ""
		if p.Optional {
			optional = " (optional)"
		}
		fmt.Fprintf(tw, "  %s\t%s%s\n", p.Path, p.Shape, optional)
	}
	return tw.Flush()
}

// outputCommandError outputs a load or setup error.
func outputCommandError(formatter *OutputFormatter, err error) error {
	code := MapErrorToCode(err)
	message := err.Error()
	var details any
	if loadErr, ok := err.(*LoadError); ok {
		message = loadErr.Message
		if loadErr.Pos.IsValid() {
			details = fmt.Sprintf("%s:%d:%d", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
		}
	}
	_ = formatter.Error(code, message, details)
	// Setup errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
