package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stylecheck/internal/diagfmt"
	"stylecheck/internal/driver"
	"stylecheck/internal/syntaxindex"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.py",
	Short: "Parse a Python source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("index", false, "print the declaration index used by the naming rules instead of the tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	showIndex, err := cmd.Flags().GetBool("index")
	if err != nil {
		return fmt.Errorf("failed to get index flag: %w", err)
	}

	result, err := driver.Parse(args[0])
	if err != nil {
		var ie *driver.InputError
		if !errors.As(err, &ie) {
			return err
		}
		opts := diagfmt.ShortOpts{}
		if err := diagfmt.ShortFailures(cmd.ErrOrStderr(), toFailures([]*driver.InputError{ie}), opts); err != nil {
			return err
		}
		return exitWith(cmd, driver.ExitErrors)
	}

	if showIndex {
		idx := syntaxindex.Build(result.Module, result.File)
		return writeIndex(cmd.OutOrStdout(), idx, format)
	}
	if format == "json" {
		return diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Module, result.File)
	}
	return diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Module, result.File)
}

type defaultOutput struct {
	Kind string `json:"kind"`
	Repr string `json:"repr"`
}

type indexEntry struct {
	Line     int             `json:"line"`
	Kind     string          `json:"kind"`
	Name     string          `json:"name"`
	Args     []string        `json:"args,omitempty"`
	Defaults []defaultOutput `json:"defaults,omitempty"`
}

func indexEntries(idx *syntaxindex.Index) []indexEntry {
	var out []indexEntry
	for _, line := range idx.Lines() {
		if fn, ok := idx.Function(line); ok {
			e := indexEntry{Line: line, Kind: "function", Name: fn.Name, Args: fn.Args}
			for _, d := range fn.Defaults {
				e.Defaults = append(e.Defaults, defaultOutput{Kind: d.Kind.String(), Repr: d.Repr})
			}
			out = append(out, e)
		}
		if name, ok := idx.Variable(line); ok {
			out = append(out, indexEntry{Line: line, Kind: "variable", Name: name})
		}
	}
	return out
}

func writeIndex(w io.Writer, idx *syntaxindex.Index, format string) error {
	entries := indexEntries(idx)
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []indexEntry{}
		}
		return enc.Encode(entries)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		detail := ""
		if e.Kind == "function" {
			defs := make([]string, len(e.Defaults))
			for i, d := range e.Defaults {
				defs[i] = d.Kind + " " + d.Repr
			}
			detail = "(" + strings.Join(e.Args, ", ") + ")"
			if len(defs) > 0 {
				detail += "  defaults: " + strings.Join(defs, "; ")
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Line, e.Kind, e.Name, detail)
	}
	return tw.Flush()
}
