package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylecheck/internal/diagfmt"
	"stylecheck/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.py",
	Short: "Tokenize a Python source file",
	Long:  `Tokenize prints the token stream the parser sees (comments and blank lines are trivia)`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(args[0])
	if err != nil {
		return err
	}

	// Лексические ошибки - в stderr, токены печатаем всё равно
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: Line %d: syntax error: %s\n", result.File.Path, e.Line, e.Msg)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens)
	}
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return exitWith(cmd, driver.ExitErrors)
	}
	return nil
}
