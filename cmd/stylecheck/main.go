package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stylecheck/internal/driver"
	"stylecheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stylecheck",
	Short: "Python style checker",
	Long:  `stylecheck reports PEP 8 style problems (S001..S012) in Python source files`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupColor(cmd); err != nil {
			return err
		}
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profCleanup = stopProf
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	SilenceUsage: true,
}

// traceCleanup закрывает трассировку; PersistentPostRun не вызывается при ошибке.
var traceCleanup = func(int) {}

var profCleanup = func() error { return nil }

// exitError carries a process exit code through cobra without printing.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = unlimited)")
	rootCmd.PersistentFlags().String("config", "", "path to stylecheck.toml (default: search upwards)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// main runs the root command.
// Exit codes: 0 clean, 1 style findings, 2 input or usage errors.
func main() {
	code := exitCodeFor(rootCmd.Execute())
	if err := profCleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
	}
	traceCleanup(code)
	os.Exit(code)
}

func exitCodeFor(err error) int {
	if err == nil {
		return driver.ExitClean
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return driver.ExitErrors
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
