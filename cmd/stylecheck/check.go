package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stylecheck/internal/config"
	"stylecheck/internal/diagfmt"
	"stylecheck/internal/driver"
	"stylecheck/internal/observ"
	"stylecheck/internal/trace"
	"stylecheck/internal/ui"
	"stylecheck/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Check Python files for style problems",
	Long: `Check reports style findings for every file given on the command line and
every *.py file under the given directories (default: current directory).`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "short", "output format (short|pretty|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0 = number of CPUs)")
	checkCmd.Flags().String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	checkCmd.Flags().StringSlice("exclude", nil, "gitignore-style patterns to skip (repeatable)")
	checkCmd.Flags().Bool("no-gitignore", false, "do not read .gitignore files")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	checkCmd.Flags().String("progress", "off", "show progress UI on stderr (auto|on|off)")
}

// checkSettings: итог слияния stylecheck.toml и флагов.
type checkSettings struct {
	format           string
	color            colorMode
	jobs             int
	maxDiagnostics   int
	exclude          []string
	respectGitignore bool
	cache            bool
	pathMode         diagfmt.PathMode
	baseDir          string
	progress         colorMode
	timings          bool
}

func resolveCheckSettings(cmd *cobra.Command, args []string) (checkSettings, error) {
	root := cmd.Root().PersistentFlags()
	flags := cmd.Flags()

	cfg, baseDir, err := loadConfig(cmd, args)
	if err != nil {
		return checkSettings{}, err
	}
	c := cfg.Check

	// флаги, заданные явно, перекрывают файл
	if flags.Changed("format") {
		c.Format, _ = flags.GetString("format")
	}
	if flags.Changed("jobs") {
		c.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("path-mode") {
		c.PathMode, _ = flags.GetString("path-mode")
	}
	if flags.Changed("exclude") {
		extra, _ := flags.GetStringSlice("exclude")
		c.Exclude = append(c.Exclude, extra...)
	}
	if flags.Changed("no-gitignore") {
		off, _ := flags.GetBool("no-gitignore")
		c.RespectGitignore = !off
	}
	if flags.Changed("no-cache") {
		off, _ := flags.GetBool("no-cache")
		c.Cache = !off
	}
	if root.Changed("max-diagnostics") {
		c.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if root.Changed("color") {
		c.Color, _ = root.GetString("color")
	}
	if err := (config.Config{Check: c}).Validate(); err != nil {
		return checkSettings{}, err
	}

	s := checkSettings{
		format:           c.Format,
		jobs:             c.Jobs,
		maxDiagnostics:   c.MaxDiagnostics,
		exclude:          c.Exclude,
		respectGitignore: c.RespectGitignore,
		cache:            c.Cache,
		baseDir:          baseDir,
	}
	if s.color, err = readColorMode(c.Color); err != nil {
		return checkSettings{}, err
	}
	pm, ok := diagfmt.ParsePathMode(c.PathMode)
	if !ok {
		return checkSettings{}, fmt.Errorf("invalid path mode %q", c.PathMode)
	}
	s.pathMode = pm
	progress, _ := flags.GetString("progress")
	if s.progress, err = readColorMode(progress); err != nil {
		return checkSettings{}, fmt.Errorf("invalid --progress value %q (expected auto|on|off)", progress)
	}
	s.timings, _ = root.GetBool("timings")
	return s, nil
}

// loadConfig читает --config или ищет stylecheck.toml от первого аргумента вверх.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, string, error) {
	explicit, _ := cmd.Root().PersistentFlags().GetString("config")
	if explicit != "" {
		cfg, err := config.LoadFile(explicit)
		return cfg, filepath.Dir(explicit), err
	}
	start := "."
	if len(args) > 0 {
		start = args[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		} else if err != nil {
			start = "."
		}
	}
	m, ok, err := config.Load(start)
	if err != nil {
		return config.Config{}, "", err
	}
	if !ok {
		return m.Config, ".", nil
	}
	return m.Config, m.Root, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	s, err := resolveCheckSettings(cmd, args)
	if err != nil {
		return err
	}
	// цвет из конфигурации, если --color не задан явно
	setColorMode(s.color)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := driver.Options{
		Jobs:           s.jobs,
		MaxDiagnostics: s.maxDiagnostics,
		Discover: driver.DiscoverOptions{
			Exclude:          s.exclude,
			RespectGitignore: s.respectGitignore,
		},
		ToolVersion: version.Version,
	}
	if s.cache {
		cache, err := driver.OpenDiskCache("stylecheck")
		if err != nil {
			// без кеша проверка всё равно возможна
			trace.Error(ctx, "cache-open", err)
		} else {
			opts.Cache = cache
		}
	}

	var res *driver.Result
	if useColor(s.progress, os.Stderr) {
		res, err = checkWithUI(ctx, args, opts)
	} else {
		res, err = driver.CheckPaths(ctx, args, opts)
	}
	if err != nil {
		return err
	}

	if err := renderCheck(cmd, res, s, args); err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), res.Timing)
	}
	return exitWith(cmd, res.ExitCode())
}

func checkWithUI(ctx context.Context, args []string, opts driver.Options) (*driver.Result, error) {
	type outcome struct {
		res *driver.Result
		err error
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckPaths(ctx, args, opts)
		outcomeCh <- outcome{res: res, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(os.Stderr, "stylecheck", nil, events)
	// если UI упал, дочитываем события, чтобы driver не заблокировался
	for range events {
	}
	out := <-outcomeCh
	if uiErr != nil && out.err == nil {
		trace.Error(ctx, "progress-ui", uiErr)
	}
	return out.res, out.err
}

func renderCheck(cmd *cobra.Command, res *driver.Result, s checkSettings, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	diags := res.Diagnostics()
	failures := toFailures(res.Failures())

	switch s.format {
	case "short":
		opts := diagfmt.ShortOpts{PathMode: s.pathMode, BaseDir: s.baseDir}
		if err := diagfmt.Short(out, diags, opts); err != nil {
			return err
		}
		if err := diagfmt.ShortFailures(errOut, failures, opts); err != nil {
			return err
		}
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:      !colorDisabled(),
			PathMode:   s.pathMode,
			BaseDir:    s.baseDir,
			Width:      terminalWidth(os.Stdout),
			ShowSource: true,
		}
		if err := diagfmt.Pretty(out, diags, res.FileSet, opts); err != nil {
			return err
		}
		if err := diagfmt.PrettyFailures(errOut, failures, opts); err != nil {
			return err
		}
	case "json":
		opts := diagfmt.JSONOpts{
			PathMode:        s.pathMode,
			BaseDir:         s.baseDir,
			IncludeArgs:     true,
			IncludeLocation: true,
		}
		return diagfmt.JSON(out, diags, failures, res.FileSet, opts)
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "stylecheck",
			ToolVersion:    version.Version,
			InvocationArgs: args,
			PathMode:       s.pathMode,
			BaseDir:        s.baseDir,
		}
		return diagfmt.Sarif(out, diags, failures, meta)
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}

	if dropped := res.Dropped(); dropped > 0 {
		fmt.Fprintf(errOut, "%d more diagnostics not shown (--max-diagnostics=%d)\n", dropped, s.maxDiagnostics)
	}
	return nil
}

func toFailures(errs []*driver.InputError) []diagfmt.Failure {
	out := make([]diagfmt.Failure, len(errs))
	for i, e := range errs {
		out[i] = diagfmt.Failure{
			Path:    e.Path,
			Kind:    e.Kind.String(),
			Line:    e.Line(),
			Message: e.Message(),
		}
	}
	return out
}

// terminalWidth: ширина строки исходника в pretty; 0, если не терминал.
func terminalWidth(f *os.File) uint8 {
	if !isTerminal(f) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 8 {
		return 0
	}
	return uint8(min(w-8, 255))
}

func printTimings(out io.Writer, report observ.Report) {
	fmt.Fprintln(out, "timings:")
	for _, p := range report.Phases {
		line := fmt.Sprintf("  %-10s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "  %-10s %8.2f ms\n", "total", report.TotalMS)
	if len(report.Stages) == 0 {
		return
	}
	fmt.Fprintln(out, "per file:")
	for _, st := range report.Stages {
		fmt.Fprintf(out, "  %-10s %8.2f ms  max %.2f ms  (%d files)\n", st.Name, st.TotalMS, st.MaxMS, st.Files)
	}
}

// exitWith returns nil for exit code 0, otherwise a silent exitError.
func exitWith(cmd *cobra.Command, code int) error {
	if code == 0 {
		return nil
	}
	cmd.SilenceErrors = true
	cmd.Root().SilenceErrors = true
	return &exitError{code: code}
}
