// Command parsec is a small runnable demonstration of the parsec library,
// built the way CWBudde-go-dws/cmd/dwscript and hemanta212-scaf/cmd/scaf-lsp
// build their command binaries: cobra for subcommands, zap for structured
// logging, and colorized, TTY-aware diagnostics on top of the library's
// plain (output, []Error) result.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bashepherdson/parsec"
	"github.com/bashepherdson/parsec/internal/demo"
)

var (
	debugFlag  bool
	traceFlag  bool
	configFlag string
)

// demoConfig is the optional YAML file the CLI loads via --config,
// exercising go-yaml per SPEC_FULL.md §A.3. runDemo only reads and parses
// it: the grammar always comes from the command line, and RecoveryEnabled
// does not switch recovery on or off.
type demoConfig struct {
	Grammar         string `yaml:"grammar"`
	RecoveryEnabled bool   `yaml:"recovery_enabled"`
}

func main() {
	root := &cobra.Command{
		Use:   "parsec",
		Short: "Run the parsec demo grammars against an input file",
	}
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&traceFlag, "trace", false, "enable debug logging (same level as --debug)")
	root.PersistentFlags().StringVar(&configFlag, "config", "", "optional YAML demo config (read and parsed; its settings are not applied)")

	root.AddCommand(
		newRunCmd(),
		newCheckCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <grammar> <file>",
		Short: "Parse file with grammar and print the output and any errors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(args[0], args[1], false)
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <grammar> <file>",
		Short: "Check file against grammar without materializing output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(args[0], args[1], true)
		},
	}
}

func buildLogger() *zap.Logger {
	level := zapcore.InfoLevel
	if traceFlag || debugFlag {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}

func loadConfig(path string) (demoConfig, error) {
	var cfg demoConfig
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func runDemo(grammar, file string, checkOnly bool) error {
	log := buildLogger()
	defer log.Sync() //nolint:errcheck

	if _, err := loadConfig(configFlag); err != nil {
		log.Warn("ignoring unreadable config", zap.Error(err))
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	input := parsec.NewStringInput(string(raw))
	factory := parsec.NewRichFactory[rune](func(r rune) string { return fmt.Sprintf("%q", r) })

	useColor := isatty.IsTerminal(os.Stdout.Fd())
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	if !useColor {
		red = fmt.Sprint
		yellow = fmt.Sprint
	}

	switch grammar {
	case "digits":
		sess := parsec.NewSession(demo.DigitList(), factory, parsec.WithLogger[rune, demo.St, parsec.RichError, []int](log))
		return report(sess, input, checkOnly, red, yellow)
	case "expr":
		sess := parsec.NewSession(demo.Expr(), factory, parsec.WithLogger[rune, demo.St, parsec.RichError, string](log))
		return report(sess, input, checkOnly, red, yellow)
	case "brackets":
		sess := parsec.NewSession(demo.BracketRecoveryList(), factory, parsec.WithLogger[rune, demo.St, parsec.RichError, []demo.ListResult](log))
		return report(sess, input, checkOnly, red, yellow)
	default:
		return fmt.Errorf("unknown grammar %q (want digits, expr, or brackets)", grammar)
	}
}

func report[O any](sess *parsec.ParseSession[rune, demo.St, parsec.RichError, O], input *parsec.StringInput, checkOnly bool, red, yellow func(...any) string) error {
	var errs []parsec.RichError
	var out O
	var ok bool
	if checkOnly {
		errs, ok = sess.Check(input)
	} else {
		out, errs, ok = sess.Parse(input)
	}

	for i, e := range errs {
		paint := yellow
		if i == 0 && !ok {
			paint = red
		}
		fmt.Fprintln(os.Stderr, paint(e.Error()))
	}
	if !ok {
		return parsec.JoinErrors(errs)
	}
	if !checkOnly {
		fmt.Printf("%+v\n", out)
	}
	return nil
}
