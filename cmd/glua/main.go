package main

// This is an interpreter for a Lua-like scripting language written in Go.

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ltungv/glua/internal/lua"
	"github.com/ltungv/glua/internal/stdlib"
)

// exitStatus is returned by commands that must end the process with a
// specific status.
type exitStatus int

func (s exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(s))
}

// app holds what every subcommand shares once flags and config are read.
type app struct {
	cfg    Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		var status exitStatus
		if errors.As(err, &status) {
			os.Exit(int(status))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		debug      bool
	)
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "glua",
		Short:         "Run scripts written in a small Lua-like language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Debug = cfg.Debug || debug
			a.cfg = cfg
			a.logger = newLogger(stderr, cfg.Debug)
			a.logger.Debug("config loaded", "path", configPath, "check", cfg.Check, "max_call_depth", cfg.MaxCallDepth)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	root.AddCommand(
		a.runCommand(),
		a.replCommand(),
		a.tokensCommand(),
		a.astCommand(),
		a.checkCommand(),
	)
	return root
}

// usageArgs requires exactly n arguments, failing with the usage status.
func usageArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s\n", cmd.UseLine())
			return exitStatus(64)
		}
		return nil
	}
}

func (a *app) runCommand() *cobra.Command {
	var watch, check bool
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a script",
		Args:  usageArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check = check || a.cfg.Check
			if watch {
				return a.watchFile(cmd.Context(), args[0], check)
			}
			return a.runFile(args[0], check)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Run the script again whenever it changes")
	cmd.Flags().BoolVar(&check, "check", false, "Analyze the script before running it")
	return cmd
}

func (a *app) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a script",
		Args:  usageArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tokens, err := lua.NewScanner(string(script)).Scan()
			if err != nil {
				fmt.Fprintln(a.stderr, err)
				return exitStatus(65)
			}
			for _, tok := range tokens {
				fmt.Fprintf(a.stdout, "%4d %s\n", tok.Line, tok)
			}
			return nil
		},
	}
}

func (a *app) astCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a script",
		Args:  usageArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			block, err := lua.Parse(string(script))
			if err != nil {
				fmt.Fprintln(a.stderr, err)
				return exitStatus(65)
			}
			printer := new(lua.AstPrinter)
			fmt.Fprintln(a.stdout, printer.Print(block))
			return nil
		},
	}
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Analyze a script without running it",
		Args:  usageArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			reporter := lua.NewSimpleReporter(a.stderr)
			block, err := lua.Parse(string(script))
			if err != nil {
				reporter.Report(err)
				return exitStatus(65)
			}
			resolver := lua.NewResolver(reporter)
			resolver.Resolve(block)
			a.warnUnresolved(resolver, stdlib.New(a.stdout).Names())
			if reporter.HadError() {
				return exitStatus(65)
			}
			return nil
		},
	}
}

// warnUnresolved prints a warning for every global that is read but never
// assigned and is not a builtin.
func (a *app) warnUnresolved(resolver *lua.Resolver, builtins []string) {
	candidates := append(resolver.Assigned(), builtins...)
	for _, name := range resolver.Unresolved(builtins...) {
		msg := fmt.Sprintf("[line %d] Warning: global '%s' is never assigned", resolver.ReadLine(name), name)
		if match := lua.ClosestMatch(name, candidates); match != "" && match != name {
			msg += fmt.Sprintf(" (did you mean '%s'?)", match)
		}
		fmt.Fprintln(a.stderr, msg)
	}
}

func (a *app) newInterpreter() *lua.Interpreter {
	return lua.NewInterpreter(
		stdlib.New(a.stdout),
		lua.WithLogger(a.logger),
		lua.WithMaxCallDepth(a.cfg.MaxCallDepth),
	)
}

// run parses, optionally analyzes, and then runs the script. Errors go to
// the reporter.
func (a *app) run(script string, interpreter *lua.Interpreter, reporter lua.Reporter, check bool) []lua.Value {
	block, err := lua.Parse(script)
	if err != nil {
		reporter.Report(err)
		return nil
	}
	a.logger.Debug("parsed", "statements", len(block.Stmts))
	if check {
		resolver := lua.NewResolver(reporter)
		resolver.Resolve(block)
		if reporter.HadError() {
			return nil
		}
	}
	values, err := interpreter.Interpret(block)
	if err != nil {
		reporter.Report(err)
		return nil
	}
	return values
}

// Run the given file as script
func (a *app) runFile(fpath string, check bool) error {
	bytes, err := os.ReadFile(fpath)
	if err != nil {
		return err
	}
	reporter := lua.NewSimpleReporter(a.stderr)
	a.run(string(bytes), a.newInterpreter(), reporter, check)
	if reporter.HadError() {
		return exitStatus(65)
	}
	if reporter.HadRuntimeError() {
		return exitStatus(70)
	}
	return nil
}

func formatValues(values []lua.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = lua.ToString(v)
	}
	return strings.Join(parts, "\t")
}
