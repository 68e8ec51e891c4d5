package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ltungv/glua/internal/lua"
)

const promptCont = ">> "

func (a *app) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive prompt",
		Args:  usageArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrompt()
		},
	}
}

// Run the interpreter in REPL mode
func (a *app) runPrompt() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(a.cfg.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(a.cfg.HistoryFile); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			a.logger.Warn("could not save history", "path", a.cfg.HistoryFile, "err", err)
		}
	}()

	interpreter := a.newInterpreter()
	ln.SetCompleter(completeGlobals(interpreter))
	reporter := lua.NewSimpleReporter(a.stderr)
	for {
		code, ok := readChunk(ln, a.cfg.Prompt, promptCont)
		if !ok {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if values := a.eval(code, interpreter, reporter); len(values) > 0 {
			fmt.Fprintln(a.stdout, formatValues(values))
		}
		reporter.Reset()
	}
}

// eval runs a line of input. Input that is an expression list is evaluated
// and its values are returned for echoing.
func (a *app) eval(code string, interpreter *lua.Interpreter, reporter lua.Reporter) []lua.Value {
	if block, err := lua.Parse("return " + code); err == nil {
		values, err := interpreter.Interpret(block)
		if err != nil {
			reporter.Report(err)
			return nil
		}
		return values
	}
	return a.run(code, interpreter, reporter, a.cfg.Check)
}

// readChunk reads lines until they parse or fail to parse for a
// reason more input can not fix. It returns false at the end of input.
func readChunk(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Aborted with Ctrl-C, drop what was typed so far.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := lua.Parse(src); !lua.IsIncomplete(err) {
			return src, true
		}
		// A bare expression is incomplete as a statement.
		if _, err := lua.Parse("return " + src); err == nil {
			return src, true
		}
	}
}

// completeGlobals completes the name at the end of the line with the globals
// of the interpreter, including those defined during the session.
func completeGlobals(interpreter *lua.Interpreter) liner.Completer {
	return func(line string) []string {
		start := len(line)
		for start > 0 && isNameByte(line[start-1]) {
			start--
		}
		prefix := line[start:]
		if prefix == "" {
			return nil
		}
		var completions []string
		for _, name := range interpreter.Globals().Names() {
			if strings.HasPrefix(name, prefix) {
				completions = append(completions, line[:start]+name)
			}
		}
		sort.Strings(completions)
		return completions
	}
}

func isNameByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
