// Package main implements the crisp command-line interface: a cobra
// command tree offering a colorized, line-edited REPL, one-shot
// expression evaluation, and file evaluation, all three thin shells
// over the crisp package's ParseAndEval.
package main

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conneroisu/crisp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crisp",
		Short: "crisp is a minimal Lisp-family interpreter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
	root.AddCommand(newReplCmd(), newEvalCmd(), newRunCmd())
	return root
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR",
		Short: "evaluate a single expression given on the command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalAndPrint(args[0], crisp.NewContext())
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "evaluate every expression in a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return evalAndPrint(string(content), crisp.NewContext())
		},
	}
}

// evalAndPrint parses and evaluates text, printing each resulting
// value on its own line and reporting parse/eval errors to stderr.
func evalAndPrint(text string, ctx *crisp.Context) error {
	values, err := crisp.ParseAndEval(text, ctx)
	for _, v := range values {
		fmt.Println(v.String())
	}
	if err != nil {
		return err
	}
	return nil
}

// runRepl starts the colorized, line-edited interactive loop: read a
// line, call ParseAndEval, print each value or the error, repeat until
// EOF or interrupt.
func runRepl() error {
	logCloser := setupLogging()
	defer logCloser()

	rl, err := readline.New("crisp> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	errColor := color.New(color.FgRed)
	valColor := color.New(color.FgGreen)

	ctx := crisp.NewContext()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		log.Printf("input: %s", line)
		values, evalErr := crisp.ParseAndEval(line, ctx)
		for _, v := range values {
			valColor.Println(v.String())
		}
		if evalErr != nil {
			log.Printf("error: %v", evalErr)
			errColor.Fprintf(os.Stderr, "Error occurred: %v\n", evalErr)
		}
	}
}

// setupLogging directs the standard logger to a session log file
// under the user's home directory: a header with the session start
// time and the Go version, then one line per REPL input/error. Library packages never
// log; only this binary does.
func setupLogging() func() {
	usr, err := user.Current()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	dir := filepath.Join(usr.HomeDir, ".crisp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	logfile, err := os.OpenFile(filepath.Join(dir, "messages.log"), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	log.SetOutput(logfile)

	header := strings.Repeat("-", 79)
	log.Println(header)
	log.Printf("Log Session: %s", time.Now().Format(time.ANSIC))
	log.Printf("Go Version = %s", runtime.Version())
	log.Println(header)

	return func() { logfile.Close() }
}
