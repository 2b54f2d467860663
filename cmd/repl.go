package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cottand/systemf/frontend"
	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/types"
	"github.com/cottand/systemf/internal/log"
	"github.com/cottand/systemf/parser"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".systemf_history"
	promptMain  = "λ> "
	promptCont  = ".. "
)

const replHelp = `REPL commands:
  :let x = term   check term and bind x to its type for the rest of the session
  :type T         parse and print a type
  :ctx            list the bindings of the session
  :stlc           only accept the simply-typed lambda calculus
  :systemf        accept System F (the default)
  :help           show this message
  :quit           exit the REPL
Anything else is checked as a term.`

var ReplCmd = &cobra.Command{
	Use:          "repl",
	Short:        "Check terms interactively",
	RunE:         runRepl,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

var (
	replSTLC     *bool
	replLogLevel *int
)

func init() {
	replSTLC = ReplCmd.Flags().Bool("stlc", false, "start in the simply-typed lambda calculus")
	replLogLevel = ReplCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

var errQuit = errors.New("quit")

// session is the state of a REPL: the bindings made with :let so far
type session struct {
	ctx      types.Context
	calculus ast.Calculus
}

func newSession(calculus ast.Calculus) *session {
	return &session{ctx: types.NewContext(), calculus: calculus}
}

// eval runs one REPL input and returns what to print. Errors are user errors,
// to be printed before carrying on, except for errQuit.
func (s *session) eval(input string) (string, error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, ":") {
		return s.check(input)
	}

	command, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	switch command {
	case ":quit", ":q":
		return "", errQuit
	case ":help", ":h":
		return replHelp, nil
	case ":ctx":
		if s.ctx.Len() == 0 {
			return "(empty)", nil
		}
		return strings.Join(lo.Map(s.ctx.Visible(), func(b types.Binding, _ int) string {
			return b.Name + " : " + ast.TypeString(b.Type)
		}), "\n"), nil
	case ":stlc":
		s.calculus = ast.STLC
		return "now checking the " + s.calculus.String(), nil
	case ":systemf":
		s.calculus = ast.SystemF
		return "now checking " + s.calculus.String(), nil
	case ":type":
		t, errs, err := parser.ParseType(rest, parser.WithCalculus(s.calculus))
		if err != nil {
			return "", err
		}
		if errs.HasError() {
			return "", errors.New(strings.TrimPrefix(formatErrors(errs, rest), "\n"))
		}
		return ast.TypeString(t), nil
	case ":let":
		return s.let(rest)
	default:
		return "", errors.Errorf("unknown command %s, type :help for a list", command)
	}
}

func (s *session) check(source string) (string, error) {
	result, errs, err := frontend.CheckIn(s.ctx, source, s.calculus)
	if err != nil {
		return "", err
	}
	if errs.HasError() {
		return "", errors.New(strings.TrimPrefix(formatErrors(errs, source), "\n"))
	}
	return ast.TypeString(result.Type), nil
}

func (s *session) let(definition string) (string, error) {
	name, source, found := strings.Cut(definition, "=")
	name, source = strings.TrimSpace(name), strings.TrimSpace(source)
	if !found || name == "" || source == "" {
		return "", errors.New("expected :let name = term")
	}
	// a name is valid exactly when it parses as a variable
	if v, errs, _ := parser.ParseTerm(name); errs.HasError() || !isVar(v) {
		return "", errors.Errorf("'%s' is not a valid variable name", name)
	}

	result, errs, err := frontend.CheckIn(s.ctx, source, s.calculus)
	if err != nil {
		return "", err
	}
	if errs.HasError() {
		return "", errors.New(strings.TrimPrefix(formatErrors(errs, source), "\n"))
	}
	s.ctx = s.ctx.Assign(name, result.Type)
	return name + " : " + ast.TypeString(result.Type), nil
}

func isVar(term ast.Term) bool {
	_, ok := term.(*ast.Var)
	return ok
}

func runRepl(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*replLogLevel))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		if _, err := ln.ReadHistory(f); err != nil {
			logger.Debug("could not read history", "path", histPath, "error", err)
		}
		_ = f.Close()
	}
	defer func() {
		f, err := os.Create(histPath)
		if err != nil {
			logger.Debug("could not save history", "path", histPath, "error", err)
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		_ = ln.Close()
		os.Exit(130)
	}()

	s := newSession(calculusOf(*replSTLC))
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "systemf REPL (%s)\nCtrl+D exits. Type :help for commands.\n", s.calculus)

	for {
		input, ok := readInput(ln)
		if !ok {
			_, _ = fmt.Fprintln(out)
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		printed, err := s.eval(input)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), red(err.Error()))
			continue
		}
		_, _ = fmt.Fprintln(out, green(printed))
	}
}

// readInput prompts until the input is a complete term or command.
// ok is false once the user is done with the REPL.
func readInput(ln *liner.State) (input string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops what was typed so far
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, errs, _ := parser.ParseTerm(src); parser.IsIncomplete(src, errs) {
			continue
		}
		return src, true
	}
}
