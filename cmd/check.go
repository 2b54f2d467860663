package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cottand/systemf/frontend"
	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/ilerr"
	"github.com/cottand/systemf/frontend/types"
	"github.com/cottand/systemf/internal/log"
	"github.com/cottand/systemf/parser"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var logger = log.DefaultLogger.With("section", "cli")

var CheckCmd = &cobra.Command{
	Use:   "check [expression]",
	Short: "Infer the type of an expression",
	Long: `Infer the type of an expression, given either as the argument or read from --file.

Examples:
  systemf check '(λx: Int. x) 1'
  systemf check '(ΛX: *. λx: X. x) [Int]'
  systemf check --stlc -f program.stlc`,
	RunE:         runCheck,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var (
	checkFile     *string
	checkSTLC     *bool
	checkDump     *bool
	checkStacks   *bool
	checkLogLevel *int
)

func init() {
	checkFile = CheckCmd.Flags().StringP("file", "f", "", "read the expression from a file, or stdin with '-'")
	checkSTLC = CheckCmd.Flags().Bool("stlc", false, "only accept the simply-typed lambda calculus")
	checkDump = CheckCmd.Flags().Bool("dump", false, "dump the parsed term before checking it")
	checkStacks = CheckCmd.Flags().Bool("stacks", false, "print where errors were raised in the checker")
	checkLogLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

func calculusOf(stlc bool) ast.Calculus {
	if stlc {
		return ast.STLC
	}
	return ast.SystemF
}

func readSource(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file == "" && len(args) == 1:
		return args[0], nil
	case file == "":
		return "", errors.New("expected an expression argument or --file")
	case len(args) == 1:
		return "", errors.New("cannot check both an expression argument and --file")
	case file == "-":
		source, err := io.ReadAll(cmd.InOrStdin())
		return string(source), errors.Wrap(err, "could not read stdin")
	default:
		source, err := os.ReadFile(file)
		return string(source), errors.Wrapf(err, "could not read %s", file)
	}
}

// formatErrors renders errs against the source they were found in
func formatErrors(errs *ilerr.Errors, source string) string {
	sb := &strings.Builder{}
	for _, ileError := range errs.Errors() {
		sb.WriteString("\n")
		sb.WriteString(ilerr.FormatWithCodeAndSource(ileError, source))
	}
	return sb.String()
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLogLevel))
	ilerr.PrintStacks = *checkStacks

	source, err := readSource(cmd, args, *checkFile)
	if err != nil {
		return err
	}

	term, errs, err := parser.ParseTerm(source, parser.WithCalculus(calculusOf(*checkSTLC)))
	if err != nil {
		return fmt.Errorf("could not parse expression (this is a bug and not a syntax error): %w", err)
	}
	if errs.HasError() {
		return fmt.Errorf("syntax errors found:%s", formatErrors(errs, source))
	}
	logger.Debug("parsed expression", "term", term, "calculus", calculusOf(*checkSTLC).String())
	if *checkDump {
		spew.Fdump(cmd.OutOrStdout(), term)
	}

	result, errs, err := frontend.CheckTerm(types.NewContext(), term)
	if err != nil {
		return fmt.Errorf("could not check expression (this is a bug and not a type error): %w", err)
	}
	if errs.HasError() {
		return fmt.Errorf("errors found while checking:%s", formatErrors(errs, source))
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s : %s\n", ast.TermString(result.Term), ast.TypeString(result.Type))
	return err
}
