package cmd

import (
	"fmt"
	"strings"

	"github.com/cottand/systemf/frontend/ast"
	"github.com/cottand/systemf/frontend/types"
	"github.com/cottand/systemf/parser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var SubstCmd = &cobra.Command{
	Use:   "subst VAR TYPE REPLACEMENT",
	Short: "Substitute a type for a type variable",
	Long: `Print TYPE with every free occurrence of VAR replaced by REPLACEMENT.

The substitution is not capture-avoiding, and a warning is printed whenever
a binder in TYPE captures a free variable of REPLACEMENT.

Examples:
  systemf subst X 'X -> X' Int
  systemf subst X '∀Y: *. X -> Y' Y`,
	RunE:         runSubst,
	Args:         cobra.ExactArgs(3),
	SilenceUsage: true,
}

func parseTypeArg(what, source string) (ast.Type, error) {
	t, errs, err := parser.ParseType(source)
	if err != nil {
		return nil, err
	}
	if errs.HasError() {
		return nil, errors.Errorf("could not parse %s:%s", what, formatErrors(errs, source))
	}
	return t, nil
}

func runSubst(cmd *cobra.Command, args []string) error {
	typeVar := strings.TrimSpace(args[0])
	if v, err := parseTypeArg("type variable", typeVar); err != nil {
		return err
	} else if _, ok := v.(*ast.TypeVar); !ok {
		return errors.Errorf("'%s' is not a type variable", typeVar)
	}
	target, err := parseTypeArg("type", args[1])
	if err != nil {
		return err
	}
	replacement, err := parseTypeArg("replacement", args[2])
	if err != nil {
		return err
	}

	for _, captured := range types.Captures(typeVar, target, replacement) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: free type variable %s of the replacement is captured\n", captured)
	}
	if types.Shadows(typeVar, target) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is rebound inside the type, occurrences under that binder are replaced too\n", typeVar)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), ast.TypeString(types.Substitute(typeVar, target, replacement)))
	return err
}
