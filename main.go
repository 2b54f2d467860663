package main

import (
	"os"

	"github.com/cottand/systemf/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "systemf [subcommand]",
	Short: "systemf λ\n a type checker for System F and the simply-typed lambda calculus",
	Args:  cobra.MinimumNArgs(1),
	//SilenceErrors: true,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ReplCmd)
	rootCmd.AddCommand(cmd.SubstCmd)
}
