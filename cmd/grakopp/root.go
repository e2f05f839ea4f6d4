package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:           "grakopp",
	Short:         "Tools for the grakopp Ast serialization format",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	rootCmd.AddCommand(astifyCmd)
	rootCmd.AddCommand(astcmpCmd)
}

func fail(err error) error {
	red := color.New(color.FgRed).SprintfFunc()
	fmt.Fprintf(os.Stderr, "%s\n", red("error: %s", err.Error()))
	return err
}
