package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lambdafu/grakopp/astio"
)

var astifyCmd = &cobra.Command{
	Use:   "astify",
	Short: "Read a serialized Ast from stdin and write it formatted to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := astio.Read(os.Stdin)
		if err != nil {
			return fail(err)
		}
		if err := astio.Write(os.Stdout, node); err != nil {
			return fail(err)
		}
		fmt.Println()
		return nil
	},
}
