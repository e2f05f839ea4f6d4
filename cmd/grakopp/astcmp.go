package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lambdafu/grakopp/ast"
	"github.com/lambdafu/grakopp/astio"
)

var astcmpCmd = &cobra.Command{
	Use:   "astcmp FILE1 FILE2",
	Short: "Compare two serialized Asts structurally; exit 0 iff equal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		first, err := readFile(args[0])
		if err != nil {
			return fail(err)
		}
		second, err := readFile(args[1])
		if err != nil {
			return fail(err)
		}
		if !first.Equal(second) {
			return fmt.Errorf("trees differ")
		}
		return nil
	},
}

func readFile(path string) (*ast.Ast, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return astio.Read(f)
}
