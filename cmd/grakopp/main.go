// Command grakopp bundles the tools for the Ast serialization format:
// astify reformats a serialized tree from standard input, and astcmp
// compares two serialized trees structurally.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
