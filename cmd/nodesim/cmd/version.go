package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the nodesim CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "nodesim version %s\n", version)
		fmt.Fprintln(out, "Insurance node and futures capital projection")
		fmt.Fprintln(out, "https://github.com/rustyeddy/nodesim")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
