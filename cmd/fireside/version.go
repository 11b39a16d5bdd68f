package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiberius-s/fireside"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fireside",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fireside version %s\n", fireside.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
