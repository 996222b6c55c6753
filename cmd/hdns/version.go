package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haukened/hdns"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("hdns %s\n", hdns.Version)
	return nil
}
