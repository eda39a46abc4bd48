package main

import (
	"fmt"
	"os"

	"github.com/farmsight/farmsight-api/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "farmsight-configure",
		Short: "Configuration tool for the FarmSight API",
		Long:  "CLI tool for inspecting and dry-running the origin authorization policy",
	}

	rootCmd.AddCommand(commands.NewPolicyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
