package main

import (
	"os"

	"github.com/spf13/cobra"

	"iops/internal/interfaces/cli/migrate"
	"iops/internal/interfaces/cli/resetusage"
	"iops/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iops",
		Short: "iOps - data science copilot backend",
		Long:  `iOps is the data science copilot backend with built-in server, migration tools, and usage administration commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		resetusage.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
