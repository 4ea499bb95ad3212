package main

import (
	"os"

	"github.com/simonhull/firebird-suite/plume/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.InitCmd())
	rootCmd.AddCommand(commands.GenerateCmd())
	rootCmd.AddCommand(commands.ServeCmd())
	rootCmd.AddCommand(commands.SchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
