package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

// RootCmd creates and returns the root command for the Plume CLI
func RootCmd() *cobra.Command {
	var (
		verbose bool
		cfgFile string
	)

	cmd := &cobra.Command{
		Use:   "plume",
		Short: "Generate a personal portfolio site from a profile",
		Long: `Plume turns a short profile (name, contact details, projects, skills)
into a complete React + Vite portfolio project, packed as a zip archive.

• Describe yourself once in profile.yml (or run 'plume init')
• Generate the project with 'plume generate profile.yml'
• Or run 'plume serve' and POST profiles over HTTP

Learn more: https://github.com/simonhull/firebird-suite`,
		Version: plume.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./plume.yml or ~/.config/plume/plume.yml)")

	return cmd
}
