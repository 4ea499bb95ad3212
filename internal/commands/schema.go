package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/content"
)

// SchemaCmd creates and returns the 'schema' command
func SchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for profile files",
		Long: `Print the JSON Schema that profile files follow. Point your editor's
YAML or JSON language server at it for completion and inline errors.

Examples:
  plume schema > profile.schema.json`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.OutOrStdout().Write(content.Schema())
		},
	}
}
