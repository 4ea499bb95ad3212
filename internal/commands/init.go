package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/content"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/input"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

// DefaultProfile is the file `plume init` writes when no path is given
const DefaultProfile = "profile.yml"

// InitCmd creates and returns the 'init' command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [profile.yml]",
		Short: "Create a profile interactively",
		Long: `Ask for your details and write them to a profile file that
'plume generate' can use. Blank optional answers are left out.

Examples:
  plume init
  plume init ada.yml
  plume init --force`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := DefaultProfile
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := loadConfig(cmd, nil); err != nil {
				exitWithError(err)
			}

			p := input.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if err := runInit(cmd.Context(), p, path, force, cmd.OutOrStdout()); err != nil {
				exitWithError(err)
			}

			output.Success("Profile saved to " + path)
			output.Info("Next steps:")
			output.Step("plume generate " + path)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing profile")

	return cmd
}

// runInit runs the wizard and writes the validated profile to path
func runInit(ctx context.Context, p *input.Prompter, path string, force bool, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Fail before asking anything if the file cannot be written
	probe := &generator.WriteFileOp{Path: path, Content: []byte{}, Mode: 0644}
	if err := probe.Validate(ctx, force); err != nil {
		return err
	}

	rec, err := input.Wizard(p)
	if err != nil {
		return err
	}
	if err := content.Validate(rec); err != nil {
		return err
	}

	data, err := content.Marshal(rec)
	if err != nil {
		return err
	}

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: data, Mode: 0644},
	}
	return generator.Execute(ctx, ops, generator.ExecuteOptions{Force: force, Writer: w})
}
