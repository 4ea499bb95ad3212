package commands

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/config"
	"github.com/simonhull/firebird-suite/plume/internal/content"
	"github.com/simonhull/firebird-suite/plume/internal/delivery"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/output"
	"github.com/simonhull/firebird-suite/plume/internal/portfolio"
)

// generateOptions is everything `plume generate` needs after flags and
// config have been resolved
type generateOptions struct {
	Profile   string
	OutDir    string
	Seed      *uint64
	Extract   bool
	Force     bool
	DryRun    bool
	Templates string
	Resume    string
	Writer    io.Writer // operation log
}

// GenerateCmd creates and returns the 'generate' command
func GenerateCmd() *cobra.Command {
	var dryRun bool
	var resume string

	cmd := &cobra.Command{
		Use:   "generate <profile.yml>",
		Short: "Generate a portfolio project from a profile",
		Long: `Generate a React + Vite portfolio project from a YAML or JSON profile.

The profile is validated first; nothing is written if it is incomplete.
By default the project is saved as <name>-portfolio.zip in the output
directory. With --extract the project tree is written instead, all files
or none.

Skill levels are randomized on every run. Pass --seed to make the output
byte-for-byte reproducible.

Examples:
  plume generate profile.yml
  plume generate profile.yml --out dist --seed 42
  plume generate profile.yml --extract --force
  plume generate profile.yml --templates ./my-templates --dry-run`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(cmd, map[string]string{
				config.KeyOutputDir: "out",
				config.KeySeed:      "seed",
				config.KeyExtract:   "extract",
				config.KeyForce:     "force",
				config.KeyTemplates: "templates",
			})
			if err != nil {
				exitWithError(err)
			}

			opts := generateOptions{
				Profile:   args[0],
				OutDir:    cfg.Output.Dir,
				Seed:      cfg.Generate.Seed,
				Extract:   cfg.Output.Extract,
				Force:     cfg.Output.Force,
				DryRun:    dryRun,
				Templates: cfg.Generate.Templates,
				Resume:    resume,
				Writer:    cmd.OutOrStdout(),
			}

			res, err := runGenerate(cmd.Context(), opts)
			if err != nil {
				exitWithError(err)
			}
			printSummary(opts, res)
		},
	}

	cmd.Flags().StringP("out", "o", ".", "Output directory")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible skill levels")
	cmd.Flags().Bool("extract", false, "Write the project tree instead of a zip")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")
	cmd.Flags().String("templates", "", "Directory of template overrides")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().StringVar(&resume, "resume", "", "Résumé file to attach (kept out of the archive)")

	return cmd
}

// runGenerate loads, validates and generates one profile
func runGenerate(ctx context.Context, opts generateOptions) (*portfolio.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	rec, err := content.Load(opts.Profile)
	if err != nil {
		return nil, err
	}
	if err := content.Validate(rec); err != nil {
		return nil, err
	}
	output.Verbose("Profile " + opts.Profile + " is valid")

	if opts.Resume != "" {
		if rec.Resume, err = loadAttachment(opts.Resume); err != nil {
			return nil, err
		}
	}

	lib, err := loadTemplates(opts.Templates)
	if err != nil {
		return nil, err
	}

	genOpts := []portfolio.Option{
		portfolio.WithTemplates(lib),
		portfolio.WithLogger(logger.Default()),
	}
	if opts.Seed != nil {
		genOpts = append(genOpts, portfolio.WithSeed(*opts.Seed))
		output.Verbose(fmt.Sprintf("Using seed %d", *opts.Seed))
	}
	gen := portfolio.New(genOpts...)

	var d delivery.Deliverer
	if opts.Extract {
		d = &delivery.ExtractDeliverer{Dir: opts.OutDir, Force: opts.Force, DryRun: opts.DryRun, Writer: opts.Writer}
	} else {
		d = &delivery.FileDeliverer{Dir: opts.OutDir, Force: opts.Force, DryRun: opts.DryRun, Writer: opts.Writer}
	}

	var res *portfolio.Result
	err = output.Spin("Generating portfolio", func() error {
		var err error
		res, err = gen.Deliver(ctx, rec, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// loadAttachment reads a résumé from disk
func loadAttachment(path string) (*content.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé: %w", err)
	}
	return &content.Attachment{
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}

func printSummary(opts generateOptions, res *portfolio.Result) {
	if opts.DryRun {
		output.Info(fmt.Sprintf("Dry run: %d files would be generated", res.Files.Len()))
		return
	}

	projectDir := strings.TrimSuffix(res.Filename, delivery.Extension)
	if opts.Extract {
		output.Success("Generated " + filepath.Join(opts.OutDir, projectDir))
	} else {
		output.Success("Generated " + filepath.Join(opts.OutDir, res.Filename))
	}
	output.Field("Files", strconv.Itoa(res.Files.Len()))
	output.Field("Size", fmt.Sprintf("%d bytes", res.Archive.Size()))
	if res.Resume != nil {
		output.Field("Résumé", res.Resume.FileName+" (not included in the project)")
	}

	output.Info("Next steps:")
	if opts.Extract {
		output.Step("cd " + filepath.Join(opts.OutDir, projectDir))
	} else {
		output.Step("unzip " + filepath.Join(opts.OutDir, res.Filename) + " -d " + projectDir)
		output.Step("cd " + projectDir)
	}
	output.Step("npm install")
	output.Step("npm run dev")
}
