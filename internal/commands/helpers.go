package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/simonhull/firebird-suite/plume/internal/config"
	"github.com/simonhull/firebird-suite/plume/internal/content"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/output"
	"github.com/simonhull/firebird-suite/plume/internal/templates"
)

// loadConfig reads settings with the given config keys bound to the
// command's flags, then installs the default logger.
func loadConfig(cmd *cobra.Command, flags map[string]string) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")

	bindings := make(map[string]*pflag.Flag, len(flags))
	for key, name := range flags {
		bindings[key] = cmd.Flags().Lookup(name)
	}

	cfg, err := config.Load(config.LoadOptions{File: cfgFile, Flags: bindings})
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel()
	if output.IsVerbose() {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(logger.Options{Level: level, Format: cfg.Log.Format}))

	if cfg.File != "" {
		output.Verbose("Using config: " + cfg.File)
	}
	return cfg, nil
}

// loadTemplates returns the built-in library, with overrides from dir
// when one is given.
func loadTemplates(dir string) (*templates.Library, error) {
	if dir == "" {
		return templates.Default(), nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory: %s is not a directory", dir)
	}

	lib, err := templates.Default().Override(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates from %s: %w", dir, err)
	}
	output.Verbose("Using template overrides from " + dir)
	return lib, nil
}

// exitWithError reports err and exits. Validation problems are listed one
// per line.
func exitWithError(err error) {
	var invalid content.ValidationErrors
	if errors.As(err, &invalid) {
		output.Error(fmt.Sprintf("Profile has %d problem(s):", len(invalid)))
		for _, e := range invalid {
			output.Step(e.Error())
		}
	} else {
		output.Error(err.Error())
	}
	os.Exit(1)
}
