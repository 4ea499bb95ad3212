package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/config"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/output"
	"github.com/simonhull/firebird-suite/plume/internal/portfolio"
	"github.com/simonhull/firebird-suite/plume/internal/server"
)

// ServeCmd creates and returns the 'serve' command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve portfolio generation over HTTP",
		Long: `Start an HTTP service that turns profiles into portfolio archives.

Routes:
  POST /v1/portfolio   profile as YAML/JSON body, or multipart form with
                       "profile" and an optional "resume" file; ?seed=n
                       makes the output reproducible
  GET  /health         liveness
  GET  /ready          readiness
  GET  /metrics        Prometheus metrics

Examples:
  plume serve
  plume serve --port 9000
  curl -X POST --data-binary @profile.yml localhost:8080/v1/portfolio -o portfolio.zip`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(cmd, map[string]string{
				config.KeyPort:      "port",
				config.KeyAddress:   "address",
				config.KeyTemplates: "templates",
			})
			if err != nil {
				exitWithError(err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runServe(ctx, cfg); err != nil {
				stop()
				exitWithError(err)
			}
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().String("address", "", "Address to bind (default: all interfaces)")
	cmd.Flags().String("templates", "", "Directory of template overrides")

	return cmd
}

// runServe builds the server from settings and blocks until ctx is done
func runServe(ctx context.Context, cfg *config.Config) error {
	lib, err := loadTemplates(cfg.Generate.Templates)
	if err != nil {
		return err
	}

	log := logger.Default()
	genOpts := []portfolio.Option{
		portfolio.WithTemplates(lib),
		portfolio.WithLogger(log),
	}
	if cfg.Generate.Seed != nil {
		genOpts = append(genOpts, portfolio.WithSeed(*cfg.Generate.Seed))
	}

	srvCfg := server.ConfigFrom(cfg.Server)
	s := server.New(srvCfg,
		server.WithLogger(log),
		server.WithGenerator(portfolio.New(genOpts...)),
	)

	output.Success("Serving portfolios on " + srvCfg.Addr())
	output.Step("POST " + server.RoutePortfolio)
	return s.Run(ctx)
}
