package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/simonhull/firebird-suite/heron/internal/output"
	"github.com/simonhull/firebird-suite/heron/internal/server"
	"github.com/simonhull/firebird-suite/heron/pkg/source"
	"github.com/spf13/cobra"
)

// ServeCmd creates the serve command
func ServeCmd() *cobra.Command {
	var (
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the reference site and serve it locally",
		Long: `Generates the site, then serves the output directory over HTTP.

Besides the static pages the server answers:
  /_api/health        server status
  /_api/pages/<url>   the plan of the page at <url>

With --watch the site is rebuilt whenever a package directory changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("watch") {
				cfg.Server.Watch = watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := build(ctx, cfg, log)
			if err != nil {
				return err
			}
			report(cfg, result)

			srv := server.New(cfg.Resolve(cfg.Reference.Output), log)
			if err := srv.Reload(); err != nil {
				return err
			}

			if cfg.Server.Watch {
				dirs := source.NewFileSource(cfg, log).Dirs()
				go func() {
					err := server.Watch(ctx, dirs, server.DefaultDebounce, log, func() error {
						if _, err := build(ctx, cfg, log); err != nil {
							return err
						}
						return srv.Reload()
					})
					if err != nil {
						output.Error(fmt.Sprintf("Watching stopped: %v", err))
					}
				}()
			}

			output.Info(fmt.Sprintf("Serving on http://localhost:%d%s/", cfg.Server.Port, cfg.Reference.Root))
			return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 6060, "Port to listen on (overrides server.port)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild when documentation files change")

	return cmd
}
