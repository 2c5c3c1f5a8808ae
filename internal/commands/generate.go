package commands

import (
	"context"
	"fmt"

	"github.com/simonhull/firebird-suite/heron/internal/output"
	"github.com/simonhull/firebird-suite/heron/internal/site"
	"github.com/simonhull/firebird-suite/heron/pkg/config"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"github.com/simonhull/firebird-suite/heron/pkg/pipeline"
	"github.com/simonhull/firebird-suite/heron/pkg/planner"
	"github.com/simonhull/firebird-suite/heron/pkg/source"
	"github.com/spf13/cobra"
)

// GenerateCmd creates the generate command
func GenerateCmd() *cobra.Command {
	var (
		outDir      string
		root        string
		memberPages bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the reference site",
		Long: `Loads every configured package, plans one page per symbol and writes
the rendered site to the output directory.

Problems with individual symbols or files are reported and skipped. When no
documentation source is available (or SKIP_REFERENCE is set) generation is
skipped with a warning and the command still succeeds.

Example:
  heron generate
  heron generate --out ./public --root /reference`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Reference.Output = outDir
			}
			if cmd.Flags().Changed("root") {
				cfg.Reference.Root = root
			}
			if cmd.Flags().Changed("member-pages") {
				cfg.Reference.MemberPages = memberPages
			}

			result, err := build(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			report(cfg, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides reference.output)")
	cmd.Flags().StringVar(&root, "root", "", "URL root of the reference (overrides reference.root)")
	cmd.Flags().BoolVar(&memberPages, "member-pages", false, "Also write a page per class property")

	return cmd
}

// build runs the pipeline over the configured packages and writes the site.
// Only a failure to write the output is returned as an error.
func build(ctx context.Context, cfg *config.Config, log logger.Logger) (*pipeline.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	builder, err := site.NewBuilder()
	if err != nil {
		return nil, err
	}
	defer builder.Close()

	outDir := cfg.Resolve(cfg.Reference.Output)
	writer := site.NewWriter(outDir, builder, log)

	gen := pipeline.New(source.NewFileSource(cfg, log),
		pipeline.WithRoot(cfg.Reference.Root),
		pipeline.WithLogger(log),
		pipeline.WithPlannerOptions(planner.WithMemberPages(cfg.Reference.MemberPages)),
	)

	result, err := gen.Run(ctx, writer.Sink)
	if err != nil {
		return result, fmt.Errorf("generation failed: %w", err)
	}
	if result.Degraded {
		return result, nil
	}

	if err := writer.Commit(); err != nil {
		return result, err
	}
	return result, nil
}

func report(cfg *config.Config, result *pipeline.Result) {
	if result.Degraded {
		output.Warn("Reference generation skipped: no documentation source available")
		return
	}

	output.Success(fmt.Sprintf("Generated %d reference pages for %d packages", result.Pages, result.Packages))
	output.Info(fmt.Sprintf("Output: %s", cfg.Resolve(cfg.Reference.Output)))

	if n := len(result.Diagnostics); n > 0 {
		output.Warn(fmt.Sprintf("%d items skipped (run with --verbose for details)", n))
		for _, d := range result.Diagnostics {
			output.Verbose(d.Error())
		}
	}
}
