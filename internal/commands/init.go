package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/heron/internal/output"
	"github.com/simonhull/firebird-suite/heron/pkg/config"
	"github.com/spf13/cobra"
)

// InitCmd creates the init command
func InitCmd() *cobra.Command {
	var (
		force bool
		name  string
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter heron.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg := config.DefaultConfig()
			cfg.Packages = []config.PackageConfig{{
				Name:    name,
				Dir:     dir,
				Include: append([]string(nil), config.DefaultInclude...),
			}}

			if err := config.SaveConfig(configPath, cfg); err != nil {
				return err
			}
			output.Success(fmt.Sprintf("Created %s", configPath))
			output.Step(fmt.Sprintf("Put %s's doc-node JSON files in %s, then run: heron generate", name, dir))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVar(&name, "package", "main", "Name of the first documented package")
	cmd.Flags().StringVar(&dir, "dir", "./reference", "Directory holding the package's doc-node JSON")

	return cmd
}

// VersionCmd creates the version command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the heron version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "heron %s\n", cmd.Root().Version)
		},
	}
}
