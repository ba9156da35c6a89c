package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/luals-check/internal/adapters/outbound/config"
	"github.com/openkraft/luals-check/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		fail  string
		show  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [project]",
		Short: "Generate a " + config.FileName + " configuration file",
		Long:  "Create a " + config.FileName + " in the project root with the given thresholds.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			failSev, err := domain.ParseSeverity(fail)
			if err != nil {
				return fmt.Errorf("invalid --fail: %w", err)
			}
			showSev, err := domain.ParseSeverity(show)
			if err != nil {
				return fmt.Errorf("invalid --show: %w", err)
			}

			content := generateConfig(domain.Thresholds{Fail: failSev, Show: showSev}.Normalize())

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	d := domain.DefaultThresholds()
	cmd.Flags().StringVar(&fail, "fail", d.Fail.String(), "Minimum severity that fails the check")
	cmd.Flags().StringVar(&show, "show", d.Show.String(), "Minimum severity that is printed")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing "+config.FileName)

	return cmd
}

func generateConfig(t domain.Thresholds) string {
	return fmt.Sprintf(`# luals-check configuration

fail: %s
show: %s

# lua_language_server: /usr/local/bin/lua-language-server

# exclude_paths:
#   - vendor
#   - third_party
`, t.Fail, t.Show)
}
