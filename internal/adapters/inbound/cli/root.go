package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/openkraft/luals-check/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	opts := defaultCheckOptions()

	cmd := &cobra.Command{
		Use:   "luals-check [project]",
		Short: "Fail the build when lua-language-server finds problems",
		Long: "luals-check runs lua-language-server in diagnosis mode over a project, " +
			"prints the diagnostics that belong to it and exits non-zero when any of them " +
			"is at least as severe as the --fail threshold.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := "."
			if len(args) > 0 {
				projectPath = args[0]
			}
			return runCheck(cmd, projectPath, opts)
		},
	}
	opts.register(cmd)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the command line. Interrupts cancel the analyzer run.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// ExitCode maps an Execute error to the process exit status: 1 when the
// analyzer reported failing problems, 2 for every other failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var problems *domain.ProblemsFoundError
	if errors.As(err, &problems) {
		return 1
	}
	return 2
}
