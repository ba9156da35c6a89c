package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/luals-check/internal/adapters/inbound/cli"
	"github.com/openkraft/luals-check/internal/domain"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, cli.ExitCode(nil))
	assert.Equal(t, 1, cli.ExitCode(&domain.ProblemsFoundError{Count: 2}))
	assert.Equal(t, 1, cli.ExitCode(fmt.Errorf("wrapped: %w", &domain.ProblemsFoundError{Count: 1})))
	assert.Equal(t, 2, cli.ExitCode(&domain.AnalyzerError{ExitCode: 1}))
	assert.Equal(t, 2, cli.ExitCode(errors.New("boom")))
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "luals-check dev (none)\n", buf.String())
}
