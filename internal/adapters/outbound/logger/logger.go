package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLevel names the environment variable consulted when no level is given.
const EnvLevel = "LUALS_CHECK_LOG_LEVEL"

// New builds the process logger. An explicit level wins over the environment;
// the default is WARN so a normal run writes nothing.
func New(name, level string, output io.Writer) hclog.Logger {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      output,
		Level:       getLogLevel(strings.ToUpper(level)),
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN", "":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	case "OFF":
		return hclog.Off
	default:
		return hclog.Warn
	}
}
