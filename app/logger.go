package app

import (
	"fmt"
	"io"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// Log formats accepted by NewLogger.
const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// NewLogger builds the process logger from the --log-level and --log-format settings.
func NewLogger(w io.Writer, level, format string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := []log.Option{log.LevelOption(lvl)}
	switch format {
	case LogFormatJSON:
		opts = append(opts, log.OutputJSONOption())
	case LogFormatPlain, "":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return log.NewLogger(w, opts...), nil
}
