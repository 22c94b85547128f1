package app

import (
	"fmt"
	"io"

	"cosmossdk.io/log"
)

// NewLogger builds the node logger. The level accepts a single level ("info")
// or per-module filters ("x/amm:debug,*:error").
func NewLogger(cfg Config, w io.Writer) (log.Logger, error) {
	filter, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", cfg.LogLevel, err)
	}

	opts := []log.Option{log.FilterOption(filter)}
	if cfg.LogFormat == LogFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...), nil
}
