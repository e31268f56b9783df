package config

import (
	"context"
	"sort"

	"github.com/marmos91/graphbench/internal/logger"
)

// LogSummary logs every parameter at INFO level, one line per parameter,
// so a run's log is self-describing.
func (c *Configuration) LogSummary(ctx context.Context) {
	params := c.Snapshot().Map()

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		logger.InfoCtx(ctx, "Parameter", logger.Field(name), logger.Value(params[name]))
	}
}
