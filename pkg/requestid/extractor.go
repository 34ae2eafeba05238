package requestid

import (
	"context"
	"log/slog"

	"github.com/aluminumlabs/incognito/pkg/logger"
)

var _ logger.ContextExtractor = LogExtractor

// LogExtractor adds request_id to log records whose context carries one.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := FromContext(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}
