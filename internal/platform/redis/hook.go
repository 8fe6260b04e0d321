package redis

import (
	"context"
	"log/slog"
	"net"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// connectionLogger is a go-redis hook that logs connection lifecycle events.
// Commands pass through untouched.
type connectionLogger struct {
	logger *slog.Logger
}

var _ backend.Hook = connectionLogger{}

func (h connectionLogger) DialHook(next backend.DialHook) backend.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.logger.ErrorContext(ctx, "redis connection failed",
				slog.String("addr", addr),
				slog.String("error", err.Error()))
			return nil, err
		}
		h.logger.InfoContext(ctx, "redis connection established",
			slog.String("addr", addr),
			slog.Duration("dial_time", time.Since(start)))
		return conn, nil
	}
}

func (h connectionLogger) ProcessHook(next backend.ProcessHook) backend.ProcessHook {
	return next
}

func (h connectionLogger) ProcessPipelineHook(next backend.ProcessPipelineHook) backend.ProcessPipelineHook {
	return next
}
