package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Errors groups non-nil errors under "errors". Returns an empty Attr if all are nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". Returns an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func SessionID(id string) slog.Attr {
	return slog.String("session_id", id)
}

// RequestID records the request identifier under "request_id".
// Empty ids produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func URL(u string) slog.Attr {
	return slog.String("url", u)
}

func Bytes(n int) slog.Attr {
	return slog.Int("bytes", n)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}
