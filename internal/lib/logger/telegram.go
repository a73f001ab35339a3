package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// Notifier delivers a plain-text alert to the operators.
type Notifier interface {
	SendMessage(text string)
}

// telegramHandler fans records out to the wrapped handler and forwards
// everything at or above minLevel to the notifier.
type telegramHandler struct {
	next     slog.Handler
	notifier Notifier
	minLevel slog.Level
	attrs    []slog.Attr
}

// SetupTelegramHandler wraps log so that records at or above minLevel are
// also pushed to the admin chat.
func SetupTelegramHandler(log *slog.Logger, notifier Notifier, minLevel slog.Level) *slog.Logger {
	return slog.New(&telegramHandler{
		next:     log.Handler(),
		notifier: notifier,
		minLevel: minLevel,
	})
}

func (h *telegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *telegramHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= h.minLevel && h.notifier != nil {
		text := fmt.Sprintf("%s | %s", record.Level, record.Message)
		for _, attr := range h.attrs {
			text += fmt.Sprintf("\n%s: %v", attr.Key, attr.Value)
		}
		record.Attrs(func(attr slog.Attr) bool {
			text += fmt.Sprintf("\n%s: %v", attr.Key, attr.Value)
			return true
		})
		go h.notifier.SendMessage(text)
	}
	return h.next.Handle(ctx, record)
}

func (h *telegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &telegramHandler{
		next:     h.next.WithAttrs(attrs),
		notifier: h.notifier,
		minLevel: h.minLevel,
		attrs:    append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *telegramHandler) WithGroup(name string) slog.Handler {
	return &telegramHandler{
		next:     h.next.WithGroup(name),
		notifier: h.notifier,
		minLevel: h.minLevel,
		attrs:    h.attrs,
	}
}
