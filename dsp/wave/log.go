package wave

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	logLimit = 200
	logKeep  = 100
)

// diagnostics is a bounded list of recent messages. Once it reaches
// logLimit entries only the newest logKeep are kept.
type diagnostics struct {
	entries []string
	logger  *slog.Logger
}

func (d *diagnostics) add(level slog.Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.entries = append(d.entries, msg)
	if len(d.entries) >= logLimit {
		kept := make([]string, logKeep, logLimit)
		copy(kept, d.entries[len(d.entries)-logKeep:])
		d.entries = kept
	}
	if d.logger != nil {
		d.logger.Log(context.Background(), level, "wave: "+msg)
	}
}

func (d *diagnostics) debugf(format string, args ...any) {
	d.add(slog.LevelDebug, format, args...)
}

func (d *diagnostics) warnf(format string, args ...any) {
	d.add(slog.LevelWarn, format, args...)
}

func (d *diagnostics) snapshot() []string {
	out := make([]string, len(d.entries))
	copy(out, d.entries)
	return out
}
