package trace

import (
	"context"
	"log/slog"
)

// SlogObserver writes trace events to an slog.Logger. Sequences and steps
// are logged at Info, operations at Debug and errors at Error.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates a SlogObserver. A nil logger uses slog.Default().
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) log(level slog.Level, src Source, msg string, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("domain", src.Domain), slog.String("target", src.Instance))
	o.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (o *SlogObserver) SeqStart(src Source, msg string) {
	o.log(slog.LevelInfo, src, "seq", slog.String("name", msg))
}

func (o *SlogObserver) Step(src Source, msg string) {
	o.log(slog.LevelInfo, src, "step", slog.String("name", msg))
}

func (o *SlogObserver) OpStart(src Source, op string) {
	o.log(slog.LevelDebug, src, "op", slog.String("op", op))
}

func (o *SlogObserver) OpValues(src Source, values string) {
	o.log(slog.LevelDebug, src, "values", slog.String("values", values))
}

func (o *SlogObserver) OpEnd(src Source) {
	o.log(slog.LevelDebug, src, "done")
}

func (o *SlogObserver) OpError(src Source, msg string) {
	o.log(slog.LevelError, src, "op failed", slog.String("error", msg))
}

var _ Observer = (*SlogObserver)(nil)
