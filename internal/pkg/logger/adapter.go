package logger

import "holo_vault_analyzer/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level functions so
// services can take a logger without knowing about slog or zap.
type slogAdapter struct {
	attrs []any
}

// NewSlogAdapter creates a new slogAdapter.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) merge(args []any) []any {
	if len(a.attrs) == 0 {
		return args
	}
	out := make([]any, 0, len(a.attrs)+len(args))
	out = append(out, a.attrs...)
	return append(out, args...)
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, a.merge(args)...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, a.merge(args)...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, a.merge(args)...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, a.merge(args)...) }

// With returns an adapter carrying args on every record.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{attrs: a.merge(args)}
}

// Nop returns a Logger that discards everything. Used by tests.
func Nop() port.Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)       {}
func (nopLogger) Debug(string, ...any)      {}
func (nopLogger) Warn(string, ...any)       {}
func (nopLogger) Error(string, ...any)      {}
func (n nopLogger) With(...any) port.Logger { return n }
