package client

import "go.uber.org/zap"

// Logger represents the minimal logging interface used by the client.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ZapLogger adapts a zap logger to Logger.
type ZapLogger struct {
	inner *zap.SugaredLogger
}

// NewZapLogger wraps log. A nil log discards everything.
func NewZapLogger(log *zap.Logger) ZapLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return ZapLogger{inner: log.Sugar()}
}

func (l ZapLogger) Debugf(format string, args ...any) {
	l.inner.Debugf(format, args...)
}

func (l ZapLogger) Errorf(format string, args ...any) {
	l.inner.Errorf(format, args...)
}
