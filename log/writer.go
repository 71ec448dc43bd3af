package log

import (
	"io"
	"strings"
)

type loggerWriter struct {
	logger *Logger
}

// WriterIntoLogger adapts l into an io.Writer so that third-party packages
// writing through the standard library logger end up in structured logs.
// Each write becomes one Info entry.
func WriterIntoLogger(l *Logger) io.Writer {
	return loggerWriter{logger: l}
}

func (w loggerWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
