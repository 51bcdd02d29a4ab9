package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const logTimeFormat = "02-01-2006 15:04:05"

// logWriter prefixes every record with "dd-mm-YYYY HH:MM:SS [LEVEL] [target] ".
type logWriter struct {
	out    io.Writer
	level  string
	target string
	now    func() time.Time
}

func (w *logWriter) Write(p []byte) (int, error) {
	if _, err := fmt.Fprintf(w.out, "%s [%s] [%s] %s", w.now().Format(logTimeFormat), w.level, w.target, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func newLogger(out io.Writer, level, target string) *log.Logger {
	return log.New(&logWriter{out: out, level: level, target: target, now: time.Now}, "", 0)
}

// openLog returns an INFO logger writing to path, or a discarding one when path is empty.
func openLog(path string) (*log.Logger, func() error, error) {
	if path == "" {
		return newLogger(io.Discard, "INFO", "planarnet"), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "log file")
	}
	return newLogger(f, "INFO", "planarnet"), f.Close, nil
}
