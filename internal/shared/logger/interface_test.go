package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLoggerSurface(t *testing.T) {
	var buf bytes.Buffer
	var log Interface = NewLoggerWithSlog(slog.New(slog.NewTextHandler(&buf, nil)))

	log.Infow("started", "component", "test")
	log.With("request_id", "abc").Errorw("failed", "error", "boom")
	log.Named("sub").Warnw("warned")

	out := buf.String()
	assert.Contains(t, out, "started")
	assert.Contains(t, out, "request_id=abc")
	assert.Contains(t, out, "logger=sub")

	// Fatal and Fatalw exit the process, so only their presence on the
	// interface is asserted here.
	_ = log.Fatal
	_ = log.Fatalw
}
