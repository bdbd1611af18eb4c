package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"email-writer/internal/config"
)

const serviceName = "email-writer"

// logSink is one destination named in log.output.
type logSink struct {
	w      io.Writer
	closer io.Closer
}

// openSink resolves stdout and stderr by name; anything else is a rotated file.
func openSink(name string, rot config.Rotation) logSink {
	switch name {
	case "stdout":
		return logSink{w: os.Stdout}
	case "stderr":
		return logSink{w: os.Stderr}
	}
	l := &lumberjack.Logger{
		Filename:   name,
		MaxSize:    rot.MaxSize,
		MaxBackups: rot.MaxBackups,
		MaxAge:     rot.MaxAge,
		Compress:   rot.Compress,
	}
	return logSink{w: l, closer: l}
}

// setupLogger builds the service logger from the log section. Every record
// carries the service name and the configured provider backend and dialect.
func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	seen := make(map[string]bool)
	var sinks []logSink
	for _, name := range strings.Split(cfg.Log.Output, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		sinks = append(sinks, openSink(name, cfg.Log.Rotation))
	}
	if len(sinks) == 0 {
		sinks = append(sinks, logSink{w: os.Stdout})
	}

	writers := make([]io.Writer, 0, len(sinks))
	for _, s := range sinks {
		writers = append(writers, s.w)
	}
	cleanup := func() {
		for _, s := range sinks {
			if s.closer != nil {
				s.closer.Close()
			}
		}
	}

	out := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: cfg.GetLogLevel()}

	var h slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text":
		h = slog.NewTextHandler(out, opts)
	case "json":
		h = slog.NewJSONHandler(out, opts)
	default:
		cleanup()
		return nil, nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.Log.Format)
	}

	logger := slog.New(h).With(
		"service", serviceName,
		"llm_backend", cfg.LLM.Backend,
		"llm_dialect", cfg.LLM.Dialect,
	)
	return logger, cleanup, nil
}
