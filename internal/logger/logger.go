package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// EnvVar holds the level filter, eg: "info,command=debug,stackperm=off".
const EnvVar = "STACKPERM_LOG"

const offLevel = zapcore.DebugLevel - 1

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "filtered"
	_ = zap.RegisterEncoder("filtered", func(ec zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return newFilterEncoder(zapcore.NewConsoleEncoder(ec), os.Getenv(EnvVar)), nil
	})
	// filterEncoder drops entries itself so zap has to pass everything through
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, _ := cfg.Build()
	return logger.Sugar()
}

var (
	Logger = newLogger()
	Debugw = Logger.Debugw
	Info   = Logger.Info
	Warn   = Logger.Warn
)

func parseLevel(str string) (zapcore.Level, bool) {
	if str == "off" {
		return offLevel, true
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(str)); err != nil {
		return 0, false
	}
	return lvl, true
}

// filterEncoder discards entries below the level configured for the package
// that logged them.
type filterEncoder struct {
	zapcore.Encoder
	level    zapcore.Level
	packages map[string]zapcore.Level
}

func newFilterEncoder(enc zapcore.Encoder, filter string) filterEncoder {
	fe := filterEncoder{
		Encoder:  enc,
		level:    zapcore.ErrorLevel,
		packages: map[string]zapcore.Level{},
	}
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return fe
	}
	for _, part := range strings.Split(filter, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lvl, ok := parseLevel(part); ok {
			fe.level = lvl
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 1 {
			fe.packages[kv[0]] = zapcore.DebugLevel
			continue
		}
		// malformed levels are ignored
		if lvl, ok := parseLevel(kv[1]); ok {
			fe.packages[kv[0]] = lvl
		}
	}
	return fe
}

func (fe filterEncoder) Clone() zapcore.Encoder {
	return filterEncoder{
		Encoder:  fe.Encoder.Clone(),
		level:    fe.level,
		packages: fe.packages,
	}
}

func (fe filterEncoder) effectiveLevel(caller zapcore.EntryCaller) zapcore.Level {
	// TrimmedPath looks like "command/cli.go:42"
	path := caller.TrimmedPath()
	if idx := strings.IndexRune(path, '/'); idx > 0 {
		if lvl, found := fe.packages[path[:idx]]; found {
			return lvl
		}
	}
	return fe.level
}

func (fe filterEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line, err := fe.Encoder.EncodeEntry(entry, fields)
	if entry.Level < fe.effectiveLevel(entry.Caller) {
		line.Reset()
	}
	return line, err
}

func Print(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
}
