package internal

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger installs the global zap logger used across the CLI. Informational
// output goes to stdout (plus debug when verbose is set); warnings and errors
// always go to stderr so cache and parse problems stay visible without
// polluting piped result output.
func InitLogger(verbose bool) {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:  "msg",
		EncodeLevel: zapcore.CapitalLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	stdoutLevel := zapcore.InfoLevel
	if verbose {
		stdoutLevel = zapcore.DebugLevel
	}

	stdoutCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= stdoutLevel && l < zapcore.WarnLevel
	}))

	stderrCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	}))

	zap.ReplaceGlobals(zap.New(zapcore.NewTee(stdoutCore, stderrCore)))
}
