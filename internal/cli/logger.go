// Package cli holds the terminal-facing pieces of the chaincli binary:
// logger setup and the interactive confirmation prompt. The library under
// the repository root never logs or prompts; everything user-visible
// funnels through here.
package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// InitLogger builds the process logger. Verbose enables debug level; the
// development encoder colors level names for terminal use.
func InitLogger(verbose bool) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.DisableStacktrace = true
	if !verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	built, err := config.Build()
	if err != nil {
		panic(err)
	}
	log = built
	zap.ReplaceGlobals(log)
}

// Logger returns the process logger (a nop logger before InitLogger).
func Logger() *zap.Logger {
	return log
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = log.Sync()
}
