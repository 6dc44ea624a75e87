/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package sentry

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Juice-Labs/encprobe/pkg/logger"
)

const flushTimeout = 2 * time.Second

var (
	// Set at build time with -ldflags.
	SentryDsn = ""
)

type ClientOptions = sentry.ClientOptions

// Initialize enables sentry when a DSN is available from the options,
// SENTRY_DSN or the build. Must run before logger.Configure so the
// breadcrumb hook is installed.
func Initialize(config sentry.ClientOptions) error {
	if config.Dsn == "" {
		config.Dsn = os.Getenv("SENTRY_DSN")
		if config.Dsn == "" {
			config.Dsn = SentryDsn
		}
	}

	if config.Dsn == "" {
		return nil
	}

	err := sentry.Init(config)
	if err == nil {
		logger.AddOption(zap.Hooks(breadcrumbHook))
	}

	return err
}

// Probe failures are logged at warning level, so those become
// breadcrumbs too.
func breadcrumbHook(entry zapcore.Entry) error {
	if entry.Level >= zapcore.WarnLevel {
		level := sentry.LevelWarning
		if entry.Level >= zapcore.ErrorLevel {
			level = sentry.LevelError
		}

		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Type:      "error",
			Category:  "log",
			Level:     level,
			Message:   fmt.Sprintf("%s %s", entry.Caller.TrimmedPath(), entry.Message),
			Timestamp: entry.Time,
		})
	}

	return nil
}

func Enabled() bool {
	return sentry.CurrentHub().Client() != nil
}

func CaptureError(err error) {
	if Enabled() {
		sentry.CaptureException(err)
	}
}

func Close() {
	if err := recover(); err != nil {
		sentry.CurrentHub().Recover(err)
		sentry.Flush(flushTimeout)
		// re-raise panic
		panic(err)
	}
	sentry.Flush(flushTimeout)
}
