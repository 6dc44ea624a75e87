/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newTestLogger(t *testing.T, out *bytes.Buffer) *zap.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = func(time.Time, zapcore.PrimitiveArrayEncoder) {}

	encoder, err := NewJuiceEncoder(config)
	if err != nil {
		t.Fatal(err)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), zapcore.DebugLevel))
}

func TestJuiceEncoderFormat(t *testing.T) {
	var out bytes.Buffer
	logger := newTestLogger(t, &out)

	logger.Warn("probe failed")
	if got := out.String(); got != "W] probe failed\n" {
		t.Errorf("unexpected output %q", got)
	}

	out.Reset()
	logger.Info("probe done", zap.Int("adapters", 2))
	if got := out.String(); got != "I] probe done {\"adapters\":2}\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestJuiceEncoderClone(t *testing.T) {
	var out bytes.Buffer
	logger := newTestLogger(t, &out).With(zap.String("probe", "abc"))

	logger.Debug("launching")
	if got := out.String(); !strings.HasPrefix(got, "D] launching") || !strings.Contains(got, "\"probe\":\"abc\"") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestUnconfiguredLoggerIsSafe(t *testing.T) {
	Info("logging before Configure must not panic")
	Debugf("%d", 1)
}
