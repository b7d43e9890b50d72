package xlog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ragodev/textile/xlog"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		"debug":          {input: "debug", want: slog.LevelDebug},
		"info":           {input: "info", want: slog.LevelInfo},
		"warn":           {input: "warn", want: slog.LevelWarn},
		"warning alias":  {input: "warning", want: slog.LevelWarn},
		"error":          {input: "error", want: slog.LevelError},
		"mixed case":     {input: "INFO", want: slog.LevelInfo},
		"unknown":        {input: "trace", wantErr: true},
	}
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := xlog.GetLevel(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, xlog.ErrUnknownLevel)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    xlog.Format
		wantErr bool
	}{
		"text":    {input: "text", want: xlog.FormatText},
		"json":    {input: "json", want: xlog.FormatJSON},
		"unknown": {input: "yaml", wantErr: true},
	}
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := xlog.GetFormat(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, xlog.ErrUnknownFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHandlerFromStringsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h, err := xlog.NewHandlerFromStrings(&buf, "info", "json")
	assert.NoError(t, err)

	logger := slog.New(h)
	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestNewHandlerFromStringsRejectsBadLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := xlog.NewHandlerFromStrings(&buf, "bogus", "text")
	assert.Error(t, err)
}

func TestNewHandlerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := xlog.NewHandler(&buf, slog.LevelWarn, xlog.FormatText)
	logger := slog.New(h)

	logger.Debug("should not appear")
	logger.Warn("should appear")

	assert.NotContains(t, buf.String(), "should not appear")
	assert.Contains(t, buf.String(), "should appear")
}
