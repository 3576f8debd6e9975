package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pedigreecheck/pkg/logging"
)

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	tl := logging.NewTestLogger(t)
	logging.SetDefault(*tl.Logger)

	logging.FromContext(context.Background()).Info().Msg("info message")
	logging.Default().Debug().Msg("debug message")

	assert.Equal(t, 2, tl.Count())
	tl.AssertContains(t, "info message")
}

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, output string)
	}{
		{
			name:   "debug level",
			config: &logging.Config{Level: "debug", Format: "json", Output: "discard"},
			check: func(t *testing.T, output string) {
				assert.Contains(t, output, `"level":"debug"`)
			},
		},
		{
			name:   "error level only",
			config: &logging.Config{Level: "error", Format: "json", Output: "discard"},
			check: func(t *testing.T, output string) {
				assert.NotContains(t, output, `"level":"info"`)
				assert.Contains(t, output, `"level":"error"`)
			},
		},
		{
			name:   "warning alias",
			config: &logging.Config{Level: "warning", Format: "json", Output: "discard"},
			check: func(t *testing.T, output string) {
				assert.NotContains(t, output, `"level":"info"`)
			},
		},
		{
			name: "default fields",
			config: &logging.Config{
				Level:  "info",
				Format: "json",
				Output: "discard",
				Fields: map[string]any{"component": "check", "workers": 2},
			},
			check: func(t *testing.T, output string) {
				assert.Contains(t, output, `"component":"check"`)
				assert.Contains(t, output, `"workers":2`)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tc.config).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			tc.check(t, buf.String())
		})
	}
}

func TestNewLoggerFromConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"level":"info"`},
		{format: "console", want: "INF"},
	}

	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:   "info",
				Format:  tc.format,
				Output:  path,
				NoColor: true,
			})
			logger.Info().Str("key", "value").Msg(tc.format + " test")

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(content), tc.format+" test")
			assert.Contains(t, string(content), tc.want)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRun(ctx, "run-123")
	ctx = logging.WithDataset(ctx, "submitted", "form.xlsx")

	logging.FromContext(ctx).Info().Msg("loaded")

	assert.Equal(t, "run-123", logging.RunID(ctx))
	tl.AssertContains(t, `"run_id":"run-123"`)
	tl.AssertContains(t, `"dataset":"submitted"`)
	tl.AssertContains(t, `"file":"form.xlsx"`)
	tl.AssertContains(t, "loaded")
}

func TestContextHelpers(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Same(t, logging.Default(), logging.FromContext(ctx))
	})

	t.Run("RunID is empty without WithRun", func(t *testing.T) {
		assert.Empty(t, logging.RunID(context.Background()))
	})

	t.Run("WithError ignores nil", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, logging.WithError(ctx, nil))
	})

	t.Run("WithError adds error field", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithError(ctx, assert.AnError)
		logging.FromContext(ctx).Error().Msg("failed")
		tl.AssertContains(t, assert.AnError.Error())
	})
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Trace().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertContains(t, "message 2")
	tl.AssertNotContains(t, "message 3")
	assert.Len(t, tl.Lines(), 2)
}
