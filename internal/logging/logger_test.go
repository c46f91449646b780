package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Drivers(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{driver: "", want: "msg=hi"},
		{driver: "slog", want: "msg=hi"},
		{driver: "SLOG-JSON", want: `"msg":"hi"`},
		{driver: "zap", want: `"msg":"hi"`},
		{driver: "logrus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(tt.driver, "info", &buf)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			l.Info(context.Background(), "hi", "k", "v")
			if z, ok := l.(*ZapLogger); ok {
				_ = z.Sync()
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestZapLogger_WithAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newZap(&buf, "info")
	ctx := context.Background()

	l.Debug(ctx, "hidden")
	l.With("component", "catalog").Warn(ctx, "slow", "ms", 1200)
	require.NoError(t, l.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "slow", rec["msg"])
	assert.Equal(t, "catalog", rec["component"])
	assert.EqualValues(t, 1200, rec["ms"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	ctx := context.TODO()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
	l.With("a", 1).Info(ctx, "y")
}
