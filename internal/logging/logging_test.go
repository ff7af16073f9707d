package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantJSON  bool
		wantDebug bool
	}{
		{name: "local", env: config.EnvLocal, wantDebug: true},
		{name: "dev", env: config.EnvDev, wantJSON: true, wantDebug: true},
		{name: "prod", env: config.EnvProd, wantJSON: true},
		{name: "unknown env", env: "staging"},
		{name: "level override", env: config.EnvProd, level: "debug", wantJSON: true, wantDebug: true},
		{name: "bad level ignored", env: config.EnvLocal, level: "loud", wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.New(tt.env, tt.level, &buf)

			assert.Equal(t, tt.wantDebug, logger.Enabled(context.Background(), slog.LevelDebug))

			logger.Info("hello", slog.String("k", "v"))
			if tt.wantJSON {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "hello", entry["msg"])
				assert.Equal(t, "v", entry["k"])
			} else {
				assert.Contains(t, buf.String(), "msg=hello")
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	assert.False(t, logging.Discard().Enabled(context.Background(), slog.LevelError))
}
