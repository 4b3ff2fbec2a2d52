package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "development", cfg: DevelopmentConfig()},
		{name: "no output paths", cfg: Config{Level: "warn"}},
		{name: "invalid level", cfg: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.Logger)
		})
	}
}

func TestSetLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")
	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	assert.Equal(t, "info", logger.Level())
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, "debug", logger.Level())
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	assert.Error(t, logger.SetLevel("loud"))
	assert.Equal(t, "debug", logger.Level())
}

func TestFallbacks(t *testing.T) {
	assert.NotNil(t, NewDefault())
	assert.NotNil(t, NewDevelopment())

	nop := NewNop()
	assert.False(t, nop.Core().Enabled(zap.ErrorLevel))

	core, logs := observer.New(zap.DebugLevel)
	wrapped := Wrap(zap.New(core))
	wrapped.Info("hello")
	assert.Equal(t, 1, logs.Len())

	assert.NotNil(t, Wrap(nil).Logger)
}
