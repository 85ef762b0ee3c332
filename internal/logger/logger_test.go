package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitAndSetLevel(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, Init("production"))
	assert.NotSame(t, prev, zap.L())

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, Level())
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, zapcore.WarnLevel, Level())
}
