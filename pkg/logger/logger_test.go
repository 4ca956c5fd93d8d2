package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNamedRequiresInit(t *testing.T) {
	Log = nil
	_, err := Named("manager")
	assert.Error(t, err)
}

func TestInitAndNamed(t *testing.T) {
	require.NoError(t, Init(Config{Debug: true, Prefix: "[default]"}))
	t.Cleanup(func() { Log = nil })

	l, err := Named("manager")
	require.NoError(t, err)
	assert.Equal(t, "manager", l.Name)
	assert.Equal(t, Log.LogsPath, l.LogsPath)
}

func TestPrefixEncoder(t *testing.T) {
	enc := newPrefixEncoder(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "message"}), "[profile]")

	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "hello"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[profile] hello\n", buf.String())

	plain := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{})
	assert.Equal(t, plain, newPrefixEncoder(plain, ""))
}
