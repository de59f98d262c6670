package utils

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedLogger(t *testing.T) {
	{ // Same name returns the same logger
		a := NamedLogger("test-a")
		assert.Same(t, a, NamedLogger("test-a"))
		assert.NotSame(t, a, NamedLogger("test-b"))
	}
	{ // Messages carry the logger name and caller location
		var buf bytes.Buffer
		l := NamedLogger("test-format")
		l.SetOutput(&buf)
		l.Info("hello")
		assert.Contains(t, buf.String(), "[test-format log_test.go:")
		assert.Contains(t, buf.String(), "hello")
	}
	{ // Level changes reach existing loggers
		l := NamedLogger("test-level")
		require.NoError(t, SetLogLevel("DEBUG"))
		assert.Equal(t, logrus.DebugLevel, l.GetLevel())
		require.NoError(t, SetLogLevel("info"))
		assert.Equal(t, logrus.InfoLevel, l.GetLevel())
		assert.Error(t, SetLogLevel("loud"))
	}
}
