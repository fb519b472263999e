package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { Log.SetLevel(logrus.InfoLevel) })

	InitLogger("debug")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	InitLogger("chatty")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
