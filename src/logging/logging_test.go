package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	testCases := []struct {
		level       string
		expectDebug bool
		expectWarn  bool
		expectError bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, true, true},
		{"Warning", false, true, true},
		{"error", false, false, true},
		{"", false, true, true},
		{"bogus", false, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger := NewLogger(tc.level)
			assert.Equal(t, tc.expectDebug, logger.IsLevelEnabled(logrus.DebugLevel))
			assert.Equal(t, tc.expectWarn, logger.IsLevelEnabled(logrus.WarnLevel))
			assert.Equal(t, tc.expectError, logger.IsLevelEnabled(logrus.ErrorLevel))
		})
	}
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info")
	logger.WithField("filename", "a.txt").Info("hello")
	assert.Contains(t, buf.String(), "filename=a.txt")
	assert.Contains(t, buf.String(), "msg=hello")
}
