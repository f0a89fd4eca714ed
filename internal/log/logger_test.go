package log

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterPattern(t *testing.T) {
	f := &formatter{
		pattern: "%time [%level] %field %msg\n",
		time:    "2006-01-02 15:04:05",
	}

	entry := &logrus.Entry{
		Time:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "capture started",
		Data: logrus.Fields{
			"device": "eth0",
			"limit":  3,
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)

	// Fields render sorted by key so output is deterministic.
	assert.Equal(t, "2025-03-14 09:30:00 [info] device=eth0,limit=3 capture started\n", string(out))
}

func TestMultiWriterFanOut(t *testing.T) {
	var a, b bytes.Buffer
	mw := newMultiWriter().Add(&a).Add(&b)

	n, err := mw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestMultiWriterKeepsWritingAfterFailure(t *testing.T) {
	var ok bytes.Buffer
	mw := newMultiWriter().Add(failingWriter{}).Add(&ok)

	n, err := mw.Write([]byte("hello"))
	require.Error(t, err)
	assert.Equal(t, 0, n)

	// The failing appender must not starve the healthy one.
	assert.Equal(t, "hello", ok.String())
}

func TestInitByConfigFileAppender(t *testing.T) {
	cfg := &Config{
		Level:   "debug",
		Pattern: "%msg\n",
		Time:    "15:04:05",
		Appenders: []AppenderConfig{
			{
				Type: "file",
				Options: map[string]interface{}{
					"filename":    filepath.Join(t.TempDir(), "framecap.log"),
					"max_size":    10,
					"max_backups": 2,
				},
			},
		},
	}

	require.NoError(t, initByConfig(cfg))
	assert.True(t, logger.IsDebugEnabled())
}

func TestInitByConfigRejectsBadAppender(t *testing.T) {
	err := initByConfig(&Config{
		Level:     "info",
		Pattern:   "%msg\n",
		Time:      "15:04:05",
		Appenders: []AppenderConfig{{Type: "syslog"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown appender type")
}

func TestInitByConfigFileAppenderRequiresFilename(t *testing.T) {
	err := initByConfig(&Config{
		Level:     "info",
		Pattern:   "%msg\n",
		Time:      "15:04:05",
		Appenders: []AppenderConfig{{Type: "file"}},
	})
	require.Error(t, err)
}

func TestGetLoggerNeverNil(t *testing.T) {
	assert.NotNil(t, GetLogger())
}
