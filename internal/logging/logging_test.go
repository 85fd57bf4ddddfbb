package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"botdash/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.Options{Level: "DEBUG", Format: "json", Output: &buf})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("resource", "bots").Debug("fetched")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bots", entry["resource"])
	assert.Equal(t, "fetched", entry["msg"])
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "loud"})
	require.Error(t, err)
	_, err = logging.New(logging.Options{Format: "xml"})
	require.Error(t, err)
}
