package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{" WARN ", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"info", logrus.InfoLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(&bytes.Buffer{}, tt.in).GetLevel(), tt.in)
	}
}

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	log.WithField("file", "energy_train.out").Info("loaded")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "file=energy_train.out")
	assert.NotContains(t, out, "hidden")
}
