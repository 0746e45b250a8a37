package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, flush := NewWithWriter(&buf, false)
	logger.Debug("hidden")
	logger.Warn("shown")
	flush()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger, flush = NewWithWriter(&buf, true)
	logger.Named("books").Debug("request sent")
	flush()

	assert.Contains(t, buf.String(), "request sent")
	assert.Contains(t, buf.String(), "books")
}
