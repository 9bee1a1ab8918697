package cliutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	var sb strings.Builder
	Writef(&sb, "sorted %d keys in %s\n", 3, "doc.json")
	assert.Equal(t, "sorted 3 keys in doc.json\n", sb.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestWritefIgnoresWriteFailure(t *testing.T) {
	assert.NotPanics(t, func() {
		Writef(failWriter{}, "dropped")
	})
}
