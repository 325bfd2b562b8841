package metadata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct {
	err error
}

func (r failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

func TestExtractWithoutExifBlock(t *testing.T) {
	extractor := NewExifExtractor()

	meta, err := extractor.Extract(strings.NewReader("not a photo"), "note.jpg")
	require.NoError(t, err)

	assert.Equal(t, "note.jpg", meta.Filename)
	assert.Empty(t, meta.AssetID)
	assert.False(t, meta.HasLocation())
	assert.Nil(t, meta.CaptureDate)
	assert.Empty(t, meta.UniqueHash())
}

func TestExtractPropagatesReadErrors(t *testing.T) {
	extractor := NewExifExtractor()

	_, err := extractor.Extract(failingReader{err: errors.New("disk read failed")}, "x.jpg")
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk read failed")
	assert.ErrorContains(t, err, "x.jpg")
}
