package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0.00 B", FormatSize(0))
	assert.Equal(t, "512.00 B", FormatSize(512))
	assert.Equal(t, "1.00 KB", FormatSize(1024))
	assert.Equal(t, "1.50 KB", FormatSize(1536))
	assert.Equal(t, "2.00 MB", FormatSize(2*1024*1024))
	assert.Equal(t, "3.00 GB", FormatSize(3*1024*1024*1024))
}

func TestClassifyKind(t *testing.T) {
	assert.Equal(t, "PDF", ClassifyKind("application/pdf"))
	assert.Equal(t, "Image", ClassifyKind("image/png"))
	assert.Equal(t, "Video", ClassifyKind("video/mp4"))
	assert.Equal(t, "Audio", ClassifyKind("audio/mpeg"))
	assert.Equal(t, "Text", ClassifyKind("text/plain"))
	assert.Equal(t, "Archive", ClassifyKind("application/zip"))
	assert.Equal(t, "File", ClassifyKind("application/octet-stream"))
}

func TestValidateMimeType(t *testing.T) {
	mime, err := ValidateMimeType(strings.NewReader("%PDF-1.4 content"), []string{"application/pdf"})
	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	_, err = ValidateMimeType(strings.NewReader("plain words"), []string{"application/pdf"})
	assert.Error(t, err)
}
