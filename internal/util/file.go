package util

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FormatSize renders a byte count for display: divide by 1024 until the value
// drops below 1024, show two decimals ("2.00 MB").
func FormatSize(size int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(size)
	idx := 0
	for value >= 1024 && idx < len(units)-1 {
		value /= 1024
		idx++
	}
	return fmt.Sprintf("%.2f %s", value, units[idx])
}

// ClassifyKind maps a MIME type to the display kind the file table shows.
func ClassifyKind(mimeType string) string {
	switch {
	case mimeType == "application/pdf":
		return "PDF"
	case strings.HasPrefix(mimeType, "image/"):
		return "Image"
	case strings.HasPrefix(mimeType, "video/"):
		return "Video"
	case strings.HasPrefix(mimeType, "audio/"):
		return "Audio"
	case strings.HasPrefix(mimeType, "text/"):
		return "Text"
	case mimeType == "application/zip" || mimeType == "application/x-rar-compressed":
		return "Archive"
	}
	return "File"
}

// ValidateMimeType sniffs the first 512 bytes and checks the detected type
// against the allowed prefixes or exact types.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}
