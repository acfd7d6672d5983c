package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAssetURL(t *testing.T) {
	assert.Equal(t, "", ResolveAssetURL("http://cdn.example.com", ""))
	assert.Equal(t, "https://elsewhere.com/a.png", ResolveAssetURL("http://cdn.example.com", "https://elsewhere.com/a.png"))
	assert.Equal(t, "http://cdn.example.com/uploads/a.png", ResolveAssetURL("http://cdn.example.com", "/uploads/a.png"))
	assert.Equal(t, "http://cdn.example.com/uploads/a.png", ResolveAssetURL("http://cdn.example.com/", "uploads/a.png"))
}
