package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(""))
	assert.Equal(t, Hash("abc"), HashBytes([]byte("abc")))
}

func TestShortHash(t *testing.T) {
	assert.Len(t, ShortHash("cursor-token", 16), 16)
	assert.Equal(t, Hash("x")[:8], ShortHash("x", 8))
	assert.Len(t, ShortHash("x", 0), 64)
	assert.Len(t, ShortHash("x", 100), 64)
}
