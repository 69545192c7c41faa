package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	s := Short()
	assert.True(t, strings.HasPrefix(s, Version), "short version starts with the version: %s", s)
	assert.Contains(t, s, Revision)
}

func TestDetailed(t *testing.T) {
	d := Detailed()
	assert.Contains(t, d, Version)
	assert.Contains(t, d, "go1")
}
