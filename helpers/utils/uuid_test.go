package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var uuidV4Re = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	assert.Regexp(t, uuidV4Re, id)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		next := GenerateUUID()
		assert.False(t, seen[next], "ids must not repeat")
		seen[next] = true
	}
}
