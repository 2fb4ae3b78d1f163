package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestIsStable(t *testing.T) {
	data := []byte("material_code,price\n100200,95000\n")
	first := Digest(data)
	second := Digest(data)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, Digest([]byte("material_code,price\n100200,95001\n")))
}

func TestMatcher(t *testing.T) {
	data := []byte("some uploaded sheet")
	m := NewMatcher(Digest(data))

	ok, err := m.Match(data)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match([]byte("different content"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatcherWithoutExpectedDigest(t *testing.T) {
	m := NewMatcher("")
	_, err := m.Match([]byte("anything"))
	assert.Error(t, err)
}
