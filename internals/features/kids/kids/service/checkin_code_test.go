package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateCode(nil)
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(CodeAlphabet, r), "unexpected symbol %q", r)
		}
	}
}

func TestGenerateCodeDeterministicSource(t *testing.T) {
	// 0..11 map straight onto the first symbols
	src := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	code, err := GenerateCode(src)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", code)
}

func TestGenerateCodeSkipsBiasedBytes(t *testing.T) {
	// 255 and 250 are above the rejection limit for a 31 symbol alphabet
	src := bytes.NewReader([]byte{255, 250, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21})
	code, err := GenerateCode(src)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", code)
}

func TestGenerateCodeShortSource(t *testing.T) {
	_, err := GenerateCode(bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err)
}

func TestCodeMatches(t *testing.T) {
	assert.True(t, CodeMatches("AB3K9Z", "ab3k9z"))
	assert.True(t, CodeMatches("AB3K9Z", " AB3 K9Z "))
	assert.False(t, CodeMatches("AB3K9Z", "AB3K9"))
	assert.False(t, CodeMatches("AB3K9Z", "AB3K9Y"))
}
