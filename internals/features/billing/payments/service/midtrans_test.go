package service

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateKeepsWholeCharacters(t *testing.T) {
	assert.Equal(t, "São", truncate("São João", 3))
	assert.Equal(t, "Igreja Batista", truncate("Igreja Batista", 50))

	name := "Comunidade Evangélica Assembleia de Deus em São Paulo"
	got := truncate(name, 50)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 50, utf8.RuneCountInString(got))

	// each rune is 3 bytes; a byte cut would split one
	assert.Equal(t, "教会", truncate("教会教会", 2))
	assert.Equal(t, "x", truncate("x", 0))
}
