package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmPhraseMatches(t *testing.T) {
	assert.True(t, ConfirmPhraseMatches(" RESET ALL ", "RESET ALL"))
	assert.False(t, ConfirmPhraseMatches("reset all", "RESET ALL"))
	assert.False(t, ConfirmPhraseMatches("", ""))
}
