package helper

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Name  PatchField[string] `json:"name"`
	Notes PatchField[string] `json:"notes"`
	Age   PatchField[int]    `json:"age"`
}

func TestPatchFieldTriState(t *testing.T) {
	var body patchBody
	require.NoError(t, sonic.Unmarshal([]byte(`{"name":"Ana","notes":null}`), &body))

	v, ok := body.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "Ana", *v)

	v, ok = body.Notes.Get()
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = body.Age.Get()
	assert.False(t, ok)
}

func TestPatchFieldApply(t *testing.T) {
	old := "old"
	notes := &old
	name := "keep"

	var body patchBody
	require.NoError(t, sonic.Unmarshal([]byte(`{"name":null,"notes":null}`), &body))
	body.Notes.ApplyTo(&notes)
	body.Name.ApplyRequired(&name)

	assert.Nil(t, notes)
	assert.Equal(t, "keep", name)
}
