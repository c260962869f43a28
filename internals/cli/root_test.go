package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecclesia_backend/internals/configs"
)

func testOptions(t *testing.T) (*RootOptions, *bool) {
	opened := false
	return &RootOptions{
		OpenDB: func() *gorm.DB {
			opened = true
			t.Fatal("database must not be opened")
			return nil
		},
		Config: &configs.Config{SystemResetPhrase: "RESET ALL CHURCH DATA"},
	}, &opened
}

func TestRootCommandHasSubcommands(t *testing.T) {
	opts, _ := testOptions(t)
	root := NewRootCommand(opts)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "seed-plans", "create-superadmin", "reset-system"} {
		assert.True(t, names[want], want)
	}
}

func TestResetSystemRequiresPhrase(t *testing.T) {
	opts, opened := testOptions(t)
	root := NewRootCommand(opts)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"reset-system", "--confirm", "reset"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmation phrase")
	assert.False(t, *opened)
}

func TestCreateSuperadminRequiresEmail(t *testing.T) {
	opts, opened := testOptions(t)
	root := NewRootCommand(opts)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"create-superadmin", "--name", "owner"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email")
	assert.False(t, *opened)
}
