package reporter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDisabledReporterIsNoop(t *testing.T) {
	Init("", "test", "dev")
	assert.False(t, Enabled())

	assert.NotPanics(t, func() {
		Error(errors.New("boom"), map[string]interface{}{"church_id": "x"})
		Errorf(errors.New("boom"), "while %s", "testing")
		Critical(nil, nil)
		Warn("careful", nil)
		Close()
	})
}
