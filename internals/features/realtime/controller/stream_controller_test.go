package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTables(t *testing.T) {
	assert.Nil(t, ParseTables(""))
	assert.Equal(t, []string{"ministry_demands", "kid_checkins"}, ParseTables(" ministry_demands, ,kid_checkins "))
}
