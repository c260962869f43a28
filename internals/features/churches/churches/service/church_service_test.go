package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/churches/churches/model"
)

func TestParentForNewChild(t *testing.T) {
	root := model.ChurchModel{ChurchID: uuid.New()}
	parentID := uuid.New()
	child := model.ChurchModel{ChurchID: uuid.New(), ChurchParentID: &parentID}

	assert.NoError(t, ParentForNewChild(root, 5, 0))
	assert.NoError(t, ParentForNewChild(root, 2, 3))

	err := ParentForNewChild(root, 3, 3)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)

	err = ParentForNewChild(child, 0, 0)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}
