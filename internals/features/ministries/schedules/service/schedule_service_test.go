package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/ministries/schedules/dto"
)

func TestValidateAssignments(t *testing.T) {
	a, b, outsider := uuid.New(), uuid.New(), uuid.New()
	roster := map[uuid.UUID]bool{a: true, b: true}

	assert.NoError(t, ValidateAssignments(nil, roster))
	assert.NoError(t, ValidateAssignments([]dto.AssignmentInput{{MemberID: a}, {MemberID: b}}, roster))

	var fe *fiber.Error
	err := ValidateAssignments([]dto.AssignmentInput{{MemberID: a}, {MemberID: a}}, roster)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	err = ValidateAssignments([]dto.AssignmentInput{{MemberID: outsider}}, roster)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestCanRespond(t *testing.T) {
	assert.True(t, CanRespond("pending", "confirmed"))
	assert.True(t, CanRespond("confirmed", "declined"))
	assert.False(t, CanRespond("declined", "declined"))
	assert.False(t, CanRespond("pending", "pending"))
}
