package helper

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	ChurchName string `json:"church_name" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
}

func TestValidationErrorsUsesSnakeCase(t *testing.T) {
	err := Validate.Struct(sampleInput{ChurchName: "ab", Email: "nope"})
	fields := ValidationErrors(err)

	assert.Equal(t, []string{"min=3"}, fields["church_name"])
	assert.Equal(t, []string{"email"}, fields["email"])
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "ux_volunteer"`)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}
