package dto

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateKidToModel(t *testing.T) {
	g := uuid.New()
	m, err := CreateKidRequest{
		Name:              " Ana ",
		BirthDate:         "2019-05-02",
		GuardianMemberIDs: []uuid.UUID{g, g},
		Allergies:         []string{"peanut", " ", "milk"},
	}.ToModel(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Ana", m.KidName)
	assert.Equal(t, []string{g.String()}, []string(m.KidGuardianMemberIDs))
	assert.Equal(t, []string{"peanut", "milk"}, []string(m.KidAllergies))
	require.NotNil(t, m.KidBirthDate)

	_, err = CreateKidRequest{Name: "x", BirthDate: "02/05/2019"}.ToModel(uuid.New())
	assert.Error(t, err)
}

func TestUpdateKidApply(t *testing.T) {
	m, err := CreateKidRequest{Name: "Ana", GuardianMemberIDs: []uuid.UUID{uuid.New()}, Allergies: []string{"milk"}}.ToModel(uuid.New())
	require.NoError(t, err)

	var req UpdateKidRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"kid_allergies":null,"kid_guardian_member_ids":[]}`), &req))
	_, err = req.Apply(m)
	assert.Error(t, err)

	g := uuid.New()
	req = UpdateKidRequest{}
	require.NoError(t, sonic.Unmarshal([]byte(`{"kid_allergies":null,"kid_guardian_member_ids":["`+g.String()+`"]}`), &req))
	guardians, err := req.Apply(m)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{g}, guardians)
	assert.Empty(t, m.KidAllergies)
}
