package dto

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/members/members/model"
)

func TestCreateMemberDefaults(t *testing.T) {
	mail := "  Ana@Example.COM "
	req := CreateMemberRequest{MemberName: " Ana ", MemberEmail: &mail}
	req.Normalize()

	m, err := req.ToModel(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Ana", m.MemberName)
	assert.Equal(t, "ana@example.com", *m.MemberEmail)
	assert.Equal(t, "member", m.MemberRole)
	assert.Equal(t, model.MemberStatusVisitor, m.MemberStatus)
}

func TestCreateMemberBadDate(t *testing.T) {
	bad := "12/31/1990"
	req := CreateMemberRequest{MemberName: "Ana", MemberBirthDate: &bad}
	_, err := req.ToModel(uuid.New())
	assert.Error(t, err)
}

func TestUpdateMemberApply(t *testing.T) {
	phone := "+55 11 9999"
	m := model.MemberModel{MemberName: "Ana", MemberRole: "member", MemberStatus: "visitor", MemberPhone: &phone}

	var req UpdateMemberRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"member_status":"active","member_phone":null,"member_birth_date":"1990-05-01"}`), &req))
	require.NoError(t, req.Apply(&m))

	assert.Equal(t, "active", m.MemberStatus)
	assert.Nil(t, m.MemberPhone)
	assert.Equal(t, "Ana", m.MemberName)
	require.NotNil(t, m.MemberBirthDate)
	assert.Equal(t, "1990-05-01", *formatDate(m.MemberBirthDate))
}

func TestUpdateMemberRejectsBadEnums(t *testing.T) {
	m := model.MemberModel{MemberName: "Ana"}

	var req UpdateMemberRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"member_role":"bishop"}`), &req))
	assert.Error(t, req.Apply(&m))

	req = UpdateMemberRequest{}
	require.NoError(t, sonic.Unmarshal([]byte(`{"member_status":null}`), &req))
	assert.Error(t, req.Apply(&m))
}
