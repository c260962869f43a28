package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memberModel "ecclesia_backend/internals/features/members/members/model"
	"ecclesia_backend/internals/helpers/email"
)

func TestCheckCapacity(t *testing.T) {
	assert.NoError(t, CheckCapacity(1000, 0))
	assert.NoError(t, CheckCapacity(49, 50))
	assert.Error(t, CheckCapacity(50, 50))
	assert.Error(t, CheckCapacity(51, 50))
}

func TestWelcomeMessage(t *testing.T) {
	addr := "ana@example.com"
	m := memberModel.MemberModel{MemberID: uuid.New(), MemberName: "Ana", MemberEmail: &addr}

	msg := WelcomeMessage(m, "Grace Church")
	require.NotNil(t, msg)
	assert.Contains(t, msg.Subject, "Grace Church")
	assert.Contains(t, msg.TextContent, "Ana")

	m.MemberEmail = nil
	assert.Nil(t, WelcomeMessage(m, "Grace Church"))
}

func TestSendWelcomeRecordsMessage(t *testing.T) {
	addr := "ana@example.com"
	rec := &email.Recorder{}
	SendWelcome(rec, memberModel.MemberModel{MemberName: "Ana", MemberEmail: &addr}, "Grace")
	assert.Len(t, rec.Messages(), 1)
	SendWelcome(nil, memberModel.MemberModel{}, "Grace")
}
