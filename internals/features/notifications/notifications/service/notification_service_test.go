package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/notifications/notifications/model"
)

func ptr[T any](v T) *T { return &v }

func TestParseChannels(t *testing.T) {
	got, err := ParseChannels(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"in_app"}, got)

	got, err = ParseChannels([]string{"Email", "in_app", "email"})
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "in_app"}, got)

	_, err = ParseChannels([]string{"sms"})
	assert.Error(t, err)
}

func TestBuildFanout(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	n := model.NotificationModel{
		NotificationTitle:    "Retreat",
		NotificationBody:     "Saturday 9am",
		NotificationChannels: []string{"in_app", "email", "whatsapp"},
	}
	recipients := []Recipient{
		{MemberName: "Ana", MemberUserID: &u1, MemberEmail: ptr("ana@example.com"), MemberPhone: ptr("5511999990000")},
		{MemberName: "Bia", MemberUserID: &u2},
		{MemberName: "Caio", MemberEmail: ptr("  ")},
		{MemberName: "Ana again", MemberUserID: &u1},
	}
	f := BuildFanout(n, recipients, "Grace")

	assert.Equal(t, []uuid.UUID{u1, u2}, f.UserIDs)
	require.Len(t, f.Emails, 1)
	assert.Equal(t, "[Grace] Retreat", f.Emails[0].Subject)
	assert.Equal(t, "ana@example.com", f.Emails[0].To[0].Address)
	assert.Equal(t, []string{"5511999990000"}, f.Phones)
}

func TestBuildFanoutInAppOnly(t *testing.T) {
	u := uuid.New()
	n := model.NotificationModel{NotificationChannels: []string{"in_app"}}
	f := BuildFanout(n, []Recipient{{MemberUserID: &u, MemberEmail: ptr("x@example.com"), MemberPhone: ptr("5511999990000")}}, "C")
	assert.Len(t, f.UserIDs, 1)
	assert.Empty(t, f.Emails)
	assert.Empty(t, f.Phones)
}
