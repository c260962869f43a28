package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/billing/planchanges/model"
)

func TestDecisionMail(t *testing.T) {
	addr := "office@grace.org"
	note := "Welcome to Growth"

	t.Run("no e-mail on file", func(t *testing.T) {
		assert.Nil(t, DecisionMail("Grace", nil, model.PlanChangeModel{}, "Growth"))
		empty := ""
		assert.Nil(t, DecisionMail("Grace", &empty, model.PlanChangeModel{}, "Growth"))
	})

	t.Run("approved with note", func(t *testing.T) {
		msg := DecisionMail("Grace", &addr, model.PlanChangeModel{
			PlanChangeStatus: model.StatusApproved,
			PlanChangeNote:   &note,
		}, "Growth")
		require.NotNil(t, msg)
		assert.Equal(t, "Plan change approved", msg.Subject)
		assert.Contains(t, msg.TextContent, "Growth plan was approved")
		assert.Contains(t, msg.TextContent, note)
		require.Len(t, msg.To, 1)
		assert.Equal(t, addr, msg.To[0].Address)
	})

	t.Run("rejected", func(t *testing.T) {
		msg := DecisionMail("Grace", &addr, model.PlanChangeModel{PlanChangeStatus: model.StatusRejected}, "Network")
		require.NotNil(t, msg)
		assert.Equal(t, "Plan change rejected", msg.Subject)
		assert.NotContains(t, msg.TextContent, "Note:")
	})
}
