package dto

import (
	"fmt"

	"github.com/google/uuid"

	"ecclesia_backend/internals/features/billing/planchanges/model"
	"ecclesia_backend/internals/helpers/email"
)

type CreatePlanChangeRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
	Reason *string   `json:"reason" validate:"omitempty,max=1000"`
}

type DecideRequest struct {
	Note *string `json:"note" validate:"omitempty,max=1000"`
}

// DecisionMail is nil when the church has no e-mail on file.
func DecisionMail(churchName string, churchEmail *string, pc model.PlanChangeModel, planName string) *email.EmailMessage {
	if churchEmail == nil || *churchEmail == "" {
		return nil
	}
	verb := "approved"
	if pc.PlanChangeStatus == model.StatusRejected {
		verb = "rejected"
	}
	body := fmt.Sprintf("Hello %s,\n\nYour request to change to the %s plan was %s.", churchName, planName, verb)
	if pc.PlanChangeNote != nil && *pc.PlanChangeNote != "" {
		body += "\n\nNote: " + *pc.PlanChangeNote
	}
	return email.NewMessage(churchName, *churchEmail, "Plan change "+verb, body)
}
