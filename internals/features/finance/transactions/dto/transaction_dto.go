package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecclesia_backend/internals/features/finance/transactions/model"
	helper "ecclesia_backend/internals/helpers"
)

const dateLayout = "2006-01-02"

type CreateTransactionRequest struct {
	Type        string     `json:"transaction_type" validate:"required,oneof=income expense"`
	CategoryID  *uuid.UUID `json:"transaction_category_id"`
	AmountCents int64      `json:"transaction_amount_cents" validate:"required,gt=0"`
	Description *string    `json:"transaction_description"`
	OccurredOn  string     `json:"transaction_occurred_on" validate:"required"`
	Method      string     `json:"transaction_method" validate:"omitempty,oneof=cash pix card transfer other"`
	MemberID    *uuid.UUID `json:"transaction_member_id"`
}

func (r CreateTransactionRequest) ToModel(churchID uuid.UUID, userID *uuid.UUID) (*model.TransactionModel, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(r.OccurredOn))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "transaction_occurred_on must be YYYY-MM-DD")
	}
	method := r.Method
	if method == "" {
		method = "cash"
	}
	return &model.TransactionModel{
		TransactionChurchID:        churchID,
		TransactionType:            r.Type,
		TransactionCategoryID:      r.CategoryID,
		TransactionAmountCents:     r.AmountCents,
		TransactionDescription:     r.Description,
		TransactionOccurredOn:      d,
		TransactionMethod:          method,
		TransactionMemberID:        r.MemberID,
		TransactionCreatedByUserID: userID,
	}, nil
}

type UpdateTransactionRequest struct {
	CategoryID  helper.PatchField[uuid.UUID] `json:"transaction_category_id"`
	AmountCents helper.PatchField[int64]     `json:"transaction_amount_cents"`
	Description helper.PatchField[string]    `json:"transaction_description"`
	OccurredOn  helper.PatchField[string]    `json:"transaction_occurred_on"`
	Method      helper.PatchField[string]    `json:"transaction_method"`
	MemberID    helper.PatchField[uuid.UUID] `json:"transaction_member_id"`
}

func (r UpdateTransactionRequest) Apply(m *model.TransactionModel) error {
	r.CategoryID.ApplyTo(&m.TransactionCategoryID)
	r.AmountCents.ApplyRequired(&m.TransactionAmountCents)
	r.Description.ApplyTo(&m.TransactionDescription)
	r.MemberID.ApplyTo(&m.TransactionMemberID)
	r.Method.ApplyRequired(&m.TransactionMethod)
	if v, ok := r.OccurredOn.Get(); ok && v != nil {
		d, err := time.Parse(dateLayout, strings.TrimSpace(*v))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_occurred_on must be YYYY-MM-DD")
		}
		m.TransactionOccurredOn = d
	}
	if m.TransactionAmountCents <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "transaction_amount_cents must be greater than zero")
	}
	if !validMethod(m.TransactionMethod) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid transaction_method")
	}
	return nil
}

func validMethod(m string) bool {
	for _, v := range model.Methods {
		if v == m {
			return true
		}
	}
	return false
}
