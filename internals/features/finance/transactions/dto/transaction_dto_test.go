package dto

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionToModel(t *testing.T) {
	church := uuid.New()
	m, err := CreateTransactionRequest{Type: "income", AmountCents: 1500, OccurredOn: "2026-03-01"}.ToModel(church, nil)
	require.NoError(t, err)
	assert.Equal(t, "cash", m.TransactionMethod)
	assert.Equal(t, 2026, m.TransactionOccurredOn.Year())

	_, err = CreateTransactionRequest{Type: "income", AmountCents: 1, OccurredOn: "01/03/2026"}.ToModel(church, nil)
	assert.Error(t, err)
}

func TestUpdateTransactionApply(t *testing.T) {
	m, err := CreateTransactionRequest{Type: "expense", AmountCents: 900, OccurredOn: "2026-03-01"}.ToModel(uuid.New(), nil)
	require.NoError(t, err)

	var req UpdateTransactionRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"transaction_amount_cents":0}`), &req))
	assert.Error(t, req.Apply(m))

	req = UpdateTransactionRequest{}
	require.NoError(t, sonic.Unmarshal([]byte(`{"transaction_method":"pix","transaction_description":"rent"}`), &req))
	m.TransactionAmountCents = 900
	require.NoError(t, req.Apply(m))
	assert.Equal(t, "pix", m.TransactionMethod)
	require.NotNil(t, m.TransactionDescription)
	assert.Equal(t, "rent", *m.TransactionDescription)

	req = UpdateTransactionRequest{}
	require.NoError(t, sonic.Unmarshal([]byte(`{"transaction_method":"bitcoin"}`), &req))
	assert.Error(t, req.Apply(m))
}
