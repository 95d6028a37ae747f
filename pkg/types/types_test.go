package types

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyJSON(t *testing.T) {
	raw, err := json.Marshal(NewMoney(decimal.NewFromInt(20)))
	require.NoError(t, err)
	assert.Equal(t, `"20.00"`, string(raw))

	var fromNumber, fromString Money
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"12.50"`), &fromString))
	assert.True(t, fromNumber.Equal(fromString.Decimal))

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &bad))
}

func TestEnvelopeShape(t *testing.T) {
	raw, err := json.Marshal(Success(http.StatusOK, map[string]int{"id": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":1},"code":200,"errorMessage":null}`, string(raw))

	raw, err = json.Marshal(Failure(http.StatusNotFound, "Order not found with ID: 3", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"data":null,"code":404,"errorMessage":"Order not found with ID: 3"}`, string(raw))
}
