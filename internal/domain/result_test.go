package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailstock/internal/domain"
)

func TestInvalid_AccumulatesMessages(t *testing.T) {
	res := domain.Invalid[bool]([]domain.FieldError{
		{Field: "productId", Message: "ProductId is required"},
		{Field: "quantity", Message: "Quantity must be greater than 0"},
	})

	failure, ok := res.(domain.Failure[bool])
	require.True(t, ok)
	assert.Equal(t, "ProductId is required; Quantity must be greater than 0", failure.Message)
	assert.Len(t, failure.Errors, 2)
}

func TestNewResponse_Success(t *testing.T) {
	body, err := json.Marshal(domain.NewResponse(domain.Ok(true)))
	require.NoError(t, err)

	assert.JSONEq(t, `{"isSuccess":true,"data":true,"error":null}`, string(body))
}

func TestNewResponse_Failure(t *testing.T) {
	body, err := json.Marshal(domain.NewResponse(domain.Fail[bool]("Error updating product stock: insufficient inventory")))
	require.NoError(t, err)

	assert.JSONEq(t, `{"isSuccess":false,"data":null,"error":"Error updating product stock: insufficient inventory"}`, string(body))
}

func TestNewInventoryItem_UnknownProduct(t *testing.T) {
	item := domain.NewInventoryItem(domain.InventoryRecord{ID: "INV1", ProductID: "PROD404", StoreID: "S1", Quantity: 2, MinimumStock: 5})
	assert.Equal(t, domain.UnknownProductName, item.ProductName)

	item = domain.NewInventoryItem(domain.InventoryRecord{ProductID: "PROD001", ProductName: "Laptop HP Pavilion"})
	assert.Equal(t, "Laptop HP Pavilion", item.ProductName)
}

func TestIsLowStock_IsStrict(t *testing.T) {
	assert.True(t, domain.InventoryRecord{Quantity: 3, MinimumStock: 5}.IsLowStock())
	assert.False(t, domain.InventoryRecord{Quantity: 5, MinimumStock: 5}.IsLowStock())
	assert.False(t, domain.InventoryRecord{Quantity: 8, MinimumStock: 5}.IsLowStock())
}
