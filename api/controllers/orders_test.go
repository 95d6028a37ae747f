package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk/internal/orders"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/types"
)

type stubOrderService struct {
	orders.Service
	input      *orders.OrderInput
	customerID int64
	err        error
}

func (s *stubOrderService) Create(_ context.Context, in orders.OrderInput) (*orders.OrderDTO, error) {
	s.input = &in
	if s.err != nil {
		return nil, s.err
	}
	if len(in.Items) == 0 {
		return nil, pkgerrors.Invalid(orders.EntityName, "Order must have at least one item")
	}
	return &orders.OrderDTO{
		ID:          10,
		CustomerID:  in.CustomerID,
		OrderDate:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Items:       []orders.OrderItemDTO{},
		TotalAmount: types.NewMoney(decimal.RequireFromString("25")),
	}, nil
}

func (s *stubOrderService) ListByCustomer(_ context.Context, customerID int64) ([]orders.OrderDTO, error) {
	s.customerID = customerID
	return []orders.OrderDTO{}, s.err
}

type stubItemService struct {
	orders.ItemService
	orderID int64
	input   *orders.ItemInput
	err     error
}

func (s *stubItemService) Add(_ context.Context, orderID int64, in orders.ItemInput) (*orders.OrderItemDTO, error) {
	s.orderID = orderID
	s.input = &in
	if s.err != nil {
		return nil, s.err
	}
	return &orders.OrderItemDTO{ID: 3, OrderID: orderID, ProductID: in.ProductID, Quantity: in.Quantity}, nil
}

func (s *stubItemService) Delete(context.Context, int64) error {
	return s.err
}

func TestCreateOrder(t *testing.T) {
	stub := &stubOrderService{}
	rec := serve(CreateOrder(stub, testLogger), http.MethodPost, "/api/orders",
		`{"customerId":1,"orderItems":[{"productId":2,"quantity":3},{"productId":4,"quantity":1}]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, int64(1), stub.input.CustomerID)
	assert.Equal(t, []orders.ItemInput{{ProductID: 2, Quantity: 3}, {ProductID: 4, Quantity: 1}}, stub.input.Items)

	data := string(decodeEnvelope(t, rec).Data)
	assert.Contains(t, data, `"totalAmount":"25.00"`)
	assert.Contains(t, data, `"orderItems":[]`)
}

func TestCreateOrderEmptyItemsReachesService(t *testing.T) {
	stub := &stubOrderService{}
	rec := serve(CreateOrder(stub, testLogger), http.MethodPost, "/api/orders", `{"customerId":1,"orderItems":[]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order validation error: Order must have at least one item", errorMessage(t, rec))
	require.NotNil(t, stub.input)
}

func TestCreateOrderPayloadValidation(t *testing.T) {
	stub := &stubOrderService{}
	rec := serve(CreateOrder(stub, testLogger), http.MethodPost, "/api/orders",
		`{"orderItems":[{"productId":2,"quantity":0},{"quantity":1}]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := fieldErrors(t, rec)
	assert.Equal(t, "Customer ID is required", fields["customerId"])
	assert.Equal(t, "Quantity must be at least 1", fields["orderItems[0].quantity"])
	assert.Equal(t, "Product is required", fields["orderItems[1].productId"])
	assert.Nil(t, stub.input)
}

func TestCreateOrderMissingCustomer(t *testing.T) {
	stub := &stubOrderService{err: pkgerrors.NotFound("Customer", 99)}
	rec := serve(CreateOrder(stub, testLogger), http.MethodPost, "/api/orders",
		`{"customerId":99,"orderItems":[{"productId":1,"quantity":1}]}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Customer not found with ID: 99", errorMessage(t, rec))
}

func TestListCustomerOrders(t *testing.T) {
	stub := &stubOrderService{}
	rec := serve(ListCustomerOrders(stub, testLogger), http.MethodGet, "/api/orders/customer/7", "", "customerId", "7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), stub.customerID)
	assert.Equal(t, "[]", string(decodeEnvelope(t, rec).Data))
}

func TestAddOrderItem(t *testing.T) {
	stub := &stubItemService{}
	rec := serve(AddOrderItem(stub, testLogger), http.MethodPost, "/api/order-items/order/5",
		`{"productId":8,"quantity":2}`, "orderId", "5")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(5), stub.orderID)
	assert.Equal(t, orders.ItemInput{ProductID: 8, Quantity: 2}, *stub.input)
}

func TestDeleteLastOrderItemRejected(t *testing.T) {
	stub := &stubItemService{err: pkgerrors.Invalid(orders.EntityName, "Order must have at least one item")}
	rec := serve(DeleteOrderItem(stub, testLogger), http.MethodDelete, "/api/order-items/3", "", "id", "3")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order validation error: Order must have at least one item", errorMessage(t, rec))
}
