package orders

import (
	"time"

	"github.com/angelmondragon/orderdesk/internal/customers"
	"github.com/angelmondragon/orderdesk/internal/products"
	"github.com/angelmondragon/orderdesk/pkg/db/models"
	"github.com/angelmondragon/orderdesk/pkg/types"
)

// ItemInput requests quantity units of a product.
type ItemInput struct {
	ProductID int64
	Quantity  int
}

// OrderInput is the payload for creating or replacing an order.
type OrderInput struct {
	CustomerID int64
	Items      []ItemInput
}

// OrderDTO is the API representation of an order with its items.
type OrderDTO struct {
	ID          int64                  `json:"id"`
	CustomerID  int64                  `json:"customerId"`
	Customer    *customers.CustomerDTO `json:"customer,omitempty"`
	OrderDate   time.Time              `json:"orderDate"`
	Items       []OrderItemDTO         `json:"orderItems"`
	TotalAmount types.Money            `json:"totalAmount"`
}

// OrderItemDTO is the API representation of an order line.
type OrderItemDTO struct {
	ID         int64                `json:"id"`
	OrderID    int64                `json:"orderId"`
	ProductID  int64                `json:"productId"`
	Product    *products.ProductDTO `json:"product,omitempty"`
	Quantity   int                  `json:"quantity"`
	UnitPrice  types.Money          `json:"unitPrice"`
	TotalPrice types.Money          `json:"totalPrice"`
}

func FromModel(m models.Order) OrderDTO {
	dto := OrderDTO{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		OrderDate:   m.OrderDate,
		Items:       make([]OrderItemDTO, 0, len(m.Items)),
		TotalAmount: types.NewMoney(m.TotalAmount()),
	}
	if m.Customer != nil {
		c := customers.FromModel(*m.Customer)
		dto.Customer = &c
	}
	for _, item := range m.Items {
		dto.Items = append(dto.Items, ItemFromModel(item))
	}
	return dto
}

func ItemFromModel(m models.OrderItem) OrderItemDTO {
	dto := OrderItemDTO{
		ID:         m.ID,
		OrderID:    m.OrderID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  types.NewMoney(m.UnitPrice),
		TotalPrice: types.NewMoney(m.TotalPrice()),
	}
	if m.Product != nil {
		p := products.FromModel(*m.Product)
		dto.Product = &p
	}
	return dto
}

func fromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}
