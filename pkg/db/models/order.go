package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root; it owns its items by value.
type Order struct {
	ID         int64       `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64       `gorm:"column:customer_id;not null;index"`
	Customer   *Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	OrderDate  time.Time   `gorm:"column:order_date;not null"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalAmount sums the items' totals. It is never stored.
func (o Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// AddItem attaches item to the order and points it back at the order id.
func (o *Order) AddItem(item OrderItem) {
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
}

// RemoveItem detaches the item with the given id and clears its order id.
// The detached item is returned; ok is false when no item matched.
func (o *Order) RemoveItem(itemID int64) (removed OrderItem, ok bool) {
	for i, item := range o.Items {
		if item.ID != itemID {
			continue
		}
		o.Items = append(o.Items[:i], o.Items[i+1:]...)
		item.OrderID = 0
		return item, true
	}
	return OrderItem{}, false
}
