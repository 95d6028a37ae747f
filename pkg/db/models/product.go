package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item with its current list price.
type Product struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;not null;uniqueIndex:products_name_key"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(19,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
