package products

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderdesk/pkg/db/models"
	"github.com/angelmondragon/orderdesk/pkg/types"
)

// ProductDTO is the API representation of a product.
type ProductDTO struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	UnitPrice types.Money `json:"unitPrice"`
}

// Input carries the validated fields for create and update.
type Input struct {
	Name      string
	UnitPrice decimal.Decimal
}

func FromModel(m models.Product) ProductDTO {
	return ProductDTO{
		ID:        m.ID,
		Name:      m.Name,
		UnitPrice: types.NewMoney(m.UnitPrice.Round(2)),
	}
}
