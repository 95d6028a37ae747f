package suppliers

import "github.com/angelmondragon/orderdesk/pkg/db/models"

// SupplierDTO is the API representation of a supplier.
type SupplierDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Input carries the validated fields for create and update.
type Input struct {
	Name        string
	Email       string
	PhoneNumber string
}

// FromModel maps a stored supplier to its DTO.
func FromModel(m models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
}
