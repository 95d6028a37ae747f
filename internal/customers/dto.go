package customers

import "github.com/angelmondragon/orderdesk/pkg/db/models"

// CustomerDTO is the API representation of a customer.
type CustomerDTO struct {
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

// FromModel maps a stored customer to its DTO.
func FromModel(m models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
}
