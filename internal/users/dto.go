package users

import "github.com/angelmondragon/orderdesk/pkg/db/models"

// UserDTO is the API representation of a user.
type UserDTO struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Input is a full replacement of a user's fields.
type Input struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// PatchInput holds optional fields; nil leaves the stored value as is.
type PatchInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
}

// apply merges the patch over current and returns the resulting full input.
func (p PatchInput) apply(current models.User) Input {
	out := Input{
		FirstName:   current.FirstName,
		LastName:    current.LastName,
		Email:       current.Email,
		PhoneNumber: current.PhoneNumber,
	}
	if p.FirstName != nil {
		out.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		out.LastName = *p.LastName
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		out.PhoneNumber = *p.PhoneNumber
	}
	return out
}

func FromModel(m models.User) UserDTO {
	return UserDTO{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
}
