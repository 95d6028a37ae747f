package models

import "time"

// User is a named contact with unique email and phone.
type User struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName   string    `gorm:"column:first_name;not null"`
	LastName    string    `gorm:"column:last_name;not null"`
	Email       string    `gorm:"column:email;not null;uniqueIndex:users_email_key"`
	PhoneNumber string    `gorm:"column:phone_number;not null;uniqueIndex:users_phone_number_key"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
