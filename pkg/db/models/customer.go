package models

import "time"

// Customer is a buyer that owns orders.
type Customer struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Email       string    `gorm:"column:email;not null;uniqueIndex:customers_email_key"`
	PhoneNumber string    `gorm:"column:phone_number;not null;uniqueIndex:customers_phone_number_key"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
