package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false"   json:"is_admin"`
}

type Product struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"not null"                 json:"name"`
	Brand        string  `gorm:"not null"                 json:"brand"`
	Price        float64 `gorm:"not null;check:price > 0" json:"price"`
	Description  string  `json:"description"`
	ImageURL     string  `gorm:"not null"                 json:"image_url"`
	Thumb1       *string `json:"thumb1,omitempty"`
	Thumb2       *string `json:"thumb2,omitempty"`
	Thumb3       *string `json:"thumb3,omitempty"`
	Thumb4       *string `json:"thumb4,omitempty"`
	IsFeatured   bool    `gorm:"not null;default:false"   json:"is_featured"`
	IsNewArrival bool    `gorm:"not null;default:false"   json:"is_new_arrival"`
}

// Banner is a homepage hero. At most one row has IsActive set.
type Banner struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string `gorm:"not null"                 json:"title"`
	Subtitle   string `json:"subtitle"`
	Details    string `json:"details"`
	ButtonText string `json:"button_text"`
	ButtonLink string `json:"button_link"`
	ImageURL   string `gorm:"not null"                 json:"image_url"`
	IsActive   bool   `gorm:"not null;default:false"   json:"is_active"`
}

type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Subject   string    `gorm:"not null"                 json:"subject"`
	Message   string    `gorm:"not null"                 json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
