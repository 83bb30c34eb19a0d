package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:120" json:"name" binding:"required"`
	Slug string `gorm:"uniqueIndex;size:140" json:"slug"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  *uint           `json:"categoryId"`
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Title       string          `gorm:"size:255" json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price" binding:"required"`
	Image       string          `json:"image"`
	Stock       uint            `json:"stock"`
	IsNew       bool            `json:"isNew"`
	CreatedAt   time.Time       `json:"createdAt"`
}
