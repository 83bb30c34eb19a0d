package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Order struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Reference string          `gorm:"size:64;index" json:"reference"`
	UserID    uint            `json:"userId"`
	User      *User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string          `gorm:"size:120" json:"name"`
	Surname   string          `gorm:"size:120" json:"surname"`
	Phone     string          `gorm:"size:30" json:"phone"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots quantity and unit price at purchase time. Price is
// never recomputed from the live product.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `json:"orderId"`
	ProductID *uint           `json:"productId"`
	Product   *Product        `gorm:"constraint:OnDelete:SET NULL" json:"product,omitempty"`
	Qty       uint            `json:"qty"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}

// OrderSyncLog records each best-effort attempt to push an order to the
// external order API. Failures stay here and never reach the customer.
type OrderSyncLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	OrderID    uint           `gorm:"index" json:"orderId"`
	URL        string         `gorm:"size:255" json:"url"`
	Payload    datatypes.JSON `json:"payload"`
	StatusCode int            `json:"statusCode"`
	Error      string         `gorm:"size:255" json:"error"`
	CreatedAt  time.Time      `json:"createdAt"`
}
