package utils

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/wenixstore/wenix-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const orderSyncTimeout = 5 * time.Second

type orderSyncProduct struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Qty   uint    `json:"qty"`
	Price float64 `json:"price"`
}

type orderSyncPayload struct {
	OrderID  uint               `json:"order_id"`
	User     string             `json:"user"`
	Name     string             `json:"name"`
	Surname  string             `json:"surname"`
	Phone    string             `json:"phone"`
	Total    float64            `json:"total"`
	Products []orderSyncProduct `json:"products"`
}

// NotifyOrderCreated pushes a committed order to the external order API.
// The call is best-effort: one attempt with a short timeout, and every
// failure is swallowed so it can never surface to the customer or undo the
// order. Each attempt is recorded in OrderSyncLog.
func NotifyOrderCreated(db *gorm.DB, order *models.Order, username string) {
	apiURL := os.Getenv("ORDER_SYNC_URL")
	if apiURL == "" {
		log.Println("ORDER_SYNC_URL is not set, skipping order sync.")
		return
	}

	payload := orderSyncPayload{
		OrderID:  order.ID,
		User:     username,
		Name:     order.Name,
		Surname:  order.Surname,
		Phone:    order.Phone,
		Total:    order.Total.InexactFloat64(),
		Products: []orderSyncProduct{},
	}
	for _, item := range order.Items {
		p := orderSyncProduct{Qty: item.Qty, Price: item.Price.InexactFloat64()}
		if item.Product != nil {
			p.ID = item.Product.ID
			p.Title = item.Product.Title
		} else if item.ProductID != nil {
			p.ID = *item.ProductID
		}
		payload.Products = append(payload.Products, p)
	}

	syncLog := models.OrderSyncLog{OrderID: order.ID, URL: apiURL}
	if raw, err := json.Marshal(payload); err == nil {
		syncLog.Payload = datatypes.JSON(raw)
	}

	resp, err := resty.New().SetTimeout(orderSyncTimeout).R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(apiURL)
	if err != nil {
		log.Println("Order sync failed:", err)
		syncLog.Error = err.Error()
	} else {
		syncLog.StatusCode = resp.StatusCode()
		if resp.IsError() {
			log.Printf("Order sync returned status %d for order %d", resp.StatusCode(), order.ID)
		}
	}

	if err := db.Create(&syncLog).Error; err != nil {
		log.Println("Failed to record order sync attempt:", err)
	}
}
