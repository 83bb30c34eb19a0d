package initializers

import (
	"log"

	"github.com/wenixstore/wenix-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.OrderSyncLog{})
	log.Println("Database synced successfully.")
}
