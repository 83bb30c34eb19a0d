package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wenixstore/wenix-api/initializers"
	"github.com/wenixstore/wenix-api/models"
	"gorm.io/gorm"
)

// Wire representation of the order API, independent of the storage models.
type productSummary struct {
	ID    uint            `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type orderItemRepr struct {
	Product *productSummary `json:"product"`
	Qty     uint            `json:"qty"`
	Price   decimal.Decimal `json:"price"`
}

type orderRepr struct {
	ID        uint            `json:"id"`
	User      uint            `json:"user"`
	Name      string          `json:"name"`
	Surname   string          `json:"surname"`
	Phone     string          `json:"phone"`
	CreatedAt time.Time       `json:"created_at"`
	Total     decimal.Decimal `json:"total"`
	Items     []orderItemRepr `json:"items"`
}

func serializeOrder(order models.Order) orderRepr {
	repr := orderRepr{
		ID:        order.ID,
		User:      order.UserID,
		Name:      order.Name,
		Surname:   order.Surname,
		Phone:     order.Phone,
		CreatedAt: order.CreatedAt,
		Total:     order.Total,
		Items:     []orderItemRepr{},
	}
	for _, item := range order.Items {
		itemRepr := orderItemRepr{Qty: item.Qty, Price: item.Price}
		if item.Product != nil {
			itemRepr.Product = &productSummary{
				ID:    item.Product.ID,
				Title: item.Product.Title,
				Price: item.Product.Price,
			}
		}
		repr.Items = append(repr.Items, itemRepr)
	}
	return repr
}

// GetOrders returns every order, newest first, with nested items and product
// summaries.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order
	result := initializers.DB.Preload("Items.Product").Order("created_at desc").Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	reprs := make([]orderRepr, 0, len(orders))
	for _, order := range orders {
		reprs = append(reprs, serializeOrder(order))
	}
	ctx.JSON(http.StatusOK, reprs)
}

type orderIngest struct {
	User    uint            `json:"user" binding:"required"`
	Name    string          `json:"name" binding:"required"`
	Surname string          `json:"surname"`
	Phone   string          `json:"phone" binding:"required"`
	Total   decimal.Decimal `json:"total"`
}

func bindingFieldErrors(err error) map[string][]string {
	fieldErrors := map[string][]string{}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			field := strings.ToLower(fe.Field())
			fieldErrors[field] = append(fieldErrors[field], "This field is required.")
		}
	} else {
		fieldErrors["non_field_errors"] = []string{"Invalid payload."}
	}
	return fieldErrors
}

// CreateOrderViaAPI persists an externally supplied order. This path does not
// run the checkout stock check or total computation; the payload is taken as
// submitted.
func CreateOrderViaAPI(ctx *gin.Context) {
	var ingest orderIngest
	if err := ctx.ShouldBindJSON(&ingest); err != nil {
		ctx.JSON(http.StatusBadRequest, bindingFieldErrors(err))
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, ingest.User).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"user": []string{"Invalid user."},
			})
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to validate user", err)
		return
	}

	order := models.Order{
		Reference: uuid.NewString(),
		UserID:    ingest.User,
		Name:      ingest.Name,
		Surname:   ingest.Surname,
		Phone:     ingest.Phone,
		Total:     ingest.Total,
	}
	if err := initializers.DB.Create(&order).Error; err != nil {
		log.Println("Order ingest error:", err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	ctx.JSON(http.StatusCreated, serializeOrder(order))
}
