package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wenixstore/wenix-api/initializers"
	"github.com/wenixstore/wenix-api/models"
	"github.com/wenixstore/wenix-api/utils"
	"gorm.io/gorm"
)

// ContactInfo is the shipping contact snapshot submitted with the checkout
// form. All fields are required.
type ContactInfo struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
}

// InsufficientStockError reports the first cart line whose requested quantity
// exceeds the available stock.
type InsufficientStockError struct {
	ProductTitle string
	Remaining    uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s. Remaining: %d", e.ProductTitle, e.Remaining)
}

var ErrEmptyCart = errors.New("cart is empty")

// PlaceOrder converts a session cart into a persisted order inside one
// transaction: batch-load the products (ordered by id so a partial failure
// is deterministic), snapshot each line, decrement stock and accumulate the
// total. Any short line rolls the whole attempt back.
func PlaceOrder(db *gorm.DB, userID uint, cart map[string]int, info ContactInfo) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]uint, 0, len(cart))
	for key := range cart {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}

	order := models.Order{
		Reference: uuid.NewString(),
		UserID:    userID,
		Name:      info.Name,
		Surname:   info.Surname,
		Phone:     info.Phone,
		Total:     decimal.Zero,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
			return err
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for i := range products {
			p := &products[i]
			qty := cart[strconv.FormatUint(uint64(p.ID), 10)]
			if qty <= 0 {
				continue
			}

			if uint(qty) > p.Stock {
				return &InsufficientStockError{ProductTitle: p.Title, Remaining: p.Stock}
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: &p.ID,
				Qty:       uint(qty),
				Price:     p.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			item.Product = p
			order.Items = append(order.Items, item)

			p.Stock -= uint(qty)
			if err := tx.Save(p).Error; err != nil {
				return err
			}

			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}

		order.Total = total
		return tx.Model(&order).Update("total", total).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetCheckout shows the checkout summary for the logged-in user.
func GetCheckout(ctx *gin.Context) {
	session := sessions.Default(ctx)
	cart := getSessionCart(session)
	if len(cart) == 0 {
		ctx.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	view, err := BuildCartView(initializers.DB, cart, currentUserID(ctx))
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items": view.Items,
		"total": view.Total,
	})
}

// Checkout processes the submitted checkout form. On success the order is
// committed, the external order API is notified best-effort and the session
// cart is cleared.
func Checkout(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Login required")
		return
	}

	session := sessions.Default(ctx)
	cart := getSessionCart(session)
	if len(cart) == 0 {
		ctx.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	var info ContactInfo
	if err := ctx.ShouldBindJSON(&info); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	info.Name = strings.TrimSpace(info.Name)
	info.Surname = strings.TrimSpace(info.Surname)
	info.Phone = strings.TrimSpace(info.Phone)
	if info.Name == "" || info.Surname == "" || info.Phone == "" {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
			"message": "Name, surname and phone are required.",
			"name":    info.Name,
			"surname": info.Surname,
			"phone":   info.Phone,
		})
		return
	}

	order, err := PlaceOrder(initializers.DB, userID, cart, info)
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
				"message": stockErr.Error(),
				"name":    info.Name,
				"surname": info.Surname,
				"phone":   info.Phone,
			})
			return
		}
		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to place order")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		log.Println("Database error:", err)
	}

	// The order is committed; the sync call must never undo or block it.
	utils.NotifyOrderCreated(initializers.DB, order, user.Username)

	if err := saveSessionCart(session, map[string]int{}); err != nil {
		log.Println("Session save error:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully.",
		"order":   order,
	})
}
