package controllers

import (
	"encoding/gob"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wenixstore/wenix-api/initializers"
	"github.com/wenixstore/wenix-api/models"
	"gorm.io/gorm"
)

func init() {
	// The cart lives inside the cookie session and rides through gob.
	gob.Register(map[string]int{})
}

type CartLine struct {
	Product  models.Product  `json:"product"`
	Qty      int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Ordered  bool            `json:"ordered"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// getSessionCart returns the cart mapping stored in the session, or an empty
// one. The mapping is product id (string) to requested quantity.
func getSessionCart(session sessions.Session) map[string]int {
	if v := session.Get(sessionCartKey); v != nil {
		if cart, ok := v.(map[string]int); ok {
			return cart
		}
	}
	return map[string]int{}
}

func saveSessionCart(session sessions.Session, cart map[string]int) error {
	session.Set(sessionCartKey, cart)
	return session.Save()
}

// mergeCartLine adds qty onto any existing entry for the product.
func mergeCartLine(cart map[string]int, productID string, qty int) {
	cart[productID] = cart[productID] + qty
}

// removeCartLine deletes the entry if present; unknown ids are a no-op.
func removeCartLine(cart map[string]int, productID string) {
	delete(cart, productID)
}

// BuildCartView resolves the session cart against live products. Entries
// whose product no longer exists are dropped silently. When userID is set,
// lines also carry whether the product appeared in the user's last order.
func BuildCartView(db *gorm.DB, cart map[string]int, userID uint) (CartView, error) {
	view := CartView{Items: []CartLine{}, Total: decimal.Zero}
	if len(cart) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(cart))
	for key := range cart {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}

	orderedIds := map[uint]bool{}
	if userID != 0 {
		var lastOrder models.Order
		err := db.Preload("Items").Where("user_id = ?", userID).
			Order("created_at desc").First(&lastOrder).Error
		if err == nil {
			for _, item := range lastOrder.Items {
				if item.ProductID != nil {
					orderedIds[*item.ProductID] = true
				}
			}
		}
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return view, err
	}

	for _, p := range products {
		qty := cart[strconv.FormatUint(uint64(p.ID), 10)]
		if qty <= 0 {
			continue
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		view.Items = append(view.Items, CartLine{
			Product:  p,
			Qty:      qty,
			Subtotal: subtotal,
			Ordered:  orderedIds[p.ID],
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}

// AddToCart merges the requested quantity into the session cart. Stock is not
// checked here; checkout is the only place that validates it.
func AddToCart(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	var body struct {
		Qty int `json:"qty"`
	}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
	}
	if body.Qty <= 0 {
		body.Qty = 1
	}

	session := sessions.Default(ctx)
	cart := getSessionCart(session)
	mergeCartLine(cart, strconv.Itoa(productId), body.Qty)
	if err := saveSessionCart(session, cart); err != nil {
		log.Println("Session save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": product.Title + " added to cart",
		"cart":    cart,
	})
}

// GetCart renders the cart. A ?remove=<id> query deletes that entry first,
// mirroring the storefront's remove link.
func GetCart(ctx *gin.Context) {
	session := sessions.Default(ctx)
	cart := getSessionCart(session)

	if rid := ctx.Query("remove"); rid != "" {
		removeCartLine(cart, rid)
		if err := saveSessionCart(session, cart); err != nil {
			log.Println("Session save error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
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

// currentUserID returns the session user id or zero for anonymous visitors.
func currentUserID(ctx *gin.Context) uint {
	session := sessions.Default(ctx)
	if v := session.Get(sessionUserKey); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
