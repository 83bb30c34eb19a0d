package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wenixstore/wenix-api/models"
)

func TestMergeCartLineIsAdditive(t *testing.T) {
	cart := map[string]int{}
	mergeCartLine(cart, "7", 2)
	mergeCartLine(cart, "7", 3)
	assert.Equal(t, map[string]int{"7": 5}, cart)
}

func TestRemoveCartLineMissingIsNoOp(t *testing.T) {
	cart := map[string]int{"7": 2}
	removeCartLine(cart, "99")
	assert.Equal(t, map[string]int{"7": 2}, cart)

	removeCartLine(cart, "7")
	assert.Empty(t, cart)
}

func TestBuildCartViewTotals(t *testing.T) {
	db := setupTestDB(t)
	productA := seedProduct(t, db, "Notebook", "2.50", 10)
	productB := seedProduct(t, db, "Pen", "1.25", 10)

	cart := map[string]int{
		fmt.Sprint(productA.ID): 2,
		fmt.Sprint(productB.ID): 4,
	}
	view, err := BuildCartView(db, cart, 0)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("10.00")), "total was %s", view.Total)
	// Lines come back in product id order.
	assert.Equal(t, productA.ID, view.Items[0].Product.ID)
	assert.True(t, view.Items[0].Subtotal.Equal(decimal.RequireFromString("5.00")))
}

func TestBuildCartViewDropsDeletedProducts(t *testing.T) {
	db := setupTestDB(t)
	kept := seedProduct(t, db, "Mug", "8.00", 3)
	gone := seedProduct(t, db, "Poster", "4.00", 3)
	require.NoError(t, db.Delete(&models.Product{}, gone.ID).Error)

	cart := map[string]int{
		fmt.Sprint(kept.ID): 1,
		fmt.Sprint(gone.ID): 2,
	}
	view, err := BuildCartView(db, cart, 0)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, kept.ID, view.Items[0].Product.ID)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("8.00")))
}

func TestBuildCartViewMarksPreviouslyOrderedProducts(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "henry")
	product := seedProduct(t, db, "Lamp", "30.00", 5)

	cart := map[string]int{fmt.Sprint(product.ID): 1}
	_, err := PlaceOrder(db, user.ID, cart, ContactInfo{Name: "H", Surname: "I", Phone: "1"})
	require.NoError(t, err)

	view, err := BuildCartView(db, map[string]int{fmt.Sprint(product.ID): 2}, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].Ordered)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	server := newTestServer(db)

	rec := doRequest(server, http.MethodPost, "/product/999", `{"qty":1}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartRemoveQueryDeletesLine(t *testing.T) {
	db := setupTestDB(t)
	server := newTestServer(db)
	product := seedProduct(t, db, "Backpack", "60.00", 2)

	rec := doRequest(server, http.MethodPost, fmt.Sprintf("/product/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := sessionCookies(rec)

	rec = doRequest(server, http.MethodGet, fmt.Sprintf("/cart?remove=%d", product.ID), "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []CartLine `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
}
