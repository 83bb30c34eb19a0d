package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/wenixstore/wenix-api/initializers"
	"github.com/wenixstore/wenix-api/middlewares"
	"github.com/wenixstore/wenix-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.OrderSyncLog{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, title, price string, stock uint) models.Product {
	t.Helper()
	product := models.Product{
		Title: title,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     "user",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// newTestServer wires the full router against the given test database.
func newTestServer(db *gorm.DB) *gin.Engine {
	initializers.DB = db
	server := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	server.Use(sessions.Sessions("wenix_session", store))

	// Mirror the route registration from routes/ (the routes package depends
	// on this one, so the handlers are wired directly here).
	server.GET("/", GetHome)
	server.GET("/search", SearchProducts)
	server.POST("/register", Register)
	server.POST("/login", Login)
	server.POST("/logout", Logout)
	server.GET("/products", GetProducts)
	server.GET("/product/:id", GetProduct)
	server.POST("/product/:id", AddToCart)
	server.GET("/cart", GetCart)
	server.GET("/checkout", middlewares.RequireAuth(), GetCheckout)
	server.POST("/checkout", middlewares.RequireAuth(), Checkout)
	server.GET("/api/orders", GetOrders)
	server.POST("/api/orders", CreateOrderViaAPI)

	admin := server.Group("/admin", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.POST("/products", CreateProduct)
		admin.POST("/categories", CreateCategory)
		admin.POST("/products/:id/image", UploadProductImage)
	}
	return server
}

func doRequest(server *gin.Engine, method, target, body string, cookies []string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func sessionCookies(rec *httptest.ResponseRecorder) []string {
	cookies := []string{}
	for _, c := range rec.Result().Cookies() {
		cookies = append(cookies, c.Name+"="+c.Value)
	}
	return cookies
}

func registerUser(t *testing.T, server *gin.Engine, username string) []string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"secret123"}`, username, username)
	rec := doRequest(server, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookies(rec)
}
