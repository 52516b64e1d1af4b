package cartControllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storelane/storefront-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One shared in-memory database per test; a second pooled connection
	// would see its own empty one.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Balance:      decimal.Zero,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Stock
}

func TestAddToCartAccumulates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "widget", "4.20", 10)

	_, err := AddToCart(db, user.ID, AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = AddToCart(db, user.ID, AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1, "repeat adds merge into a single row")
	assert.Equal(t, 5, items[0].Quantity)

	assert.Equal(t, 5, productStock(t, db, product.ID), "stock decreases by the accumulated quantity")
}

func TestAddToCartInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "widget", "4.20", 3)

	_, err := AddToCart(db, user.ID, AddToCartRequest{ProductID: product.ID, Quantity: 4})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count, "rejected add leaves no cart row")
	assert.Equal(t, 3, productStock(t, db, product.ID))

	// The reserved quantity counts against later adds.
	_, err = AddToCart(db, user.ID, AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = AddToCart(db, user.ID, AddToCartRequest{ProductID: product.ID, Quantity: 2})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")

	_, err := AddToCart(db, user.ID, AddToCartRequest{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveFromCartReleasesStock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "widget", "4.20", 10)

	_, err := AddToCart(db, user.ID, AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 7, productStock(t, db, product.ID))

	require.NoError(t, RemoveFromCart(db, user.ID, product.ID, false))
	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 8, productStock(t, db, product.ID))

	require.NoError(t, RemoveFromCart(db, user.ID, product.ID, true))
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 10, productStock(t, db, product.ID), "all reserved stock released")
}

func TestRemoveFromCartMissingEntry(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "widget", "4.20", 10)

	err := RemoveFromCart(db, user.ID, product.ID, true)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	assert.Equal(t, 10, productStock(t, db, product.ID), "no rows changed")
}

func TestClearCartReleasesAllStock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	widget := seedProduct(t, db, "widget", "4.20", 10)
	gadget := seedProduct(t, db, "gadget", "3.00", 5)

	_, err := AddToCart(db, user.ID, AddToCartRequest{ProductID: widget.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = AddToCart(db, user.ID, AddToCartRequest{ProductID: gadget.ID, Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, ClearCart(db, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 10, productStock(t, db, widget.ID))
	assert.Equal(t, 5, productStock(t, db, gadget.ID))

	// Clearing an empty cart is a no-op.
	assert.NoError(t, ClearCart(db, user.ID))
}

func TestCartContentsTotal(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	widget := seedProduct(t, db, "widget", "4.20", 10)
	gadget := seedProduct(t, db, "gadget", "3.00", 5)

	_, err := AddToCart(db, user.ID, AddToCartRequest{ProductID: widget.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = AddToCart(db, user.ID, AddToCartRequest{ProductID: gadget.ID, Quantity: 2})
	require.NoError(t, err)

	items, total, err := CartContents(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, total.Equal(decimal.RequireFromString("10.20")),
		"total = 4.20 + 2*3.00, got %s", total)
}
