package productControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Discount{}))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/products", CreateProduct(db))

	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProductFreeProduct(t *testing.T) {
	db := newTestDB(t)

	w := createProduct(t, db, `{"name":"freebie","price":"0.00","stock":5}`)
	require.Equal(t, http.StatusCreated, w.Code, "zero price is a valid price: %s", w.Body)

	var resp models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Price.IsZero())

	var stored models.Product
	require.NoError(t, db.Where("name = ?", "freebie").First(&stored).Error)
	assert.True(t, stored.Price.Equal(decimal.Zero))
	assert.Equal(t, 5, stored.Stock)
}

func TestCreateProductNegativePrice(t *testing.T) {
	db := newTestDB(t)

	w := createProduct(t, db, `{"name":"widget","price":"-1.00","stock":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProductDuplicateName(t *testing.T) {
	db := newTestDB(t)

	require.Equal(t, http.StatusCreated,
		createProduct(t, db, `{"name":"widget","price":"4.20","stock":5}`).Code)
	assert.Equal(t, http.StatusConflict,
		createProduct(t, db, `{"name":"widget","price":"4.20","stock":5}`).Code)
}
