package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestValidPassword(t *testing.T) {
	assert.True(t, validPassword("abcdef12"))
	assert.True(t, validPassword("1a2b3c4d5e"))
	assert.False(t, validPassword("short1a"), "under 8 characters")
	assert.False(t, validPassword("abcdefgh"), "no digits")
	assert.False(t, validPassword("12345678"), "no letters")
	assert.False(t, validPassword("abc123!@#"), "only letters and digits allowed")
	assert.False(t, validPassword("abc 1234"), "spaces are not allowed")
}

func TestLoginHandlerLockout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22x"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username:     "eve",
		Email:        "eve@example.com",
		PasswordHash: string(hash),
	}).Error)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	th := NewMemoryThrottle()
	th.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/auth/login", LoginHandler(db, th))

	login := func(password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(LoginRequest{Username: "eve", Password: password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, login("wrong-pass1").Code)
	assert.Equal(t, http.StatusUnauthorized, login("wrong-pass1").Code)
	assert.Equal(t, http.StatusForbidden, login("wrong-pass1").Code, "third failure locks")

	// Correct credentials are still rejected while locked.
	assert.Equal(t, http.StatusForbidden, login("hunter22x").Code)

	// After the lock expires the correct password gets in.
	now = now.Add(6 * time.Minute)
	w := login("hunter22x")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// The success reset the counter: a single new failure does not lock.
	assert.Equal(t, http.StatusUnauthorized, login("wrong-pass1").Code)
}
