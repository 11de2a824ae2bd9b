// Package testutil holds helpers shared by HTTP-level module tests.
package testutil

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	roles := []domain.UserRole{
		{BaseModel: domain.BaseModel{ID: domain.RoleAdmin}, Title: "Admin", Slug: "admin", Type: domain.UserTypeAdmin, IsSuperAdmin: true, Status: true},
		{BaseModel: domain.BaseModel{ID: domain.RoleUser}, Title: "User", Slug: "user", Type: domain.UserTypeUser, Status: true},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}

// CreateUser inserts a live user with the given role and password "secret1".
func CreateUser(t testing.TB, db *gorm.DB, name, email string, role uint) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	userType := domain.UserTypeUser
	if role == domain.RoleAdmin {
		userType = domain.UserTypeAdmin
	}
	user := &domain.User{
		Name:        name,
		Username:    name,
		Slug:        strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Email:       email,
		Password:    string(hash),
		UserGroupID: role,
		UserType:    userType,
		Status:      true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// Router returns a gin engine that treats every request as coming from user.
// A nil user makes the requests anonymous.
func Router(user *domain.User) *gin.Engine {
	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, user)
			c.Next()
		})
	}
	return r
}

// Response is the decoded JSON envelope.
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do sends a JSON request to h and decodes the envelope.
func Do(t testing.TB, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %s %s: %v (body %q)", method, path, err, w.Body.String())
	}
	return w, resp
}

// Data decodes the envelope's data field into T.
func Data[T any](t testing.TB, resp Response) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(resp.Data, &v); err != nil {
		t.Fatalf("decode data: %v (raw %s)", err, resp.Data)
	}
	return v
}

// StripeSignature builds a Stripe-Signature header value for payload signed
// with secret at ts.
func StripeSignature(secret string, payload []byte, ts time.Time) string {
	unix := ts.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", unix)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", unix, hex.EncodeToString(mac.Sum(nil)))
}
