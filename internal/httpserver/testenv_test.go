package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_orders/internal/auth"
	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/internal/repo"
	"github.com/Skotchmaster/shop_orders/internal/service"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Authn  *auth.Authenticator
	Orders *OrderHTTP
	Auth   *AuthHTTP
}

func initTestDB(t *testing.T) *gorm.DB {
	// Same schema rules as production: no FK between items and products.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

// newTestEnv wires the handlers against an in-memory database and a nil
// event producer (publishing is a no-op without brokers).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)

	authn, err := auth.New([]byte("test-jwt-secret"), time.Hour)
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}

	return &testEnv{
		T:     t,
		E:     echo.New(),
		DB:    db,
		Authn: authn,
		Orders: &OrderHTTP{
			Svc:  &service.OrderService{Repo: r},
			Auth: authn,
		},
		Auth: &AuthHTTP{
			Svc: &service.AuthService{Repo: r, Auth: authn},
		},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		if ck != nil {
			req.AddCookie(ck)
		}
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) sessionCookie(userID uuid.UUID) *http.Cookie {
	token, exp, err := env.Authn.Issue(userID, "user")
	require.NoError(env.T, err)
	return auth.SessionCookie(token, exp)
}

func (env *testEnv) createUser(username string) *models.User {
	u := &models.User{Username: username, PasswordHash: "irrelevant", Role: "user"}
	require.NoError(env.T, env.DB.Create(u).Error)
	return u
}

func (env *testEnv) countOrders() int64 {
	var n int64
	require.NoError(env.T, env.DB.Model(&models.Order{}).Count(&n).Error)
	return n
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"shippingAddress": map[string]string{
			"name":       "John Doe",
			"street":     "1 Main St",
			"city":       "Springfield",
			"state":      "IL",
			"postalCode": "62701",
			"country":    "US",
			"phone":      "+1-555-0100",
		},
		"paymentMethod": "card",
		"items": []map[string]interface{}{
			{"product": "p1", "quantity": 2, "price": 10},
		},
		"totalAmount": 20,
	}
}
