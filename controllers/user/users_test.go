package userControllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	authControllers "github.com/shoporia/ecommerce-api/controllers/auth"
	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/routes"
	"github.com/shoporia/ecommerce-api/store/memory"
)

var testConfig = &config.Config{JWTSecret: "testsecret"}

func newTestServer(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := memory.New()
	r := gin.New()
	routes.SetupRoutes(r, st, testConfig)
	return r, st
}

func seedUser(t *testing.T, st *memory.Store, id string) string {
	t.Helper()
	u := &models.User{ID: id, Name: id, Email: id + "@example.com", About: "hi"}
	u.SetPassword("secret1")
	if err := st.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	token, err := authControllers.IssueToken(testConfig, id)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReadProfile(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/user/alice", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["_id"] != "alice" || raw["email"] != "alice@example.com" {
		t.Fatalf("unexpected profile %v", raw)
	}
	for _, k := range []string{"hashed_password", "salt", "password"} {
		if _, ok := raw[k]; ok {
			t.Fatalf("profile must not expose %q", k)
		}
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "alice")

	w := doJSON(t, r, http.MethodPut, "/api/user/alice", token, gin.H{"about": "updated"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	stored, _ := st.Users().GetByID(context.Background(), "alice")
	if stored.About != "updated" {
		t.Fatalf("about not updated: %q", stored.About)
	}
	if stored.Name != "alice" {
		t.Fatalf("absent fields must not change: %q", stored.Name)
	}
	if !stored.Authenticate("secret1") {
		t.Fatal("password should be untouched")
	}
}

func TestUpdateProfilePassword(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "alice")

	w := doJSON(t, r, http.MethodPut, "/api/user/alice", token, gin.H{"password": "newpass9"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	stored, _ := st.Users().GetByID(context.Background(), "alice")
	if !stored.Authenticate("newpass9") {
		t.Fatal("new password should authenticate")
	}
	if stored.Authenticate("secret1") {
		t.Fatal("old password should no longer authenticate")
	}
}

func TestUpdateProfileRejectsWeakPassword(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "alice")

	w := doJSON(t, r, http.MethodPut, "/api/user/alice", token, gin.H{"password": "abcdef"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	stored, _ := st.Users().GetByID(context.Background(), "alice")
	if !stored.Authenticate("secret1") {
		t.Fatal("failed update must not change the password")
	}
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "alice")

	w := doJSON(t, r, http.MethodPut, "/api/user/alice", token, gin.H{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPurchaseHistoryListsOwnOrders(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "alice")
	seedUser(t, st, "bob")

	ctx := context.Background()
	_ = st.Orders().Create(ctx, &models.Order{ID: "o1", UserID: "alice", Status: models.OrderStatusNotProcessed})
	_ = st.Orders().Create(ctx, &models.Order{ID: "o2", UserID: "bob", Status: models.OrderStatusNotProcessed})

	w := doJSON(t, r, http.MethodGet, "/api/orders/by/user/alice", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var orders []models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("expected only alice's orders, got %+v", orders)
	}
}
