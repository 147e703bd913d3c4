package categoryControllers_test

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

func seedUser(t *testing.T, st *memory.Store, id string, role int) string {
	t.Helper()
	u := &models.User{ID: id, Name: id, Email: id + "@example.com", Role: role}
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

func TestCreateCategoryTrimsName(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "admin", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/category/create/admin", token, gin.H{"name": "  Books  "})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data models.Category `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Name != "Books" {
		t.Fatalf("expected trimmed name, got %q", body.Data.Name)
	}

	stored, err := st.Categories().GetByID(context.Background(), body.Data.ID)
	if err != nil {
		t.Fatalf("category not persisted: %v", err)
	}
	if stored.Name != "Books" {
		t.Fatalf("stored name not trimmed: %q", stored.Name)
	}
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "u1", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/category/create/u1", token, gin.H{"name": "Books"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "admin", models.RoleAdmin)

	if w := doJSON(t, r, http.MethodPost, "/api/category/create/admin", token, gin.H{"name": "Books"}); w.Code != http.StatusOK {
		t.Fatalf("first create failed: %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/api/category/create/admin", token, gin.H{"name": "Books"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Name already exists" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestCategoryNameTooLong(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "admin", models.RoleAdmin)

	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	w := doJSON(t, r, http.MethodPost, "/api/category/create/admin", token, gin.H{"name": string(long)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestReadUpdateDeleteCategory(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "admin", models.RoleAdmin)

	if err := st.Categories().Create(context.Background(), &models.Category{ID: "c1", Name: "Books"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/category/c1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("read: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/category/c1/admin", token, gin.H{"name": "Novels"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated, _ := st.Categories().GetByID(context.Background(), "c1")
	if updated.Name != "Novels" {
		t.Fatalf("expected renamed category, got %q", updated.Name)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/category/c1/admin", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if _, err := st.Categories().GetByID(context.Background(), "c1"); err == nil {
		t.Fatal("category should be gone")
	}

	w = doJSON(t, r, http.MethodGet, "/api/category/c1", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("read missing: expected 400, got %d", w.Code)
	}
}

func TestListCategories(t *testing.T) {
	r, st := newTestServer(t)

	ctx := context.Background()
	_ = st.Categories().Create(ctx, &models.Category{ID: "c1", Name: "Books"})
	_ = st.Categories().Create(ctx, &models.Category{ID: "c2", Name: "Games"})

	w := doJSON(t, r, http.MethodGet, "/api/categories", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var categories []models.Category
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
}
