package middleware_test

import (
	"context"
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

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSigninMissingToken(t *testing.T) {
	r, st := newTestServer(t)
	seedUser(t, st, "u1", models.RoleUser)

	if w := get(r, "/api/user/u1", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSigninBadToken(t *testing.T) {
	r, st := newTestServer(t)
	seedUser(t, st, "u1", models.RoleUser)

	if w := get(r, "/api/user/u1", "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSigninWrongSecret(t *testing.T) {
	r, st := newTestServer(t)
	seedUser(t, st, "u1", models.RoleUser)

	forged, err := authControllers.IssueToken(&config.Config{JWTSecret: "othersecret"}, "u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if w := get(r, "/api/user/u1", forged); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSigninCookieFallback(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "u1", models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/user/u1", nil)
	req.AddCookie(&http.Cookie{Name: "t", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d: %s", w.Code, w.Body.String())
	}
}

func TestIsAuthRejectsOtherUsersProfile(t *testing.T) {
	r, st := newTestServer(t)
	tokenA := seedUser(t, st, "alice", models.RoleUser)
	seedUser(t, st, "bob", models.RoleUser)

	if w := get(r, "/api/user/bob", tokenA); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestIsAuthUnknownUser(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "alice", models.RoleUser)

	if w := get(r, "/api/user/ghost", token); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestIsAdminRejectsRoleZero(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "u1", models.RoleUser)

	w := get(r, "/api/order/list/u1", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestIsAdminAllowsNonzeroRole(t *testing.T) {
	r, st := newTestServer(t)
	token := seedUser(t, st, "admin", models.RoleAdmin)

	w := get(r, "/api/order/list/admin", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
