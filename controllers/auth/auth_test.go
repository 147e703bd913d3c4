package authControllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	"github.com/shoporia/ecommerce-api/routes"
	"github.com/shoporia/ecommerce-api/store/memory"
)

func newTestServer(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "testsecret"}
	st := memory.New()
	r := gin.New()
	routes.SetupRoutes(r, st, cfg)
	return r, st
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestSignup(t *testing.T) {
	r, st := newTestServer(t)

	w := postJSON(t, r, "/api/signup", gin.H{
		"name": "Rick", "email": "rick@example.com", "password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user object, got %v", body)
	}
	if user["email"] != "rick@example.com" {
		t.Fatalf("unexpected email %v", user["email"])
	}
	if strings.Contains(w.Body.String(), "secret1") {
		t.Fatal("response must never carry the plaintext password")
	}
	if _, ok := user["hashed_password"]; ok {
		t.Fatal("response must not carry the password hash")
	}

	stored, err := st.Users().GetByEmail(context.Background(), "rick@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.HashedPassword == "secret1" {
		t.Fatal("plaintext stored")
	}
	if !stored.Authenticate("secret1") {
		t.Fatal("stored credentials should authenticate")
	}
}

func TestSignupValidation(t *testing.T) {
	r, _ := newTestServer(t)

	cases := []struct {
		name string
		body gin.H
		want string
	}{
		{"missing name", gin.H{"email": "a@b.co", "password": "secret1"}, "Name is required"},
		{"email without at", gin.H{"name": "n", "email": "nope", "password": "secret1"}, "Email must contain @"},
		{"email too short", gin.H{"name": "n", "email": "a@", "password": "secret1"}, "Email must be at least 4 characters"},
		{"short password", gin.H{"name": "n", "email": "a@b.co", "password": "a1"}, "Password must contain at least 6 characters"},
		{"password without digit", gin.H{"name": "n", "email": "a@b.co", "password": "abcdef"}, "Password must contain a number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/signup", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if got := decodeBody(t, w)["error"]; got != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, got)
			}
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r, _ := newTestServer(t)

	body := gin.H{"name": "Rick", "email": "rick@example.com", "password": "secret1"}
	if w := postJSON(t, r, "/api/signup", body); w.Code != http.StatusOK {
		t.Fatalf("first signup failed: %d", w.Code)
	}

	w := postJSON(t, r, "/api/signup", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Email already exists" {
		t.Fatalf("unexpected error %v", got)
	}
}

func TestSignin(t *testing.T) {
	r, _ := newTestServer(t)
	postJSON(t, r, "/api/signup", gin.H{
		"name": "Rick", "email": "rick@example.com", "password": "secret1",
	})

	w := postJSON(t, r, "/api/signin", gin.H{"email": "rick@example.com", "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token")
	}
	user, _ := body["user"].(map[string]interface{})
	if user["email"] != "rick@example.com" {
		t.Fatalf("unexpected user %v", user)
	}

	var cookie string
	for _, c := range w.Result().Cookies() {
		if c.Name == "t" {
			cookie = c.Value
		}
	}
	if cookie != token {
		t.Fatal("signin should set the token cookie")
	}
}

func TestSigninUnknownEmail(t *testing.T) {
	r, _ := newTestServer(t)

	w := postJSON(t, r, "/api/signin", gin.H{"email": "nobody@example.com", "password": "secret1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "User with that email does not exist. Please signup" {
		t.Fatalf("unexpected error %v", got)
	}
}

func TestSigninWrongPassword(t *testing.T) {
	r, _ := newTestServer(t)
	postJSON(t, r, "/api/signup", gin.H{
		"name": "Rick", "email": "rick@example.com", "password": "secret1",
	})

	w := postJSON(t, r, "/api/signin", gin.H{"email": "rick@example.com", "password": "wrong99"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Email and password don't match" {
		t.Fatalf("unexpected error %v", got)
	}
}

func TestSignout(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/signout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "t" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("signout should expire the token cookie")
	}
}
