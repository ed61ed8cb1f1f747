package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestSignupLoginMe(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/signup",
		`{"email":"student@campus.edu","password":"hunter22","confirmPassword":"hunter22"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup: want 201, got %d", resp.StatusCode)
	}
	body := decode(t, resp)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("signup must return a token")
	}
	user := body["user"].(map[string]any)
	if user["email"] != "student@campus.edu" {
		t.Fatalf("wrong user summary: %v", user)
	}

	// Token resolves the account
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp2, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("me: want 200, got %d", resp2.StatusCode)
	}
	me := decode(t, resp2)["user"].(map[string]any)
	if me["email"] != "student@campus.edu" {
		t.Fatalf("me mismatch: %v", me)
	}

	// Login works with the stored hash
	resp3 := postJSON(t, app, "/api/auth/login",
		`{"email":"student@campus.edu","password":"hunter22"}`)
	if resp3.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d", resp3.StatusCode)
	}
	if tok, _ := decode(t, resp3)["token"].(string); tok == "" {
		t.Fatal("login must return a token")
	}
}

func TestSignupRejections(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/signup",
		`{"email":"student@campus.edu","password":"hunter22","confirmPassword":"other"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("mismatch: want 400, got %d", resp.StatusCode)
	}
	if decode(t, resp)["error"] != "Passwords do not match" {
		t.Fatal("wrong mismatch message")
	}

	ok := postJSON(t, app, "/api/auth/signup",
		`{"email":"student@campus.edu","password":"hunter22","confirmPassword":"hunter22"}`)
	if ok.StatusCode != http.StatusCreated {
		t.Fatalf("first signup should pass, got %d", ok.StatusCode)
	}
	dup := postJSON(t, app, "/api/auth/signup",
		`{"email":"student@campus.edu","password":"hunter22","confirmPassword":"hunter22"}`)
	if dup.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate: want 400, got %d", dup.StatusCode)
	}
	if decode(t, dup)["error"] != "User already exists" {
		t.Fatal("wrong duplicate message")
	}

	bad := postJSON(t, app, "/api/auth/signup",
		`{"email":"not-an-email","password":"hunter22","confirmPassword":"hunter22"}`)
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad email: want 400, got %d", bad.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)
	postJSON(t, app, "/api/auth/signup",
		`{"email":"student@campus.edu","password":"hunter22","confirmPassword":"hunter22"}`)

	resp := postJSON(t, app, "/api/auth/login",
		`{"email":"student@campus.edu","password":"wrong"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	if decode(t, resp)["error"] != "Invalid credentials" {
		t.Fatal("wrong message")
	}
}

func TestMeRequiresToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: want 401, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp2, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: want 401, got %d", resp2.StatusCode)
	}
}
