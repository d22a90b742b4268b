package handlers_test

import (
	"net/http"
	"testing"
)

func TestAdminRoutesRejectAnonymousAndUserTokens(t *testing.T) {
	app, userTok, adminTok := newTestApp(t)

	artBody := `{"artCode":"ART-500","title":"Harbor","price":900,"status":"NotListed"}`

	// no token
	if code, _ := doJSON(t, app, "POST", "/arts", "", artBody); code != http.StatusUnauthorized {
		t.Fatalf("want 401 without token, got %d", code)
	}
	// user token is not enough
	if code, _ := doJSON(t, app, "POST", "/arts", userTok, artBody); code != http.StatusForbidden {
		t.Fatalf("want 403 with user token, got %d", code)
	}
	// garbage token
	if code, _ := doJSON(t, app, "POST", "/arts", "garbage.token.here", artBody); code != http.StatusUnauthorized {
		t.Fatalf("want 401 with bad token, got %d", code)
	}
	// admin token passes
	if code, _ := doJSON(t, app, "POST", "/arts", adminTok, artBody); code != http.StatusCreated {
		t.Fatalf("want 201 with admin token, got %d", code)
	}
}

func TestUserRoutesRequireToken(t *testing.T) {
	app, userTok, _ := newTestApp(t)

	if code, _ := doJSON(t, app, "GET", "/users/profile", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("want 401 without token, got %d", code)
	}
	code, body := doJSON(t, app, "GET", "/users/profile", userTok, "")
	if code != http.StatusOK {
		t.Fatalf("want 200 with token, got %d", code)
	}
	if body["email"] != "alice@arthaus.test" {
		t.Fatalf("wrong profile: %+v", body)
	}
}

func TestLoginEndpoints(t *testing.T) {
	app, _, _ := newTestApp(t)

	code, body := doJSON(t, app, "POST", "/users/login", "", `{"email":"alice@arthaus.test","password":"Passw0rd!"}`)
	if code != http.StatusOK || body["token"] == nil {
		t.Fatalf("user login failed: %d %+v", code, body)
	}
	if code, _ := doJSON(t, app, "POST", "/users/login", "", `{"email":"alice@arthaus.test","password":"WrongPass1!"}`); code != http.StatusUnauthorized {
		t.Fatalf("want 401 for bad password, got %d", code)
	}
	code, body = doJSON(t, app, "POST", "/admin/admin-login", "", `{"email":"admin@arthaus.test","password":"Passw0rd!"}`)
	if code != http.StatusOK || body["token"] == nil {
		t.Fatalf("admin login failed: %d %+v", code, body)
	}
}

func TestAdminRegisterGatedByAdminToken(t *testing.T) {
	app, userTok, adminTok := newTestApp(t)

	payload := `{"email":"second@arthaus.test","name":"Second","password":"Adm1nPass!"}`
	if code, _ := doJSON(t, app, "POST", "/admin/admin-register", "", payload); code != http.StatusUnauthorized {
		t.Fatalf("want 401 without token, got %d", code)
	}
	if code, _ := doJSON(t, app, "POST", "/admin/admin-register", userTok, payload); code != http.StatusForbidden {
		t.Fatalf("want 403 with user token, got %d", code)
	}
	if code, _ := doJSON(t, app, "POST", "/admin/admin-register", adminTok, payload); code != http.StatusCreated {
		t.Fatalf("want 201 with admin token, got %d", code)
	}
	// fresh admin can log in
	if code, _ := doJSON(t, app, "POST", "/admin/admin-login", "", `{"email":"second@arthaus.test","password":"Adm1nPass!"}`); code != http.StatusOK {
		t.Fatalf("new admin login failed: %d", code)
	}
}
