package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tabi/config"
	"tabi/middleware"
	"tabi/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestRolesForAdminAllowList(t *testing.T) {
	config.Cfg = &config.App{AdminEmails: config.SplitEmails("mom@example.com, Dad@Example.COM")}
	defer func() { config.Cfg = nil }()

	cases := []struct {
		email string
		admin bool
	}{
		{"mom@example.com", true},
		{"dad@example.com", true}, // allow-list comparison is case-insensitive
		{"kid@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		roles := rolesFor(tc.email)
		got := false
		for _, r := range roles {
			if r == "admin" {
				got = true
			}
		}
		if got != tc.admin {
			t.Errorf("rolesFor(%q) = %v, admin want %v", tc.email, roles, tc.admin)
		}
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	user := models.User{
		UserID:   "u1234567890",
		Username: "mama",
		Email:    "mom@example.com",
		Role:     []string{"user", "admin"},
	}
	tokenString, err := generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	claims, err := middleware.ValidateJWT("Bearer " + tokenString)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != user.UserID || claims.Email != user.Email {
		t.Errorf("claims mismatch: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Error("admin role lost in round trip")
	}
	if time.Until(claims.ExpiresAt.Time) > accessTokenTTL {
		t.Error("expiry further out than the configured TTL")
	}
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	claims := &middleware.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("someone-else"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := middleware.ValidateJWT("Bearer " + signed); err == nil {
		t.Error("token signed with a different key validated")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	a, err := generateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := generateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("refresh tokens repeat")
	}
	if len(a) != 64 {
		t.Errorf("token length %d, want 64 hex chars", len(a))
	}
	if hashToken(a) != hashToken(a) {
		t.Error("hash is not deterministic")
	}
	if hashToken(a) == a {
		t.Error("stored form should be the hash, not the token")
	}
}

func TestSessionAnonymous(t *testing.T) {
	for _, header := range []string{"", "Bearer garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		Session(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200", rec.Code)
		}
		var out struct {
			User    *json.RawMessage `json:"user"`
			IsAdmin bool             `json:"isAdmin"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.User != nil && string(*out.User) != "null" {
			t.Errorf("header %q: expected null user, got %s", header, *out.User)
		}
		if out.IsAdmin {
			t.Errorf("header %q: anonymous caller marked admin", header)
		}
	}
}
