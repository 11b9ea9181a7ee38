package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes"

func newTestManager(t *testing.T, now time.Time) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, DefaultTTL)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	m.now = func() time.Time { return now }
	return m
}

func TestNewManager(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Error("NewManager() with empty secret should fail")
	}
	m, err := NewManager(testSecret, 0)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if m.TTL() != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", m.TTL(), DefaultTTL)
	}
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, now)

	token, expires, err := m.Issue("admin@example.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !expires.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("expires = %v, want %v", expires, now.Add(24*time.Hour))
	}

	user, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if user.Email != "admin@example.com" || user.Role != models.RoleAdmin {
		t.Errorf("Verify() = %+v", user)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("ParseUnverified() error = %v", err)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Errorf("exp - iat = %v, want 24h", got)
	}
}

func TestVerify_Rejects(t *testing.T) {
	now := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, now)
	valid, _, err := m.Issue("admin@example.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := newTestManager(t, now.Add(-48*time.Hour))
	expiredToken, _, _ := expired.Issue("admin@example.com", models.RoleAdmin)

	other, _ := NewManager("another_secret_that_is_long_enough_for_hs256", DefaultTTL)
	foreign, _, _ := other.Issue("admin@example.com", models.RoleAdmin)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: "admin@example.com", Role: "admin"})
	noneToken, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "tampered", token: valid + "x"},
		{name: "expired", token: expiredToken},
		{name: "wrong secret", token: foreign},
		{name: "alg none", token: noneToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestFromRequestAndCookies(t *testing.T) {
	m := newTestManager(t, time.Now())
	token, _, err := m.Issue("admin@example.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.SetCookie(rec, token, true)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.MaxAge != 86400 {
		t.Errorf("unexpected cookie attributes: %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(c)
	user, ok := m.FromRequest(req)
	if !ok || user.Email != "admin@example.com" {
		t.Errorf("FromRequest() = %+v, %v", user, ok)
	}

	if _, ok := m.FromRequest(httptest.NewRequest(http.MethodGet, "/admin", nil)); ok {
		t.Error("FromRequest() without cookie should fail")
	}

	rec = httptest.NewRecorder()
	ClearCookie(rec, false)
	if cleared := rec.Result().Cookies()[0]; cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Errorf("ClearCookie() cookie = %+v", cleared)
	}
}

func TestCredentials_Check(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		creds    Credentials
		email    string
		password string
		want     bool
	}{
		{name: "plain match", creds: NewCredentials("Admin@Example.com", "s3cret"), email: "admin@example.com ", password: "s3cret", want: true},
		{name: "plain wrong password", creds: NewCredentials("admin@example.com", "s3cret"), email: "admin@example.com", password: "S3cret", want: false},
		{name: "wrong email", creds: NewCredentials("admin@example.com", "s3cret"), email: "root@example.com", password: "s3cret", want: false},
		{name: "bcrypt match", creds: NewCredentials("admin@example.com", string(hash)), email: "admin@example.com", password: "s3cret", want: true},
		{name: "bcrypt wrong", creds: NewCredentials("admin@example.com", string(hash)), email: "admin@example.com", password: "guess", want: false},
		{name: "empty input", creds: NewCredentials("admin@example.com", "s3cret"), email: "", password: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Check(tt.email, tt.password); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	if _, ok := PrincipalFromContext(context.Background()); ok {
		t.Error("empty context should have no principal")
	}
	ctx := WithPrincipal(context.Background(), models.AdminUser{Email: "a@example.com", Role: models.RoleAdmin})
	user, ok := PrincipalFromContext(ctx)
	if !ok || user.Email != "a@example.com" {
		t.Errorf("PrincipalFromContext() = %+v, %v", user, ok)
	}
}
