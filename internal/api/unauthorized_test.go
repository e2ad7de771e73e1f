package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/session"
)

// The full 401 path: any entity's call with a stale token clears the
// session and triggers the sign-in redirect.
func TestUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	sess := session.Load(filepath.Join(t.TempDir(), "session.json"))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := sess.SetToken(signed); err != nil {
		t.Fatalf("set token: %v", err)
	}

	redirected := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil, "token expired", nil)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Token:   sess.Token,
		OnUnauthorized: func() {
			sess.Clear()
			redirected = true
		},
	})

	for _, call := range []func() error{
		func() error { _, err := NewBranchClient(client).Get(context.Background(), "b1"); return err },
		func() error {
			_, err := NewBookingClient(client).List(context.Background(), Page{Size: 10}, nil)
			return err
		},
	} {
		redirected = false
		if err := call(); !IsUnauthorized(err) {
			t.Fatalf("err = %v, want 401", err)
		}
		if !redirected {
			t.Error("sign-in redirect did not run")
		}
		if sess.SignedIn() {
			t.Error("session must be cleared on 401")
		}
	}
}
