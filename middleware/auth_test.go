package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, subject string, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func authHandler() (http.Handler, *string) {
	var gotUserID string
	handler := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &gotUserID
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	handler, gotUserID := authHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/feed/unified", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-42", testSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", *gotUserID)
}

func TestRequireAuthRejectsBadRequests(t *testing.T) {
	handler, _ := authHandler()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + signedToken(t, "user-42", []byte("other-secret"))},
		{"empty subject", "Bearer " + signedToken(t, "", testSecret)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/feed/unified", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	handler, _ := authHandler()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/feed/unified", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", UserID(req.Context()))
}
