package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printops/inkwell/internal/middleware"
	"github.com/printops/inkwell/pkg/auth"
)

func okHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func bearerRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestAuthenticate_LoadsClaimsIntoContext(t *testing.T) {
	authn := middleware.NewAuthenticator(auth.NewMemoryBlacklist())
	token, err := auth.GenerateToken(7, "alice", "supervisor")
	require.NoError(t, err)

	var gotID uint
	var gotRole string
	handler := authn.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = middleware.UserIDFromContext(r.Context())
		gotRole, _ = middleware.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), gotID)
	assert.Equal(t, "supervisor", gotRole)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	authn := middleware.NewAuthenticator(auth.NewMemoryBlacklist())
	called := false
	handler := authn.Authenticate(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	authn := middleware.NewAuthenticator(auth.NewMemoryBlacklist())
	called := false
	handler := authn.Authenticate(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, "not-a-jwt"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	blacklist := auth.NewMemoryBlacklist()
	authn := middleware.NewAuthenticator(blacklist)

	token, err := auth.GenerateToken(7, "alice", "employee")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

	called := false
	handler := authn.Authenticate(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, token))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	authn := middleware.NewAuthenticator(auth.NewMemoryBlacklist())

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"supervisor", http.StatusForbidden},
		{"employee", http.StatusForbidden},
	}
	for _, tc := range cases {
		token, err := auth.GenerateToken(1, "u", tc.role)
		require.NoError(t, err)

		called := false
		handler := authn.RequireAdmin(okHandler(&called))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, bearerRequest(t, token))

		assert.Equal(t, tc.want, rec.Code, "role %s", tc.role)
		assert.Equal(t, tc.want == http.StatusOK, called, "role %s", tc.role)
	}
}

func TestRequireApprover(t *testing.T) {
	authn := middleware.NewAuthenticator(auth.NewMemoryBlacklist())

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"supervisor", http.StatusOK},
		{"employee", http.StatusForbidden},
	}
	for _, tc := range cases {
		token, err := auth.GenerateToken(1, "u", tc.role)
		require.NoError(t, err)

		called := false
		handler := authn.RequireApprover(okHandler(&called))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, bearerRequest(t, token))

		assert.Equal(t, tc.want, rec.Code, "role %s", tc.role)
	}
}
