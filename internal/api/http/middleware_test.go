package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentledger/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tm := security.NewTokenManager("0123456789abcdef0123456789abcdef")
	mw := NewAuthMiddleware(tm)

	var gotPartyID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := PartyIDFromContext(r.Context())
		require.NoError(t, err)
		gotPartyID = id
		w.WriteHeader(http.StatusOK)
	})

	t.Run("ValidBearerToken", func(t *testing.T) {
		token, err := tm.Generate(42, time.Hour)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		mw.Handler(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), gotPartyID)
	})

	t.Run("MissingToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
		w := httptest.NewRecorder()
		mw.Handler(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		mw.Handler(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
