package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/till/internal/http/auth"
)

var secret = []byte("register-secret")

func protected() http.Handler {
	return auth.Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cashier, _ := auth.Cashier(r.Context())
		_, _ = w.Write([]byte(cashier))
	}))
}

func TestMiddleware(t *testing.T) {
	valid, err := auth.NewToken(secret, "cashier-1", time.Hour)
	require.NoError(t, err)

	expired, err := auth.NewToken(secret, "cashier-1", -time.Minute)
	require.NoError(t, err)

	foreign, err := auth.NewToken([]byte("other"), "cashier-1", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	type testCase struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{name: "Valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "cashier-1"},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "Wrong Scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "Expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "Wrong Secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "Unsigned", header: "Bearer " + none, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestMiddleware_DisabledWithoutSecret(t *testing.T) {
	h := auth.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestNewToken_RequiresCashier(t *testing.T) {
	_, err := auth.NewToken(secret, "", time.Hour)
	assert.Error(t, err)
}
