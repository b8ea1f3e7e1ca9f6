package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/checkout"
	tillhttp "github.com/MrJamesThe3rd/till/internal/http"
	"github.com/MrJamesThe3rd/till/internal/http/auth"
	carthttp "github.com/MrJamesThe3rd/till/internal/http/cart"
	cataloghttp "github.com/MrJamesThe3rd/till/internal/http/catalog"
	checkouthttp "github.com/MrJamesThe3rd/till/internal/http/checkout"
	scanhttp "github.com/MrJamesThe3rd/till/internal/http/scan"
	"github.com/MrJamesThe3rd/till/internal/register"
)

var secret = []byte("till-secret")

func newRouter(secret []byte) http.Handler {
	c := catalog.New([]catalog.Product{
		{Code: "4912345678904", Name: "Green Tea", Price: 150},
	})
	session := register.NewSession(c)

	return tillhttp.New(
		cataloghttp.NewHandler(c),
		carthttp.NewHandler(session),
		scanhttp.NewHandler(session),
		checkouthttp.NewHandler(session, checkout.ReceiptOptions{}),
		tillhttp.Options{CORSOrigins: []string{"*"}, AuthSecret: secret},
	)
}

func request(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestRouter_Auth(t *testing.T) {
	h := newRouter(secret)

	token, err := auth.NewToken(secret, "cashier-1", time.Hour)
	require.NoError(t, err)

	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
	}

	tests := []testCase{
		{name: "Health", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusNoContent},
		{name: "Catalog Public", method: http.MethodGet, path: "/api/v1/catalog", wantStatus: http.StatusOK},
		{name: "Cart Read Public", method: http.MethodGet, path: "/api/v1/cart", wantStatus: http.StatusOK},
		{
			name:       "Add Without Token",
			method:     http.MethodPost,
			path:       "/api/v1/cart/items",
			body:       `{"code":"4912345678904"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Add With Token",
			method:     http.MethodPost,
			path:       "/api/v1/cart/items",
			body:       `{"code":"4912345678904"}`,
			token:      token,
			wantStatus: http.StatusCreated,
		},
		{name: "Checkout Without Token", method: http.MethodPost, path: "/api/v1/checkout", wantStatus: http.StatusUnauthorized},
		{name: "Last Transaction Public", method: http.MethodGet, path: "/api/v1/transactions/last", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(h, tt.method, tt.path, tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_ContentType(t *testing.T) {
	h := newRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"code":"4912345678904"}`))
	req.Header.Set("Content-Type", "text/plain")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_ScanToReceipt(t *testing.T) {
	h := newRouter(nil)

	rec := request(h, http.MethodPost, "/api/v1/scans", `{"raw_code":"4912345678904"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"found":true`)

	rec = request(h, http.MethodPost, "/api/v1/cart/items/4912345678904/increase", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(h, http.MethodPost, "/api/v1/checkout", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = request(h, http.MethodGet, "/api/v1/transactions/last/receipt", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Green Tea")
	assert.Contains(t, rec.Body.String(), "¥330")
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newRouter(secret)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart/items", nil)
	req.Header.Set("Origin", "http://register.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
