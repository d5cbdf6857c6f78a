package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"foodpath"
	"foodpath/auth"
	"foodpath/catalog"
	"foodpath/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	t       *testing.T
	engine  *gin.Engine
	state   *store.MemoryState
	session string
}

func newHarness(t *testing.T, backend http.HandlerFunc) *harness {
	t.Helper()

	if backend == nil {
		backend = func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	state := store.NewMemoryState()
	engine, err := New(Deps{
		Products: catalog.NewProducts([]catalog.Product{
			{ID: 81, Name: "Whole Milk", Price: 3.49, Category: "dairy-products"},
			{ID: 1, Name: "Potato Chips Classic", Price: 2.99, Category: "snacks"},
		}),
		Recipes: catalog.NewRecipes([]catalog.Recipe{
			{ID: "1", Title: "Butter Chicken", Category: catalog.CategoryHome, Cuisine: "Indian", Time: "45 mins"},
			{ID: "2", Title: "Pad Thai", Category: catalog.CategoryHome, Cuisine: "Thai", Time: "30 mins"},
		}),
		State: state,
		Auth: auth.NewClient(foodpath.BackendConfig{
			BaseURL:      srv.URL + "/api",
			JobPortalURL: srv.URL,
			ProbeTimeout: 200 * time.Millisecond,
		}, srv.Client()),
	})
	must.NoError(t, err)

	return &harness{t: t, engine: engine, state: state, session: "shopper-1"}
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		must.NoError(h.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if h.session != "" {
		req.Header.Set(sessionHeader, h.session)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	must.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	should.Error(t, err)
}

func TestIndex(t *testing.T) {
	h := newHarness(t, nil)
	w := h.do(http.MethodGet, "/", nil)
	should.Equal(t, http.StatusOK, w.Code)
	should.Contains(t, w.Body.String(), "POST /api/checkout")
}

func TestProducts(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodGet, "/api/products?q=MILK", nil)
	must.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	should.Len(t, out["products"], 1)
	should.Equal(t, "All Products", out["category"])
	should.Equal(t, "dairy-products", out["suggestedCategory"])

	w = h.do(http.MethodGet, "/api/products?q=durian", nil)
	should.Equal(t, []any{}, decode(t, w)["products"])

	should.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/products/404", nil).Code)
	should.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/products/abc", nil).Code)

	w = h.do(http.MethodGet, "/api/categories", nil)
	should.Len(t, decode(t, w)["categories"], 6)

	w = h.do(http.MethodGet, "/api/search/suggest?q=milk", nil)
	should.Equal(t, "Dairy Products", decode(t, w)["name"])
}

func TestProductsExport(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodGet, "/api/products/export?category=snacks", nil)
	must.Equal(t, http.StatusOK, w.Code)
	should.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	f, err := xlsx.OpenBinary(w.Body.Bytes())
	must.NoError(t, err)
	must.Len(t, f.Sheets[0].Rows, 2)
	should.Equal(t, "Potato Chips Classic", f.Sheets[0].Rows[1].Cells[1].Value)
}

func TestSessionHeader(t *testing.T) {
	h := newHarness(t, nil)

	h.session = ""
	w := h.do(http.MethodGet, "/api/cart", nil)
	must.Equal(t, http.StatusOK, w.Code)
	should.Len(t, w.Header().Get(sessionHeader), 36)

	h.session = "../etc"
	w = h.do(http.MethodGet, "/api/cart", nil)
	should.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 81})
	must.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 81})
	out := decode(t, w)
	should.EqualValues(t, 2, out["totalItems"])
	should.Equal(t, "₹628.34", out["total"])

	should.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 7}).Code)

	w = h.do(http.MethodPost, "/api/checkout", map[string]any{"paymentMethod": "cod"})
	should.Equal(t, http.StatusBadRequest, w.Code)
	should.Equal(t, "Please enter a delivery address", decode(t, w)["message"])

	w = h.do(http.MethodPut, "/api/cart/address", map[string]any{"address": " "})
	should.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPut, "/api/cart/address", map[string]any{"address": "12 MG Road"})
	must.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/api/checkout", map[string]any{"paymentMethod": "online", "card": map[string]any{"number": "4111"}})
	should.Equal(t, http.StatusBadRequest, w.Code)
	should.Equal(t, "Please fill in all card details", decode(t, w)["message"])

	w = h.do(http.MethodPost, "/api/checkout", map[string]any{"paymentMethod": "cod"})
	must.Equal(t, http.StatusCreated, w.Code)
	out = decode(t, w)
	should.Equal(t, "Cash on Delivery", out["paymentMethod"])
	order := out["order"].(map[string]any)
	should.Equal(t, "₹628.34", order["total"])
	should.Len(t, order["orderId"], 9)

	w = h.do(http.MethodGet, "/api/cart", nil)
	should.Equal(t, []any{}, decode(t, w)["items"])

	w = h.do(http.MethodGet, "/api/orders/latest", nil)
	must.Equal(t, http.StatusOK, w.Code)
	should.Equal(t, order["orderId"], decode(t, w)["order"].(map[string]any)["orderId"])

	h.session = "someone-else"
	should.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/orders/latest", nil).Code)
}

func TestCartUpdateAndRemove(t *testing.T) {
	h := newHarness(t, nil)
	h.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 1})

	w := h.do(http.MethodPut, "/api/cart/items/1", map[string]any{"quantity": 4})
	should.EqualValues(t, 4, decode(t, w)["totalItems"])

	w = h.do(http.MethodPut, "/api/cart/items/1", map[string]any{})
	should.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodDelete, "/api/cart/items/1", nil)
	should.EqualValues(t, 0, decode(t, w)["totalItems"])
	should.Empty(t, h.state.Keys())
}

func TestProfile(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodGet, "/api/profile", nil)
	should.Equal(t, "John Doe", decode(t, w)["username"])

	w = h.do(http.MethodPost, "/api/profile/addresses", map[string]any{"address": "7 Park Street"})
	should.Len(t, decode(t, w)["addresses"], 3)

	w = h.do(http.MethodDelete, "/api/profile/addresses/9", nil)
	should.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodPut, "/api/profile/username", map[string]any{"username": "Priya"})
	should.Equal(t, "Username updated!", decode(t, w)["message"])

	w = h.do(http.MethodPost, "/api/profile/password", map[string]any{"currentPassword": "a", "newPassword": "b", "confirmPassword": "c"})
	should.Equal(t, http.StatusBadRequest, w.Code)
	should.Equal(t, "New password and confirm password do not match!", decode(t, w)["message"])

	w = h.do(http.MethodPost, "/api/profile/password", map[string]any{"currentPassword": "a", "newPassword": "b", "confirmPassword": "b"})
	should.Equal(t, "Password changed successfully!", decode(t, w)["message"])
}

func TestRecipes(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodGet, "/api/recipes?q=thai", nil)
	should.Len(t, decode(t, w)["recipes"], 1)

	w = h.do(http.MethodGet, "/api/recipes?category=home", nil)
	should.Len(t, decode(t, w)["recipes"], 2)

	w = h.do(http.MethodGet, "/api/recipes/cuisine/indian", nil)
	out := decode(t, w)
	should.Equal(t, "Indian", out["cuisine"])
	should.Len(t, out["recipes"], 1)

	w = h.do(http.MethodGet, "/api/recipes/404", nil)
	out = decode(t, w)
	should.Equal(t, true, out["fallback"])
	should.Equal(t, "1", out["recipe"].(map[string]any)["id"])

	w = h.do(http.MethodPost, "/api/recipes/1/reviews", map[string]any{"rating": 0, "comment": "ok"})
	should.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPost, "/api/recipes/1/reviews", map[string]any{"rating": 5, "comment": "Great"})
	must.Equal(t, http.StatusCreated, w.Code)
	should.Equal(t, "You", decode(t, w)["review"].(map[string]any)["user"])

	w = h.do(http.MethodPost, "/api/recipes/submit", map[string]any{"title": "Toast"})
	should.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPost, "/api/recipes/submit", map[string]any{
		"title": "Toast", "description": "Crunchy", "category": "home", "time": 5,
		"ingredients": []string{"bread"}, "instructions": []string{"toast it"},
	})
	should.Equal(t, http.StatusCreated, w.Code)

	w = h.do(http.MethodGet, "/api/cuisines", nil)
	should.Len(t, decode(t, w)["cuisines"], 6)
}

func TestSavedRecipes(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodPost, "/api/saved-recipes/2/toggle", nil)
	should.Equal(t, true, decode(t, w)["saved"])

	w = h.do(http.MethodGet, "/api/recipes/2", nil)
	should.Equal(t, true, decode(t, w)["saved"])

	w = h.do(http.MethodGet, "/api/saved-recipes", nil)
	should.Len(t, decode(t, w)["savedRecipes"], 1)

	w = h.do(http.MethodDelete, "/api/saved-recipes/2", nil)
	should.Empty(t, decode(t, w)["savedRecipes"])

	should.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/saved-recipes/99/toggle", nil).Code)
}

func TestAuthDemoMode(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "asha@example.com", "password": "pw"})
	must.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	should.Equal(t, true, out["demo"])
	should.Equal(t, "degraded", out["status"])
	should.Equal(t, "Mock login successful", out["message"])

	w = h.do(http.MethodPost, "/api/auth/register", map[string]any{"password": "a", "confirmPassword": "b"})
	should.Equal(t, http.StatusBadRequest, w.Code)
	should.Equal(t, "Passwords do not match", decode(t, w)["message"])

	w = h.do(http.MethodGet, "/api/auth/status", nil)
	should.Equal(t, false, decode(t, w)["success"])

	w = h.do(http.MethodPost, "/api/jobs/signup", map[string]any{"fullname": "A", "password": "x", "confirmPassword": "x"})
	should.Equal(t, http.StatusBadRequest, w.Code)
	should.Equal(t, "Please select a role.", decode(t, w)["message"])
}

func TestAuthLive(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/test/hello":
			io.WriteString(w, `{"message":"hello"}`)
		case "/api/auth/signin":
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, "Bad credentials")
		case "/users/signup":
			io.WriteString(w, `{"message":"Email already exists"}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	w := h.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "a@b.c", "password": "pw"})
	should.Equal(t, http.StatusUnauthorized, w.Code)
	should.Equal(t, "Bad credentials", decode(t, w)["message"])

	w = h.do(http.MethodPost, "/api/auth/register", map[string]any{"email": "a@b.c", "password": "x", "confirmPassword": "x"})
	out := decode(t, w)
	should.Equal(t, "server_error", out["status"])
	should.Equal(t, map[string]any{"error": "Internal Server Error"}, out["errorDetails"])

	w = h.do(http.MethodPost, "/api/jobs/signup", map[string]any{"fullname": "A", "role": "2", "password": "x", "confirmPassword": "x"})
	should.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodGet, "/api/auth/status", nil)
	should.Equal(t, map[string]any{"success": true, "message": "hello"}, decode(t, w))
}
