package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/domain/shop"
	"github.com/your-org/storefront-client/internal/domain/user"
	"github.com/your-org/storefront-client/internal/gateway"
	"github.com/your-org/storefront-client/internal/infrastructure/kv"
	"github.com/your-org/storefront-client/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/", "/auth/token/refresh/", 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])
		assert.Equal(t, "pw", body["password"])

		writeJSON(w, http.StatusOK, map[string]any{"access": "acc", "refresh": "ref", "user_id": 9})
	})

	tokens, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, "acc", tokens.Access)
	assert.Equal(t, "ref", tokens.Refresh)
	require.NotNil(t, tokens.UserID)
	assert.Equal(t, session.UserID("9"), *tokens.UserID)
}

func TestRegister_NestedTokens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/", r.URL.Path)
		writeJSON(w, http.StatusCreated, map[string]any{
			"user":   map[string]any{"user_id": 4, "user_name": "bob"},
			"tokens": map[string]any{"access": "acc", "refresh": "ref"},
		})
	})

	tokens, err := client.Register(context.Background(), "bob", "b@b.c", "pw")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, "acc", tokens.Access)
	require.NotNil(t, tokens.UserID)
	assert.Equal(t, session.UserID("4"), *tokens.UserID)
}

func TestRegister_WithoutTokens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"message": "created"})
	})

	tokens, err := client.Register(context.Background(), "bob", "b@b.c", "pw")
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantDetail string
	}{
		{"token not valid", 401, `{"detail":"Given token not valid","code":"token_not_valid"}`, gateway.CodeTokenNotValid, "Given token not valid"},
		{"user inactive", 401, `{"detail":"User is inactive","code":"user_inactive"}`, gateway.CodeUserInactive, "User is inactive"},
		{"error field", 400, `{"error":"bad quantity"}`, "", "bad quantity"},
		{"message field", 404, `{"message":"missing"}`, "", "missing"},
		{"plain text", 502, `upstream down`, "", "upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Me(context.Background(), "tok")
			require.Error(t, err)

			var httpErr *gateway.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantDetail, httpErr.Detail)
		})
	}
}

func TestProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/public/list/":
			assert.Equal(t, "shoe", r.URL.Query().Get("search"))
			writeJSON(w, http.StatusOK, map[string]any{
				"count":   1,
				"results": []map[string]any{{"id": 3, "product_name": "Shoe", "price": "20.00", "discount": 10}},
			})
		case "/products/public/3/":
			writeJSON(w, http.StatusOK, map[string]any{"product_id": 3, "product_name": "Shoe", "base_price": 20, "discount": 10})
		case "/products/public/trendy/":
			writeJSON(w, http.StatusOK, []map[string]any{{"product_id": 1}, {"product_id": 2}})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	page, err := client.ListPublic(ctx, product.ListFilter{Search: "shoe"})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(3), page.Results[0].ID)
	assert.Equal(t, "20", page.Results[0].BasePrice.String())

	p, err := client.GetPublic(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "18", p.DiscountedPrice().String())

	trendy, err := client.Trendy(ctx)
	require.NoError(t, err)
	assert.Len(t, trendy, 2)

	_, err = client.FlashSale(ctx)
	assert.Equal(t, http.StatusNotFound, gateway.StatusOf(err))
}

func TestCreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req order.CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []order.Line{{ProductID: 7, Quantity: 2}}, req.Items)

		writeJSON(w, http.StatusCreated, map[string]any{"id": 11, "total_price": "40.00", "created_at": "2026-01-02T03:04:05Z"})
	})

	placed, err := client.CreateOrder(context.Background(), "tok", order.CreateRequest{Items: []order.Line{{ProductID: 7, Quantity: 2}}})
	require.NoError(t, err)
	assert.Equal(t, int64(11), placed.ID)
	assert.Equal(t, "40.00", placed.TotalPrice.StringFixed(2))
}

func TestCreateFeedback_ValidatesRating(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusCreated, map[string]any{"id": 1, "rating": 5})
	})

	_, err := client.CreateFeedback(context.Background(), "tok", 3, product.CreateFeedbackRequest{Rating: 9})
	require.Error(t, err)
	assert.Equal(t, int32(0), calls.Load())

	created, err := client.CreateFeedback(context.Background(), "tok", 3, product.CreateFeedbackRequest{Rating: 5, Review: "ok"})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Rating)
}

// The gateway refreshes against the real refresh endpoint and retries once.
func TestGatewayRefreshRoundTrip(t *testing.T) {
	var refreshes atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token/refresh/":
			refreshes.Add(1)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref", body["refresh"])
			writeJSON(w, http.StatusOK, map[string]any{"access": "new-acc"})
		case "/users/me/":
			if r.Header.Get("Authorization") != "Bearer new-acc" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "expired", "code": "token_not_valid"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"user_id": 9, "user_name": "ann", "status": true})
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	tokens := session.NewTokenStore(kv.NewMemory(), logger.Discard())
	require.NoError(t, tokens.Save(ctx, &session.TokenSet{Access: "old-acc", Refresh: "ref"}))

	gw := gateway.New(tokens, client, logger.Discard(), gateway.Options{Timeout: time.Second})

	profile, err := gateway.FetchSession(ctx, gw, client.Me)
	require.NoError(t, err)
	assert.Equal(t, "ann", profile.UserName)
	assert.Equal(t, int32(1), refreshes.Load())

	stored, err := tokens.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-acc", stored.Access)
	assert.Equal(t, "ref", stored.Refresh)
}

func TestSellerProducts_Scopes(t *testing.T) {
	tests := []struct {
		scope    product.Scope
		list     string
		create   string
		itemPath string
	}{
		{product.ScopeSeller, "/products/seller/my-products/", "/products/seller/my-products/", "/products/seller/my-products/5/"},
		{product.ScopePrivate, "/products/private/list/", "/products/private/", "/products/private/5/"},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			var (
				mu   sync.Mutex
				seen []string
			)
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				mu.Lock()
				seen = append(seen, r.Method+" "+r.URL.Path)
				mu.Unlock()

				switch r.Method {
				case http.MethodGet:
					if r.URL.Path == tt.list {
						writeJSON(w, http.StatusOK, []map[string]any{{"product_id": 5, "product_name": "Lamp", "base_price": "20.00"}})
						return
					}
					writeJSON(w, http.StatusOK, map[string]any{"product_id": 5, "product_name": "Lamp", "base_price": "20.00"})
				case http.MethodPost, http.MethodPut:
					var body map[string]any
					require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
					assert.Equal(t, "24.99", body["price"])
					writeJSON(w, http.StatusOK, map[string]any{"product_id": 5, "product_name": body["product_name"], "base_price": body["price"]})
				case http.MethodDelete:
					w.WriteHeader(http.StatusNoContent)
				}
			})

			ctx := context.Background()
			price := decimal.RequireFromString("24.99")
			name := "Desk lamp"

			list, err := client.SellerProducts(ctx, "tok", tt.scope)
			require.NoError(t, err)
			require.Len(t, list, 1)

			got, err := client.SellerProduct(ctx, "tok", tt.scope, 5)
			require.NoError(t, err)
			assert.Equal(t, "20", got.BasePrice.String())

			created, err := client.CreateSellerProduct(ctx, "tok", tt.scope, product.WriteRequest{Name: &name, Price: &price})
			require.NoError(t, err)
			assert.Equal(t, "Desk lamp", created.Name)
			assert.True(t, price.Equal(created.BasePrice))

			updated, err := client.UpdateSellerProduct(ctx, "tok", tt.scope, 5, product.WriteRequest{Price: &price})
			require.NoError(t, err)
			assert.True(t, price.Equal(updated.BasePrice))

			require.NoError(t, client.DeleteSellerProduct(ctx, "tok", tt.scope, 5))

			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, []string{
				"GET " + tt.list,
				"GET " + tt.itemPath,
				"POST " + tt.create,
				"PUT " + tt.itemPath,
				"DELETE " + tt.itemPath,
			}, seen)
		})
	}
}

func TestSellerProducts_ValidatesBeforeSending(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	ctx := context.Background()
	negative := decimal.NewFromInt(-1)

	_, err := client.CreateSellerProduct(ctx, "tok", product.ScopeSeller, product.WriteRequest{})
	assert.Error(t, err)
	_, err = client.UpdateSellerProduct(ctx, "tok", product.ScopeSeller, 1, product.WriteRequest{})
	assert.Error(t, err)
	_, err = client.UpdateSellerProduct(ctx, "tok", product.ScopeSeller, 1, product.WriteRequest{Price: &negative})
	assert.Error(t, err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSellerProducts_BackendErrorIsHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "You do not own this product"})
	})

	err := client.DeleteSellerProduct(context.Background(), "tok", product.ScopeSeller, 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, gateway.StatusOf(err))
	assert.Contains(t, err.Error(), "You do not own this product")
}

func TestMyShop(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shops/my-shop/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, map[string]any{"shop_id": 2, "shop_name": "Lamps", "owner": 9})
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		status := http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
		writeJSON(w, status, map[string]any{"shop_id": 2, "shop_name": body["shop_name"], "owner": 9})
	})

	ctx := context.Background()

	mine, err := client.MyShop(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, shop.Shop{ID: 2, Name: "Lamps", Owner: 9}, *mine)

	created, err := client.CreateMyShop(ctx, "tok", shop.Request{Name: "  Lights  "})
	require.NoError(t, err)
	assert.Equal(t, "Lights", created.Name)

	renamed, err := client.UpdateMyShop(ctx, "tok", shop.Request{Name: "Bulbs"})
	require.NoError(t, err)
	assert.Equal(t, "Bulbs", renamed.Name)

	_, err = client.UpdateMyShop(ctx, "tok", shop.Request{Name: " "})
	assert.Error(t, err)
}

func newAdminClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/api", "/auth/token/refresh/", 5*time.Second).
		WithAdminBaseURL(server.URL + "/shopadmin/")
}

func TestAdmin_Users(t *testing.T) {
	var (
		mu      sync.Mutex
		updates []map[string]any
	)
	client := newAdminClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /shopadmin/users/":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"user_id": 1, "user_name": "ann", "role": "buyer", "status": "active"},
				{"user_id": 2, "user_name": "bob", "role": "seller", "status": "banned"},
			})
		case "GET /shopadmin/pendingusers/":
			writeJSON(w, http.StatusOK, []map[string]any{{"user_id": 3, "user_name": "cy", "status": "pending"}})
		case "GET /shopadmin/user/2/":
			writeJSON(w, http.StatusOK, map[string]any{"user_id": 2, "user_name": "bob", "role": "seller", "status": false})
		case "PUT /shopadmin/user/2/":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			mu.Lock()
			updates = append(updates, body)
			mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"user_id": 2, "user_name": "bob", "role": "seller", "status": body["status"]})
		case "DELETE /shopadmin/user/2/":
			writeJSON(w, http.StatusOK, map[string]any{"message": "User deleted successfully"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()

	all, err := client.AllUsers(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, user.StatusBanned, all[1].Status)
	assert.True(t, all[0].IsActive())

	pending, err := client.PendingUsers(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, user.StatusPending, pending[0].Status)

	bob, err := client.GetUser(ctx, "tok", 2)
	require.NoError(t, err)
	assert.Equal(t, user.StatusInactive, bob.Status)

	active := user.StatusActive
	updated, err := client.UpdateUser(ctx, "tok", 2, user.AdminUpdateRequest{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, user.StatusActive, updated.Status)

	bogus := user.Status("asleep")
	_, err = client.UpdateUser(ctx, "tok", 2, user.AdminUpdateRequest{Status: &bogus})
	assert.Error(t, err)

	mu.Lock()
	assert.Equal(t, []map[string]any{{"status": "active"}}, updates)
	mu.Unlock()

	require.NoError(t, client.DeleteUser(ctx, "tok", 2))
}

// Moderation views answer 200 with an error body when the target is missing.
func TestAdmin_ErrorInSuccessResponse(t *testing.T) {
	client := newAdminClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"error": "User not found"})
	})

	_, err := client.GetUser(context.Background(), "tok", 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, gateway.StatusOf(err))
	assert.Contains(t, err.Error(), "User not found")

	err = client.DeleteUser(context.Background(), "tok", 404)
	assert.Equal(t, http.StatusBadGateway, gateway.StatusOf(err))
}

func TestAdmin_RequiresBaseURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.AllUsers(context.Background(), "tok")
	assert.Error(t, err)
}

func TestAdmin_ProductsAndFeedback(t *testing.T) {
	client := newAdminClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /shopadmin/product-list/":
			writeJSON(w, http.StatusOK, []map[string]any{{"product_id": 8, "product_name": "Rug", "base_price": "99.90"}})
		case "GET /shopadmin/product/8/":
			writeJSON(w, http.StatusOK, map[string]any{"product_id": 8, "product_name": "Rug", "base_price": "99.90"})
		case "PUT /shopadmin/product/8/":
			writeJSON(w, http.StatusOK, map[string]any{"product_id": 8, "product_name": "Rug", "base_price": "99.90", "status": true})
		case "GET /shopadmin/banned-feedback/8/":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 4, "rating": 1, "review": "spam", "product": 8, "status": "banned"}})
		case "PUT /shopadmin/approve-feedback/4/":
			writeJSON(w, http.StatusOK, map[string]any{"id": 4, "rating": 1, "review": "spam", "product": 8, "status": "approved"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()

	pending, err := client.PendingProducts(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "99.9", pending[0].BasePrice.String())

	rug, err := client.GetPendingProduct(ctx, "tok", 8)
	require.NoError(t, err)
	assert.Equal(t, "Rug", rug.Name)

	approved, err := client.ApproveProduct(ctx, "tok", 8)
	require.NoError(t, err)
	assert.Equal(t, int64(8), approved.ID)

	banned, err := client.BannedFeedback(ctx, "tok", 8)
	require.NoError(t, err)
	require.Len(t, banned, 1)
	assert.Equal(t, "banned", banned[0].Status)

	fb, err := client.ApproveFeedback(ctx, "tok", 4)
	require.NoError(t, err)
	assert.Equal(t, "approved", fb.Status)
}

func TestFeedbackReplies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feedback/3/4/", r.URL.Path)
		if r.Method == http.MethodGet {
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 10, "review": "thanks", "product": 3}})
			return
		}
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"review": "glad you liked it"}, body)
		writeJSON(w, http.StatusCreated, map[string]any{"id": 11, "review": body["review"], "product": 3})
	})

	ctx := context.Background()

	replies, err := client.FeedbackReplies(ctx, 3, 4)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "thanks", replies[0].Review)

	_, err = client.CreateFeedbackReply(ctx, "tok", 3, 4, product.CreateReplyRequest{Review: "  "})
	assert.Error(t, err)

	created, err := client.CreateFeedbackReply(ctx, "tok", 3, 4, product.CreateReplyRequest{Review: "glad you liked it"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
}

// Seller calls go through the gateway like every other authenticated call.
func TestGatewaySellerCallRefreshes(t *testing.T) {
	var refreshes atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token/refresh/":
			refreshes.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"access": "new-acc"})
		case "/shops/my-shop/":
			if r.Header.Get("Authorization") != "Bearer new-acc" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "expired", "code": "token_not_valid"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"shop_id": 1, "shop_name": "Lamps"})
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	tokens := session.NewTokenStore(kv.NewMemory(), logger.Discard())
	require.NoError(t, tokens.Save(ctx, &session.TokenSet{Access: "old-acc", Refresh: "ref"}))
	gw := gateway.New(tokens, client, logger.Discard(), gateway.Options{Timeout: time.Second})

	mine, err := gateway.FetchSession(ctx, gw, client.MyShop)
	require.NoError(t, err)
	assert.Equal(t, "Lamps", mine.Name)
	assert.Equal(t, int32(1), refreshes.Load())
}
