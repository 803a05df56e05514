package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

func newClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api/", 5*time.Second)
}

func TestLoginSuccess(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice", body["username"])
		require.Equal(t, "pw", body["password"])

		json.NewEncoder(w).Encode(map[string]string{"access": "tok-123"})
	}))

	token, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)
}

func TestLoginRejected(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
	}))

	_, err := c.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRegisterRejectedKeepsServerMessage(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "username already taken"})
	}))

	err := c.Register(context.Background(), "alice", "a@example.com", "pw")
	require.ErrorIs(t, err, ErrRegistrationRejected)
	require.Contains(t, err.Error(), "username already taken")
}

func TestListSweetsParsesWireFormats(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sweets", r.URL.Path)
		// no token on the public catalog read
		require.Empty(t, r.Header.Get("Authorization"))
		// numeric id, string price: the shapes the backend actually sends
		w.Write([]byte(`[{"id":1,"name":"Gummy Bears","category":"Gummy","price":"5.99","quantity":50}]`))
	}))
	c.SetToken("tok")

	sweets, err := c.ListSweets(context.Background())
	require.NoError(t, err)
	require.Len(t, sweets, 1)
	require.Equal(t, models.ID("1"), sweets[0].Id)
	require.True(t, sweets[0].Price.Equal(decimal.RequireFromString("5.99")))
}

func TestListSweetsFailure(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.ListSweets(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestPurchaseSendsBearerToken(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sweets/7/purchase", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":7,"name":"Fudge","category":"Chocolate","price":"3.50","quantity":4}`))
	}))
	c.SetToken("tok-123")

	s, err := c.Purchase(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, 4, s.Quantity)
}

func TestPurchaseOutOfStock(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "This sweet is out of stock."})
	}))
	c.SetToken("tok")

	_, err := c.Purchase(context.Background(), "7")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "This sweet is out of stock.", apiErr.Message)
}

func TestRestockBodyShape(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sweets/3/restock", r.URL.Path)

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, 25, body["quantity"])

		w.Write([]byte(`{"id":3,"name":"Lollipop","category":"Candy","price":"2.99","quantity":25}`))
	}))
	c.SetToken("tok")

	s, err := c.Restock(context.Background(), "3", 25)
	require.NoError(t, err)
	require.Equal(t, 25, s.Quantity)
}

func TestDeleteSweet(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/sweets/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	c.SetToken("tok")

	require.NoError(t, c.DeleteSweet(context.Background(), "9"))
}

func TestUpdateSweetRejected(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "You do not have permission to perform this action."})
	}))
	c.SetToken("tok")

	_, err := c.UpdateSweet(context.Background(), "9", models.Sweet{Name: "X"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
	require.Contains(t, apiErr.Message, "permission")
}
