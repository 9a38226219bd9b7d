package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/controllers"
	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/auth"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/router"
	"github.com/hassanmehmood/medicart/pkg/testkit"
)

func newOrderAPI(t *testing.T, db *gorm.DB) *httptest.Server {
	t.Helper()

	checkout := services.NewCheckoutService(db)
	checkout.DisableSideEffects()
	ctl := controllers.NewOrderController(checkout, services.NewOrderService(db))

	r := router.New()
	api := r.Group("/api", middleware.Auth)
	api.Post("/orders", "orders.place", ctl.Place)
	api.Get("/orders/{id}", "orders.show", ctl.Show)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func bearerFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func postOrder(t *testing.T, srv *httptest.Server, token string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/orders", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func orderBody(medicine models.Medicine, quantity int, total float64) map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{"medicineId": medicine.ID, "quantity": quantity, "price": medicine.Price},
		},
		"total":           total,
		"shippingAddress": "12 High Street, Springfield",
		"paymentMethod":   "cod",
	}
}

func TestPlaceOrderEndpoint(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, auth.RoleUser)
	medicine := testkit.CreateMedicine(t, db, 4.50, 10)
	srv := newOrderAPI(t, db)
	token := bearerFor(t, user)

	resp := postOrder(t, srv, token, orderBody(medicine, 2, 9.00))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Order services.PlaceOrderResult `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "Order placed", envelope.Message)
	assert.NotZero(t, envelope.Data.Order.OrderID)
	assert.Equal(t, models.OrderPending, envelope.Data.Order.Status)
}

func TestPlaceOrderRequiresAuth(t *testing.T) {
	db := testkit.OpenDB(t)
	medicine := testkit.CreateMedicine(t, db, 4.50, 10)
	srv := newOrderAPI(t, db)

	resp := postOrder(t, srv, "", orderBody(medicine, 1, 4.50))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPlaceOrderStockConflict(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, auth.RoleUser)
	medicine := testkit.CreateMedicine(t, db, 4.50, 1)
	srv := newOrderAPI(t, db)

	resp := postOrder(t, srv, bearerFor(t, user), orderBody(medicine, 5, 22.50))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPlaceOrderTotalMismatch(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, auth.RoleUser)
	medicine := testkit.CreateMedicine(t, db, 4.50, 10)
	srv := newOrderAPI(t, db)

	resp := postOrder(t, srv, bearerFor(t, user), orderBody(medicine, 2, 5.00))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := testkit.OpenDB(t)
	user := testkit.CreateUser(t, db, auth.RoleUser)
	srv := newOrderAPI(t, db)

	// Missing total, address and payment method.
	resp := postOrder(t, srv, bearerFor(t, user), map[string]interface{}{
		"items": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestShowOrderHidesForeignOrders(t *testing.T) {
	db := testkit.OpenDB(t)
	alice := testkit.CreateUser(t, db, auth.RoleUser)
	bob := testkit.CreateUser(t, db, auth.RoleUser)
	medicine := testkit.CreateMedicine(t, db, 4.50, 10)
	srv := newOrderAPI(t, db)

	resp := postOrder(t, srv, bearerFor(t, alice), orderBody(medicine, 1, 4.50))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data struct {
			Order services.PlaceOrderResult `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	get := func(token string) int {
		req, err := http.NewRequest(http.MethodGet,
			fmt.Sprintf("%s/api/orders/%d", srv.URL, envelope.Data.Order.OrderID), nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", token)
		r, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		r.Body.Close()
		return r.StatusCode
	}

	assert.Equal(t, http.StatusOK, get(bearerFor(t, alice)))
	assert.Equal(t, http.StatusNotFound, get(bearerFor(t, bob)))
}
