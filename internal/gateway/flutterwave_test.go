package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyTransaction_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/288200108/verify", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"message": "Transaction fetched successfully",
			"data": {
				"id": 288200108,
				"tx_ref": "thriveafrica-1700000000-7f9c24e8-3b13-4c1a-9f0e-2d5b8a6c4e1d",
				"amount": 150000,
				"currency": "RWF",
				"status": "successful"
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test")
	client.BaseURL = srv.URL

	resp, err := client.VerifyTransaction("288200108")
	require.NoError(t, err)

	assert.True(t, resp.Succeeded())
	assert.Equal(t, int64(288200108), resp.Data.ID)
	assert.Equal(t, "RWF", resp.Data.Currency)
	assert.Equal(t, float64(150000), resp.Data.Amount)
}

func TestVerifyTransaction_FailedCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "data": {"id": 1, "status": "failed"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test")
	client.BaseURL = srv.URL

	resp, err := client.VerifyTransaction("1")
	require.NoError(t, err)
	assert.False(t, resp.Succeeded())
}

func TestVerifyTransaction_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("sk_test")
	client.BaseURL = srv.URL

	_, err := client.VerifyTransaction("missing")
	assert.Error(t, err)
}

func TestInitializePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "data": {"link": "https://checkout.flutterwave.com/pay/abc123"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test")
	client.BaseURL = srv.URL

	link, err := client.InitializePayment(InitializePaymentRequest{
		TxRef:    "thriveafrica-1700000000-7f9c24e8-3b13-4c1a-9f0e-2d5b8a6c4e1d",
		Amount:   150000,
		Currency: "RWF",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.flutterwave.com/pay/abc123", link)
}

func TestInitializePayment_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "error", "message": "Invalid currency"}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test")
	client.BaseURL = srv.URL

	_, err := client.InitializePayment(InitializePaymentRequest{Amount: 1, Currency: "XXX"})
	assert.Error(t, err)
}
