package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thriveafrica/tractor-api/internal/helpers"
	"github.com/thriveafrica/tractor-api/internal/middleware"
	"github.com/thriveafrica/tractor-api/internal/models"
	"github.com/thriveafrica/tractor-api/internal/services"
)

const testSecretHash = "whsec_test"

func setupWebhookTest(t *testing.T) (*gin.Engine, *services.BookingService, *models.Booking) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite db")
	require.NoError(t, db.AutoMigrate(&models.Equipment{}, &models.Booking{}))

	svc := services.NewBookingService(db, nil, "admin@thriveafrica.com", true)

	equipment := &models.Equipment{
		Name:             "Massey Ferguson 240",
		Description:      "50HP tractor",
		ShortDescription: "50HP tractor",
		Price:            50000,
		Category:         "tractor",
		IsAvailable:      true,
	}
	require.NoError(t, db.Create(equipment).Error)

	booking, err := svc.CreateBooking(services.CreateBookingInput{
		EquipmentID: equipment.ID,
		FullName:    "Jean Bosco Mugisha",
		Email:       "jbosco@example.com",
		Phone:       "+250788123456",
		District:    "Nyagatare",
		Sector:      "Karangazi",
		Cell:        "Ndama",
		IDNumber:    "1199880012345678",
		BookingDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Duration:    3,
	})
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.BookingServiceMiddleware(svc))
	r.POST("/v1/webhooks/flutterwave", FlutterwaveWebhook(testSecretHash))

	return r, svc, booking
}

func chargeCompletedBody(bookingID, status string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"charge.completed","data":{"id":288200108,"tx_ref":"thriveafrica-1700000000-%s","status":"%s","amount":150000,"currency":"RWF"}}`,
		bookingID, status,
	))
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/v1/webhooks/flutterwave", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("verif-hash", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_SuccessfulCharge(t *testing.T) {
	r, svc, booking := setupWebhookTest(t)

	body := chargeCompletedBody(booking.ID.String(), "successful")
	w := postWebhook(r, body, helpers.ComputeWebhookSignature(testSecretHash, body))

	assert.Equal(t, http.StatusOK, w.Code)

	reloaded, err := svc.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaid, reloaded.Status)
	require.NotNil(t, reloaded.PaymentID)
	assert.Equal(t, "288200108", *reloaded.PaymentID)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	r, svc, booking := setupWebhookTest(t)

	body := chargeCompletedBody(booking.ID.String(), "successful")

	w := postWebhook(r, body, "deadbeef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postWebhook(r, body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	reloaded, err := svc.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, reloaded.Status, "rejected webhook must not mutate state")
	assert.Nil(t, reloaded.PaymentID)
}

func TestWebhook_IgnoredEvents(t *testing.T) {
	r, svc, booking := setupWebhookTest(t)

	// Failed charge on a known booking.
	body := chargeCompletedBody(booking.ID.String(), "failed")
	w := postWebhook(r, body, helpers.ComputeWebhookSignature(testSecretHash, body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)

	// Unrelated event type.
	body = []byte(`{"event":"transfer.completed","data":{"status":"successful"}}`)
	w = postWebhook(r, body, helpers.ComputeWebhookSignature(testSecretHash, body))
	assert.Equal(t, http.StatusOK, w.Code)

	reloaded, err := svc.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, reloaded.Status)
}

func TestWebhook_Redelivery(t *testing.T) {
	r, svc, booking := setupWebhookTest(t)

	body := chargeCompletedBody(booking.ID.String(), "successful")
	signature := helpers.ComputeWebhookSignature(testSecretHash, body)

	w := postWebhook(r, body, signature)
	assert.Equal(t, http.StatusOK, w.Code)

	// The gateway redelivers the same event.
	w = postWebhook(r, body, signature)
	assert.Equal(t, http.StatusOK, w.Code)

	reloaded, err := svc.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaid, reloaded.Status)
	require.NotNil(t, reloaded.PaymentID)
	assert.Equal(t, "288200108", *reloaded.PaymentID)
}

func TestWebhook_UnknownBooking(t *testing.T) {
	r, _, _ := setupWebhookTest(t)

	body := chargeCompletedBody("7f9c24e8-3b13-4c1a-9f0e-2d5b8a6c4e1d", "successful")
	w := postWebhook(r, body, helpers.ComputeWebhookSignature(testSecretHash, body))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
