package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thriveafrica/tractor-api/internal/helpers"
	"github.com/thriveafrica/tractor-api/internal/middleware"
)

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID       int64   `json:"id"`
		TxRef    string  `json:"tx_ref"`
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

// FlutterwaveWebhook is the asynchronous confirmation channel. The signature
// is checked against the raw body before anything is parsed; a rejected
// delivery never touches booking state. Events other than a successful
// charge.completed are acknowledged without action so the gateway stops
// redelivering them.
func FlutterwaveWebhook(secretHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Failed to read request body.")
			return
		}

		signature := c.GetHeader("verif-hash")
		if !helpers.VerifyWebhookSignature(secretHash, body, signature) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid signature.")
			return
		}

		var event webhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payload.")
			return
		}

		if event.Event != "charge.completed" || event.Data.Status != "successful" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		svc := middleware.GetBookingService(c)
		if svc == nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Booking service not found.")
			return
		}

		_, err = svc.ConfirmPayment(
			event.Data.TxRef,
			strconv.FormatInt(event.Data.ID, 10),
			event.Data.Amount,
			event.Data.Currency,
		)
		if err != nil {
			respondWithConfirmError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
