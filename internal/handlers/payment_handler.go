package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thriveafrica/tractor-api/internal/gateway"
	"github.com/thriveafrica/tractor-api/internal/helpers"
	"github.com/thriveafrica/tractor-api/internal/middleware"
	"github.com/thriveafrica/tractor-api/internal/models"
	"github.com/thriveafrica/tractor-api/internal/services"
)

type InitializePaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	ReturnURL string    `json:"return_url"`
}

type VerifyPaymentRequest struct {
	TransactionID  string `json:"transaction_id" binding:"required"`
	TransactionRef string `json:"transaction_ref"`
}

// InitializePayment creates a hosted payment link for a pending booking.
// The transaction reference carries the booking id as its trailing segment
// so both confirmation channels can find the booking again.
func InitializePayment(c *gin.Context) {
	var req InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Booking ID is required.")
		return
	}

	svc := middleware.GetBookingService(c)
	client := middleware.GetFlutterwaveClient(c)
	if svc == nil || client == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway not configured.")
		return
	}

	booking, err := svc.GetBooking(req.BookingID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving booking.")
		return
	}

	switch booking.Status {
	case models.BookingPaid, models.BookingConfirmed, models.BookingCompleted:
		helpers.RespondWithError(c, http.StatusBadRequest, "Booking is already paid.")
		return
	case models.BookingCancelled:
		helpers.RespondWithError(c, http.StatusBadRequest, "Booking has been cancelled.")
		return
	}

	equipmentName := ""
	if booking.Equipment != nil {
		equipmentName = booking.Equipment.Name
	}

	txRef := helpers.GenerateTransactionRef(booking.ID)

	link, err := client.InitializePayment(gateway.InitializePaymentRequest{
		TxRef:       txRef,
		Amount:      booking.TotalAmount,
		Currency:    "RWF",
		RedirectURL: req.ReturnURL,
		Customer: gateway.Customer{
			Email: booking.Email,
			Name:  booking.FullName,
			Phone: booking.Phone,
		},
		Customizations: gateway.Customizations{
			Title:       "Thrive Africa Tractor Platform",
			Description: "Payment for " + equipmentName,
		},
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadGateway, "Failed to initialize payment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"payment_link": link,
			"reference":    txRef,
		},
	})
}

// VerifyPayment is the redirect-callback channel: the client posts the
// transaction id it was redirected back with, and we confirm it against the
// gateway's verify endpoint before mutating anything.
func VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Transaction ID is required.")
		return
	}

	svc := middleware.GetBookingService(c)
	client := middleware.GetFlutterwaveClient(c)
	if svc == nil || client == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway not configured.")
		return
	}

	verification, err := client.VerifyTransaction(req.TransactionID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadGateway, "Payment verification failed.")
		return
	}
	if !verification.Succeeded() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Payment verification failed.",
		})
		return
	}

	booking, err := svc.ConfirmPayment(
		verification.Data.TxRef,
		strconv.FormatInt(verification.Data.ID, 10),
		verification.Data.Amount,
		verification.Data.Currency,
	)
	if err != nil {
		respondWithConfirmError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"booking": gin.H{
				"id":     booking.ID,
				"status": booking.Status,
			},
		},
	})
}

func respondWithConfirmError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidReference):
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid transaction reference.")
	case errors.Is(err, services.ErrNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
	case errors.Is(err, services.ErrInvalidTransition):
		helpers.RespondWithError(c, http.StatusConflict, "Booking is no longer payable.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to process payment.")
	}
}
