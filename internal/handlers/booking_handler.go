package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thriveafrica/tractor-api/internal/helpers"
	"github.com/thriveafrica/tractor-api/internal/middleware"
	"github.com/thriveafrica/tractor-api/internal/models"
	"github.com/thriveafrica/tractor-api/internal/services"
)

type BookingRequest struct {
	EquipmentID uuid.UUID `json:"equipment_id" binding:"required"`
	FullName    string    `json:"full_name" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone" binding:"required"`
	District    string    `json:"district" binding:"required"`
	Sector      string    `json:"sector" binding:"required"`
	Cell        string    `json:"cell" binding:"required"`
	IDNumber    string    `json:"id_number" binding:"required"`
	BookingDate string    `json:"booking_date" binding:"required"`
	Duration    int       `json:"duration" binding:"required,min=1"`
	Message     *string   `json:"message"`
}

type StatusUpdateRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

func CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking date. Expected YYYY-MM-DD.")
		return
	}

	svc := middleware.GetBookingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Booking service not found.")
		return
	}

	booking, err := svc.CreateBooking(services.CreateBookingInput{
		EquipmentID: req.EquipmentID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		District:    req.District,
		Sector:      req.Sector,
		Cell:        req.Cell,
		IDNumber:    req.IDNumber,
		BookingDate: bookingDate,
		Duration:    req.Duration,
		Message:     req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Equipment not found.")
		case errors.Is(err, services.ErrNotAvailable):
			helpers.RespondWithError(c, http.StatusBadRequest, "Equipment is not available for booking.")
		case errors.Is(err, services.ErrValidation):
			helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully.",
		"booking": booking,
	})
}

func GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	svc := middleware.GetBookingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Booking service not found.")
		return
	}

	booking, err := svc.GetBooking(bookingID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving booking.")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func ListBookings(c *gin.Context) {
	svc := middleware.GetBookingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Booking service not found.")
		return
	}

	status := models.BookingStatus(c.Query("status"))

	bookings, err := svc.ListBookings(status)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Status is required.")
		return
	}

	switch req.Status {
	case models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled:
	default:
		helpers.RespondWithError(c, http.StatusBadRequest, "Status must be confirmed, completed or cancelled.")
		return
	}

	svc := middleware.GetBookingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Booking service not found.")
		return
	}

	booking, err := svc.UpdateStatus(bookingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		case errors.Is(err, services.ErrInvalidTransition):
			helpers.RespondWithError(c, http.StatusConflict, "Booking cannot move from its current status to the requested one.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking status.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking status updated successfully.",
		"booking": booking,
	})
}
