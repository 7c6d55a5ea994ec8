package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thriveafrica/tractor-api/internal/helpers"
	"github.com/thriveafrica/tractor-api/internal/middleware"
)

type ContactRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

func Contact(adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "All fields are required.")
			return
		}

		sender := middleware.GetMailer(c)
		if sender == nil {
			helpers.RespondWithError(c, http.StatusServiceUnavailable, "Contact form is temporarily unavailable.")
			return
		}

		body := fmt.Sprintf(
			"<h1>New Contact Message</h1><p><strong>From:</strong> %s (%s)</p><p>%s</p>",
			html.EscapeString(req.FullName),
			html.EscapeString(req.Email),
			html.EscapeString(req.Message),
		)

		if err := sender.Send(adminEmail, "New Contact: "+req.Subject, body); err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to send your message. Please try again later.")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully."})
	}
}
