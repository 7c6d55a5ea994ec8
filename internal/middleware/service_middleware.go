package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/thriveafrica/tractor-api/internal/gateway"
	"github.com/thriveafrica/tractor-api/internal/mailer"
	"github.com/thriveafrica/tractor-api/internal/services"
)

func BookingServiceMiddleware(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("booking_service", svc)
		c.Next()
	}
}

func GetBookingService(c *gin.Context) *services.BookingService {
	svc, exists := c.Get("booking_service")
	if !exists {
		return nil
	}
	return svc.(*services.BookingService)
}

func FlutterwaveMiddleware(client *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("flutterwave_client", client)
		c.Next()
	}
}

func GetFlutterwaveClient(c *gin.Context) *gateway.Client {
	client, exists := c.Get("flutterwave_client")
	if !exists {
		return nil
	}
	return client.(*gateway.Client)
}

func MailerMiddleware(sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("mailer", sender)
		c.Next()
	}
}

func GetMailer(c *gin.Context) mailer.Sender {
	sender, exists := c.Get("mailer")
	if !exists {
		return nil
	}
	return sender.(mailer.Sender)
}
