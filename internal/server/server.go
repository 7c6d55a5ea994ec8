package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thriveafrica/tractor-api/config"
	"github.com/thriveafrica/tractor-api/internal/gateway"
	"github.com/thriveafrica/tractor-api/internal/handlers"
	"github.com/thriveafrica/tractor-api/internal/mailer"
	"github.com/thriveafrica/tractor-api/internal/middleware"
	"github.com/thriveafrica/tractor-api/internal/services"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	flwCfg, err := config.LoadFlutterwaveConfig()
	if err != nil {
		return fmt.Errorf("failed to load flutterwave config: %v", err)
	}

	mailCfg, err := config.LoadMailConfig()
	if err != nil {
		return fmt.Errorf("failed to load mail config: %v", err)
	}

	sender := mailer.New(mailCfg)
	flwClient := gateway.NewClient(flwCfg.SecretKey)

	allowUnpaidConfirm := os.Getenv("ALLOW_UNPAID_CONFIRM") != "false"
	bookingService := services.NewBookingService(db, sender, mailCfg.AdminEmail, allowUnpaidConfirm)

	r := gin.Default()

	setupRoutes(r, db, bookingService, flwClient, sender, flwCfg, mailCfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(
	r *gin.Engine,
	db *gorm.DB,
	bookingService *services.BookingService,
	flwClient *gateway.Client,
	sender mailer.Sender,
	flwCfg *config.FlutterwaveConfig,
	mailCfg *config.MailConfig,
) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.BookingServiceMiddleware(bookingService))
	r.Use(middleware.FlutterwaveMiddleware(flwClient))
	r.Use(middleware.MailerMiddleware(sender))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/equipment", handlers.ListEquipment)
		public.GET("/equipment/:id", handlers.GetEquipment)

		public.POST("/bookings", handlers.CreateBooking)
		public.GET("/bookings/:id", handlers.GetBooking)

		public.POST("/payments/initialize", handlers.InitializePayment)
		public.POST("/payments/verify", handlers.VerifyPayment)
		public.POST("/webhooks/flutterwave", handlers.FlutterwaveWebhook(flwCfg.SecretHash))

		public.POST("/contact", handlers.Contact(mailCfg.AdminEmail))
	}

	admin := r.Group("/v1")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/bookings", handlers.ListBookings)
		admin.PUT("/bookings/:id/status", handlers.UpdateBookingStatus)

		admin.POST("/equipment", handlers.CreateEquipment)
		admin.PUT("/equipment/:id", handlers.UpdateEquipment)
		admin.PATCH("/equipment/:id/availability", handlers.UpdateEquipmentAvailability)
		admin.DELETE("/equipment/:id", handlers.DeleteEquipment)
	}
}
