package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/thriveafrica/tractor-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type FlutterwaveConfig struct {
	SecretKey string
	// SecretHash is the shared secret used to sign webhook payloads
	// (sent back by the gateway in the verif-hash header).
	SecretHash string
}

func LoadFlutterwaveConfig() (*FlutterwaveConfig, error) {
	return &FlutterwaveConfig{
		SecretKey:  os.Getenv("FLUTTERWAVE_SECRET_KEY"),
		SecretHash: os.Getenv("FLUTTERWAVE_SECRET_HASH"),
	}, nil
}

type MailConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminEmail string
}

// IsConfigured reports whether enough settings are present to attempt
// sending. Notifications are skipped, not failed, when this is false.
func (c *MailConfig) IsConfigured() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

func LoadMailConfig() (*MailConfig, error) {
	port := 587
	if p := os.Getenv("EMAIL_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid EMAIL_PORT: %v", err)
		}
		port = parsed
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@thriveafrica.com"
	}

	return &MailConfig{
		Host:       os.Getenv("EMAIL_HOST"),
		Port:       port,
		User:       os.Getenv("EMAIL_USER"),
		Password:   os.Getenv("EMAIL_PASS"),
		From:       os.Getenv("EMAIL_USER"),
		AdminEmail: adminEmail,
	}, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Role{}, &models.User{}, &models.Equipment{}, &models.Booking{})
	if err != nil {
		return nil, err
	}

	seedRoles(db)

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: "admin"},
		{Name: "staff"},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}
