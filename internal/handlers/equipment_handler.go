package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thriveafrica/tractor-api/internal/helpers"
	"github.com/thriveafrica/tractor-api/internal/models"
)

type EquipmentRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description" binding:"required"`
	ShortDescription string `json:"short_description" binding:"required"`
	Price            int64  `json:"price" binding:"required,gt=0"`
	ImageURL         string `json:"image_url"`
	Category         string `json:"category" binding:"required"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func CreateEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	equipment := models.Equipment{
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		IsAvailable:      true,
	}

	if err := gormDB.Create(&equipment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create equipment.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Equipment created successfully.",
		"equipment_id": equipment.ID,
	})
}

func ListEquipment(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Equipment{}).Where("is_available = ?", true)

	if c.Query("featured") == "true" {
		query = query.Order("created_at DESC")
	}

	if limit := c.Query("limit"); limit != "" {
		limitNum, err := helpers.StringToInt(limit)
		if err != nil || limitNum < 1 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
			return
		}
		query = query.Limit(limitNum)
	}

	var equipment []models.Equipment
	if err := query.Find(&equipment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving equipment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipment": equipment})
}

func GetEquipment(c *gin.Context) {
	equipmentID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var equipment models.Equipment
	if err := gormDB.Where("id = ?", equipmentID).First(&equipment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Equipment not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving equipment.")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

func UpdateEquipment(c *gin.Context) {
	equipmentID := c.Param("id")

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var equipment models.Equipment
	if err := gormDB.Where("id = ?", equipmentID).First(&equipment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Equipment not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding equipment.")
		return
	}

	equipment.Name = req.Name
	equipment.Description = req.Description
	equipment.ShortDescription = req.ShortDescription
	equipment.Price = req.Price
	equipment.Category = req.Category
	if req.ImageURL != "" {
		equipment.ImageURL = req.ImageURL
	}

	if err := gormDB.Save(&equipment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update equipment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Equipment updated successfully.",
		"equipment": equipment,
	})
}

func UpdateEquipmentAvailability(c *gin.Context) {
	equipmentID := c.Param("id")

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. is_available is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Model(&models.Equipment{}).Where("id = ?", equipmentID).Update("is_available", *req.IsAvailable)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update availability.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Equipment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Equipment availability updated successfully."})
}

func DeleteEquipment(c *gin.Context) {
	equipmentID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", equipmentID).Delete(&models.Equipment{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete equipment.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Equipment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted successfully."})
}
