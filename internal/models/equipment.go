package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Equipment struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	Description      string         `gorm:"not null" json:"description"`
	ShortDescription string         `gorm:"not null" json:"short_description"`
	Price            int64          `gorm:"not null" json:"price"`
	ImageURL         string         `json:"image_url"`
	Category         string         `gorm:"not null" json:"category"`
	IsAvailable      bool           `gorm:"not null" json:"is_available"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (equipment *Equipment) BeforeCreate(tx *gorm.DB) (err error) {
	if equipment.ID == uuid.Nil {
		equipment.ID = uuid.New()
	}
	return
}
