package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingPaid      BookingStatus = "paid"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EquipmentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"equipment_id"`
	Equipment   *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	FullName    string     `gorm:"not null" json:"full_name"`
	Email       string     `gorm:"not null" json:"email"`
	Phone       string     `gorm:"not null" json:"phone"`
	District    string     `gorm:"not null" json:"district"`
	Sector      string     `gorm:"not null" json:"sector"`
	Cell        string     `gorm:"not null" json:"cell"`
	IDNumber    string     `gorm:"not null" json:"id_number"`
	BookingDate time.Time  `gorm:"not null" json:"booking_date"`
	Duration    int        `gorm:"not null" json:"duration"`
	// TotalAmount is snapshotted from the equipment price at creation time
	// and never recomputed, even if the equipment price changes later.
	TotalAmount int64         `gorm:"not null" json:"total_amount"`
	Status      BookingStatus `gorm:"not null;default:'pending'" json:"status"`
	// PaymentID is unique across bookings so a gateway transaction can
	// never be replayed to pay for a second booking.
	PaymentID *string   `gorm:"uniqueIndex" json:"payment_id,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
