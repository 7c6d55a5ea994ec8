package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thriveafrica/tractor-api/internal/helpers"
	"github.com/thriveafrica/tractor-api/internal/mailer"
	"github.com/thriveafrica/tractor-api/internal/models"
	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle: creation, the two payment
// confirmation channels (redirect verification and gateway webhook) and
// admin-driven status changes. Both confirmation channels funnel into
// ConfirmPayment, which is idempotent, so it does not matter which one
// reports first or whether both do.
type BookingService struct {
	db         *gorm.DB
	mail       mailer.Sender
	adminEmail string

	// allowUnpaidConfirm permits the admin to confirm a booking that never
	// went through the payment gateway (manual or offline payment).
	allowUnpaidConfirm bool
}

func NewBookingService(db *gorm.DB, mail mailer.Sender, adminEmail string, allowUnpaidConfirm bool) *BookingService {
	return &BookingService{
		db:                 db,
		mail:               mail,
		adminEmail:         adminEmail,
		allowUnpaidConfirm: allowUnpaidConfirm,
	}
}

type CreateBookingInput struct {
	EquipmentID uuid.UUID
	FullName    string
	Email       string
	Phone       string
	District    string
	Sector      string
	Cell        string
	IDNumber    string
	BookingDate time.Time
	Duration    int
	Message     *string
}

func (in *CreateBookingInput) validate() error {
	if in.FullName == "" || in.Email == "" || in.Phone == "" {
		return ErrValidation
	}
	if in.District == "" || in.Sector == "" || in.Cell == "" || in.IDNumber == "" {
		return ErrValidation
	}
	if in.BookingDate.IsZero() || in.Duration < 1 {
		return ErrValidation
	}
	return nil
}

// CreateBooking validates the equipment and persists a pending booking. The
// total amount is snapshotted from the current equipment price; later price
// changes never affect existing bookings. No email is sent on creation.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var equipment models.Equipment
	if err := s.db.First(&equipment, "id = ?", in.EquipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !equipment.IsAvailable {
		return nil, ErrNotAvailable
	}

	booking := models.Booking{
		EquipmentID: equipment.ID,
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		District:    in.District,
		Sector:      in.Sector,
		Cell:        in.Cell,
		IDNumber:    in.IDNumber,
		BookingDate: in.BookingDate,
		Duration:    in.Duration,
		TotalAmount: equipment.Price * int64(in.Duration),
		Status:      models.BookingPending,
		Message:     in.Message,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}

	booking.Equipment = &equipment
	return &booking, nil
}

// ConfirmPayment records a successful gateway charge against the booking
// referenced by txRef. It is called from the redirect verification endpoint
// and from the webhook handler; whichever arrives first performs the
// mutation and the other observes a no-op. A booking already past pending
// is returned unchanged and its payment id is never overwritten.
func (s *BookingService) ConfirmPayment(txRef, transactionID string, amount float64, currency string) (*models.Booking, error) {
	bookingID, err := helpers.ExtractBookingID(txRef)
	if err != nil {
		return nil, ErrInvalidReference
	}

	booking, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.BookingPaid, models.BookingConfirmed, models.BookingCompleted:
		return booking, nil
	}

	// Conditional update rather than read-then-write: if the other channel
	// got here first, zero rows are affected and we re-read instead of
	// double-applying.
	result := s.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, models.BookingPending).
		Updates(map[string]interface{}{
			"status":     models.BookingPaid,
			"payment_id": transactionID,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		booking, err = s.GetBooking(bookingID)
		if err != nil {
			return nil, err
		}
		switch booking.Status {
		case models.BookingPaid, models.BookingConfirmed, models.BookingCompleted:
			return booking, nil
		}
		// Cancelled while the payment was in flight.
		return nil, ErrInvalidTransition
	}

	booking, err = s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	s.notifyAdminPaymentReceived(booking, transactionID, amount, currency)

	return booking, nil
}

// UpdateStatus applies an admin-driven transition. The write is guarded by
// the status the booking was read at, so a webhook landing between the read
// and the write never gets overwritten; the transition is re-evaluated
// against the fresh status instead. Confirmation and cancellation trigger a
// customer email; a failed send is logged and never rolls back the status
// change.
func (s *BookingService) UpdateStatus(bookingID uuid.UUID, newStatus models.BookingStatus) (*models.Booking, error) {
	for {
		booking, err := s.GetBooking(bookingID)
		if err != nil {
			return nil, err
		}

		if !s.canTransition(booking.Status, newStatus) {
			return nil, ErrInvalidTransition
		}

		ok, err := s.tryTransition(bookingID, booking.Status, newStatus)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Another writer moved the booking first.
			continue
		}
		booking.Status = newStatus

		switch newStatus {
		case models.BookingConfirmed, models.BookingCancelled:
			s.notifyCustomerStatusChanged(booking, newStatus)
		}

		return booking, nil
	}
}

// tryTransition flips the status only if the booking still holds the status
// it was read at, and reports whether the write took effect.
func (s *BookingService) tryTransition(bookingID uuid.UUID, from, to models.BookingStatus) (bool, error) {
	result := s.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *BookingService) canTransition(from, to models.BookingStatus) bool {
	if from.IsTerminal() {
		return false
	}

	switch to {
	case models.BookingConfirmed:
		if from == models.BookingPaid {
			return true
		}
		return from == models.BookingPending && s.allowUnpaidConfirm
	case models.BookingCompleted:
		return from == models.BookingConfirmed
	case models.BookingCancelled:
		return from == models.BookingPending || from == models.BookingPaid || from == models.BookingConfirmed
	}
	return false
}

func (s *BookingService) GetBooking(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Equipment").First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) ListBookings(status models.BookingStatus) ([]models.Booking, error) {
	query := s.db.Preload("Equipment").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) notifyAdminPaymentReceived(booking *models.Booking, transactionID string, amount float64, currency string) {
	if s.mail == nil {
		return
	}

	equipmentName := ""
	if booking.Equipment != nil {
		equipmentName = booking.Equipment.Name
	}

	html, err := mailer.RenderPaymentReceived(mailer.PaymentEmailData{
		BookingID:     booking.ID.String(),
		TransactionID: transactionID,
		Amount:        amount,
		Currency:      currency,
		CustomerName:  booking.FullName,
		EquipmentName: equipmentName,
		Location:      fmt.Sprintf("%s, %s, %s", booking.District, booking.Sector, booking.Cell),
		BookingDate:   booking.BookingDate,
	})
	if err != nil {
		log.Printf("failed to render payment notification: %v", err)
		return
	}

	if err := s.mail.Send(s.adminEmail, "New Payment Received", html); err != nil {
		log.Printf("failed to send payment notification for booking %s: %v", booking.ID, err)
	}
}

func (s *BookingService) notifyCustomerStatusChanged(booking *models.Booking, status models.BookingStatus) {
	if s.mail == nil || booking.Email == "" {
		return
	}

	equipmentName := ""
	if booking.Equipment != nil {
		equipmentName = booking.Equipment.Name
	}

	data := mailer.BookingEmailData{
		FullName:      booking.FullName,
		EquipmentName: equipmentName,
		BookingDate:   booking.BookingDate,
		Duration:      booking.Duration,
		District:      booking.District,
		Sector:        booking.Sector,
		Cell:          booking.Cell,
		TotalAmount:   booking.TotalAmount,
	}

	var (
		subject string
		html    string
		err     error
	)
	if status == models.BookingConfirmed {
		subject = "Booking Confirmed - Thrive Africa Tractor"
		html, err = mailer.RenderBookingConfirmation(data)
	} else {
		subject = "Booking Cancelled - Thrive Africa Tractor"
		html, err = mailer.RenderBookingCancellation(data)
	}
	if err != nil {
		log.Printf("failed to render status notification: %v", err)
		return
	}

	if err := s.mail.Send(booking.Email, subject, html); err != nil {
		log.Printf("failed to send status notification for booking %s: %v", booking.ID, err)
	}
}
