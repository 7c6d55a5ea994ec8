package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const TransactionRefPrefix = "thriveafrica"

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// GenerateTransactionRef builds the reference passed to the payment gateway
// for a booking: <prefix>-<unix timestamp>-<booking id>.
func GenerateTransactionRef(bookingID uuid.UUID) string {
	return fmt.Sprintf("%s-%d-%s", TransactionRefPrefix, time.Now().Unix(), bookingID)
}

// ExtractBookingID recovers the booking id from the trailing segment of a
// transaction reference. The id itself is a UUID and contains dashes, so
// everything after the prefix and timestamp segments is rejoined before
// parsing.
func ExtractBookingID(txRef string) (uuid.UUID, error) {
	parts := strings.Split(txRef, "-")
	if len(parts) < 3 {
		return uuid.Nil, fmt.Errorf("invalid transaction reference format")
	}

	bookingID, err := uuid.Parse(strings.Join(parts[2:], "-"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid booking ID in transaction reference")
	}

	return bookingID, nil
}
