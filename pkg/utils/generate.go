package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns an opaque unique token for orders, bookings,
// notifications and receipts.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateRescheduleID follows the RES_<trip>_<4 hex> convention.
func GenerateRescheduleID(tripID string) string {
	return "RES_" + tripID + "_" + uuid.NewString()[:4]
}
