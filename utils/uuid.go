package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier for bids and auctions
func GenerateID() string {
	return uuid.NewString()
}
