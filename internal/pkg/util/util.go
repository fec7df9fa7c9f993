package util

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateTimestampWithPrefix builds a sortable identifier such as
// "EV1714725600123456789".
func GenerateTimestampWithPrefix(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}

func GenerateUUID() string {
	return uuid.NewString()
}
