package tool

import (
	"github.com/google/uuid"
)

// GenerateRandomUUID returns a random UUID string, used as the submission id
// correlating sink events of one batch.
func GenerateRandomUUID() string {
	return uuid.NewString()
}
