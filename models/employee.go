package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the core's read-side projection of the employee directory,
// which is administered elsewhere. The core needs contact channels for call
// preconditions and the area for outcome filtering and aggregate scoring.
type Employee struct {
	Id         uuid.UUID
	FullName   string
	Email      string
	Phone      string
	ChatHandle string
	AreaId     *uuid.UUID
	CreatedAt  time.Time
}
