package employee

import (
	"time"
)

type Employee struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
