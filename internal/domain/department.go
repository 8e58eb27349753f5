package domain

import "time"

// Department represents an organizational unit employees report under.
type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
