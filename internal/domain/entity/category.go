package entity

import "time"

// Category agrupa artículos del catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
