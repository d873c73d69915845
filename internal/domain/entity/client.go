package entity

import "time"

// Client representa un cliente registrado por una cuenta.
type Client struct {
	ID        string
	AccountID string // propietario
	Name      string // único en el sistema
	Document  string
	Email     string
	Number    string // teléfono
	CreatedAt time.Time
	UpdatedAt time.Time
}
