package dto

import "time"

// CreatePartyRequest entrada para crear una persona (cliente o proveedor).
type CreatePartyRequest struct {
	Kind           string `json:"kind"` // cliente | proveedor
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

// UpdatePartyRequest entrada para actualizar una persona.
type UpdatePartyRequest = CreatePartyRequest

// PartyResponse salida de una persona.
type PartyResponse struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PartySelectResponse par id/nombre para selects del front.
type PartySelectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
