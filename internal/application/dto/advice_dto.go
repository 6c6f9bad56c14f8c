package dto

import "time"

// AdviceRequest entrada para pedir consejos. BusinessName vacío usa el nombre configurado.
type AdviceRequest struct {
	BusinessName string `json:"business_name,omitempty"`
}

// AdviceTaskDTO estado de la última consulta de consejos.
// State: idle (nunca se pidió), running o done.
type AdviceTaskDTO struct {
	ID           string     `json:"id,omitempty"`
	State        string     `json:"state"`
	BusinessName string     `json:"business_name,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Text         string     `json:"text,omitempty"`
	Fallback     bool       `json:"fallback,omitempty"` // true si Text es el mensaje de respaldo
}
