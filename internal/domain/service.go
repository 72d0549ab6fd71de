package domain

import "time"

// Service represents an offering of the service catalog
type Service struct {
	ID               int64
	Name             string
	Description      *string
	EstimatedMinutes int
	Active           bool
	CreatedAt        time.Time
}

// DefaultServices каталог, создаваемый командой seed
var DefaultServices = []Service{
	{Name: "Consulta general", EstimatedMinutes: 15, Active: true},
	{Name: "Trámite de documentos", EstimatedMinutes: 20, Active: true},
	{Name: "Pagos", EstimatedMinutes: 10, Active: true},
	{Name: "Atención preferencial", EstimatedMinutes: 15, Active: true},
	{Name: "Reclamos", EstimatedMinutes: 25, Active: true},
}
