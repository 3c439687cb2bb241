package model

import (
	"time"

	"github.com/google/uuid"
)

// Valid attendance-point statuses. The point cycles
// disponivel → aberta → ocupada → em_atendimento → disponivel;
// em_atendimento doubles as a soft lock against concurrent staff.
const (
	StatusDisponivel    = "disponivel"
	StatusAberta        = "aberta"
	StatusOcupada       = "ocupada"
	StatusEmAtendimento = "em_atendimento"
)

// PontoAtendimento is a physical or logical place of service — a table
// ("MESA 3"), a counter ("BALCAO 1") or an open tab ("COMANDA 7").
// Identificador is unique per establishment; Nome is a free display name set
// by staff and blanked whenever the point returns to the pool.
type PontoAtendimento struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstabelecimentoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ponto_identificador"`
	Identificador     string    `gorm:"not null;uniqueIndex:idx_ponto_identificador"`
	Nome              string    `gorm:"not null;default:''"`
	Status            string    `gorm:"type:varchar(20);not null;default:'disponivel'"`
	// CreatedAt is the activity clock: restamped on open/reset so elapsed-time
	// displays restart with each service cycle.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusValido reports whether s is one of the four known statuses.
func StatusValido(s string) bool {
	switch s {
	case StatusDisponivel, StatusAberta, StatusOcupada, StatusEmAtendimento:
		return true
	}
	return false
}
