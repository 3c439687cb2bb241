package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog entities are owned by external CRUD collaborators; the core only
// reads them (prices, names, method validity, configured counts).

// Produto is the read-only product catalog projection.
type Produto struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EstabelecimentoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nome              string          `gorm:"not null"`
	ValorVenda        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ativo             bool            `gorm:"not null;default:true"`
}

// FormaPagamento is a configured payment method.
type FormaPagamento struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	EstabelecimentoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nome              string    `gorm:"not null"`
	Ativo             bool      `gorm:"not null;default:true"`
}

// ConfigAtendimento is the per-establishment attendance configuration:
// which point kinds are enabled and how many of each the synchronization
// process must keep materialized.
type ConfigAtendimento struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstabelecimentoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MesasHabilitadas  bool      `gorm:"not null;default:true"`
	QtdMesas          int       `gorm:"not null;default:0"`
	BalcoesHabilitados bool     `gorm:"not null;default:false"`
	QtdBalcoes         int      `gorm:"not null;default:0"`
	ComandasHabilitadas bool    `gorm:"not null;default:false"`
	QtdComandas         int     `gorm:"not null;default:0"`
	UpdatedAt           time.Time
}
