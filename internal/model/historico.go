package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Historical tables are finalization's only write target and a read-only
// reporting source everywhere else. Rows are never updated or deleted.

// PedidoHistorico snapshots a pedido at finalization. Situacao is always
// "encerrado" and Status always "finalizado".
type PedidoHistorico struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	PontoAtendimentoID uuid.UUID  `gorm:"type:uuid;not null"`
	CaixaID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	FuncionarioID      uuid.UUID  `gorm:"type:uuid;not null"`
	ClienteID          *uuid.UUID `gorm:"type:uuid"`
	FormaPagamentoID   *uuid.UUID `gorm:"type:uuid"`
	Canal              string     `gorm:"type:varchar(30);not null"`
	Codigo             string     `gorm:"type:varchar(10);not null"`
	Situacao           string     `gorm:"type:varchar(20);not null;default:'encerrado'"`
	Status             string     `gorm:"type:varchar(20);not null;default:'finalizado'"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescontoValor      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AcrescimoValor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt          time.Time

	Itens      []PedidoItemHistorico `gorm:"foreignKey:PedidoHistoricoID"`
	Pagamentos []PagamentoHistorico  `gorm:"foreignKey:PedidoHistoricoID"`
}

type PedidoItemHistorico struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoHistoricoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID         uuid.UUID       `gorm:"type:uuid;not null"`
	Quantidade        int             `gorm:"not null"`
	ValorUnitario     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao         string          `gorm:"not null;default:''"`
}

type PagamentoHistorico struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoHistoricoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	FormaPagamentoID  uuid.UUID       `gorm:"type:uuid;not null"`
	Valor             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CaixaID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt         time.Time
}
