package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement kinds in the caixa ledger.
const (
	MovimentacaoEntrada = "entrada"
	MovimentacaoSaida   = "saida"
)

// Caixa is a cash-register session. All pedido and payment operations are
// scoped to the single open caixa of the establishment; SaldoTotal is the
// maintained running balance (abertura + entradas − saídas + vendas).
type Caixa struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstabelecimentoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ValorAbertura     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AbertoEm          time.Time       `gorm:"not null"`
	ValorFechamento   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	FechadoEm         *time.Time
	Entradas          decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Saidas            decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	TotalVendas       decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoTotal        decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Diferenca         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	AbertoPor         uuid.UUID        `gorm:"type:uuid;not null"`
	FechadoPor        *uuid.UUID       `gorm:"type:uuid"`
	Aberto            bool             `gorm:"not null;default:true;index"`

	Movimentacoes []MovimentacaoCaixa `gorm:"foreignKey:CaixaID"`
}

// MovimentacaoCaixa is a manual cash movement (entrada or saída) recorded
// against an open caixa. Movements are never modified after creation.
type MovimentacaoCaixa struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo          string          `gorm:"type:varchar(10);not null"`
	Descricao     string          `gorm:"not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FuncionarioID uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}
