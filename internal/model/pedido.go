package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido situations.
const (
	SituacaoAberto    = "aberto"
	SituacaoPago      = "pago"
	SituacaoEncerrado = "encerrado"
)

// Adjustment kinds, stored alongside the raw input so the amount can be
// recomputed without compounding when the adjustment is replaced.
const (
	AjusteTipoPercentual = "percentual"
	AjusteTipoValor      = "valor"
)

// Pedido is one open tab against an attendance point. At most one pedido in
// situação aberto/pago exists per point; the row is deleted by finalization
// after being copied to PedidoHistorico.
//
// Invariants:
//
//	Total    = Subtotal - DescontoValor + AcrescimoValor (clamped at zero)
//	Restante = max(0, Total - ValorPago)
//	Troco    = max(0, pago bruto - Total)
type Pedido struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PontoAtendimentoID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CaixaID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	FuncionarioID      uuid.UUID  `gorm:"type:uuid;not null"`
	ClienteID          *uuid.UUID `gorm:"type:uuid"`
	FormaPagamentoID   *uuid.UUID `gorm:"type:uuid"`
	Canal              string     `gorm:"type:varchar(30);not null;default:'salao'"`
	// Codigo is the sequential display code, zero-padded, scoped per caixa.
	Codigo   string `gorm:"type:varchar(10);not null;default:''"`
	Situacao string `gorm:"type:varchar(20);not null;default:'aberto'"`

	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	DescontoValor decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	DescontoInput *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DescontoTipo  *string          `gorm:"type:varchar(20)"`

	AcrescimoValor decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	AcrescimoInput *decimal.Decimal `gorm:"type:decimal(12,2)"`
	AcrescimoTipo  *string          `gorm:"type:varchar(20)"`

	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorPago     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorRestante decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Troco         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time

	Itens      []PedidoItem `gorm:"foreignKey:PedidoID"`
	Pagamentos []Pagamento  `gorm:"foreignKey:PedidoID"`
}

// PedidoItem is one product line of a pedido. At most one row exists per
// (pedido, produto): repeated saves merge quantities instead of duplicating.
type PedidoItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantidade    int             `gorm:"not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pendente'"`
	Descricao     string          `gorm:"not null;default:''"`
}

// Pagamento is one payment-method contribution toward a pedido's total.
// The stored value never includes the portion returned as troco.
type Pagamento struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	FormaPagamentoID uuid.UUID       `gorm:"type:uuid;not null"`
	Valor            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CaixaID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time
}
