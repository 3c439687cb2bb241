package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type GarantirPedidoRequest struct {
	PontoAtendimentoID string  `json:"ponto_atendimento_id" validate:"required,uuid"`
	Canal              *string `json:"canal"`
}

type AtualizarPedidoRequest struct {
	ClienteID        *string `json:"cliente_id"         validate:"omitempty,uuid"`
	FormaPagamentoID *string `json:"forma_pagamento_id" validate:"omitempty,uuid"`
	Canal            *string `json:"canal"`
}

// CarrinhoItemRequest is one product/quantity/price tuple of the full cart.
// Two entries for the same produto are merged by the replace operation.
type CarrinhoItemRequest struct {
	ProdutoID     string          `json:"produto_id"     validate:"required,uuid"`
	Quantidade    int             `json:"quantidade"     validate:"required,min=1"`
	ValorUnitario decimal.Decimal `json:"valor_unitario" validate:"min=0"`
	Descricao     string          `json:"descricao"`
}

// AplicarCarrinhoRequest replaces the entire item set of a pedido.
// NomePonto, when present, is written onto the attendance point.
type AplicarCarrinhoRequest struct {
	Itens     []CarrinhoItemRequest `json:"itens"      validate:"required,dive"`
	NomePonto *string               `json:"nome_ponto"`
}

type AtualizarItemRequest struct {
	Quantidade int     `json:"quantidade" validate:"required,min=1"`
	Descricao  *string `json:"descricao"`
	Status     *string `json:"status"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemResponse struct {
	ID            string          `json:"id"`
	ProdutoID     string          `json:"produto_id"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Status        string          `json:"status"`
	Descricao     string          `json:"descricao"`
}

type PedidoResponse struct {
	ID                 string           `json:"id"`
	PontoAtendimentoID string           `json:"ponto_atendimento_id"`
	CaixaID            string           `json:"caixa_id"`
	Codigo             string           `json:"codigo"`
	Canal              string           `json:"canal"`
	Situacao           string           `json:"situacao"`
	Subtotal           decimal.Decimal  `json:"subtotal"`
	DescontoValor      decimal.Decimal  `json:"desconto_valor"`
	DescontoInput      *decimal.Decimal `json:"desconto_input,omitempty"`
	DescontoTipo       *string          `json:"desconto_tipo,omitempty"`
	AcrescimoValor     decimal.Decimal  `json:"acrescimo_valor"`
	AcrescimoInput     *decimal.Decimal `json:"acrescimo_input,omitempty"`
	AcrescimoTipo      *string          `json:"acrescimo_tipo,omitempty"`
	Total              decimal.Decimal  `json:"total"`
	ValorPago          decimal.Decimal  `json:"valor_pago"`
	ValorRestante      decimal.Decimal  `json:"valor_restante"`
	Troco              decimal.Decimal  `json:"troco"`
	Itens              []ItemResponse   `json:"itens"`
	CriadoEm           string           `json:"criado_em"`
}

// AplicarCarrinhoResponse is the composite result of a cart save: the pedido
// with its new totals plus the attendance point it mutated.
type AplicarCarrinhoResponse struct {
	Pedido PedidoResponse `json:"pedido"`
	Ponto  PontoResponse  `json:"ponto"`
}
