package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AlocarPagamentoRequest struct {
	FormaPagamentoID string          `json:"forma_pagamento_id" validate:"required,uuid"`
	Valor            decimal.Decimal `json:"valor"              validate:"required,gt=0"`
}

type AlocarLoteRequest struct {
	Alocacoes []AlocarPagamentoRequest `json:"alocacoes" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagamentoResponse struct {
	ID               string          `json:"id"`
	FormaPagamentoID string          `json:"forma_pagamento_id"`
	Valor            decimal.Decimal `json:"valor"`
	CriadoEm         string          `json:"criado_em"`
}

type FormaPagamentoResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

// ResumoPagamentoResponse is the settlement snapshot of a pedido.
// Invariant: Pago + Restante == Total, with Troco tracked separately.
type ResumoPagamentoResponse struct {
	PedidoID  string              `json:"pedido_id"`
	Situacao  string              `json:"situacao"`
	Total     decimal.Decimal     `json:"total"`
	Pago      decimal.Decimal     `json:"pago"`
	Restante  decimal.Decimal     `json:"restante"`
	Troco     decimal.Decimal     `json:"troco"`
	Alocacoes []PagamentoResponse `json:"alocacoes"`
}
