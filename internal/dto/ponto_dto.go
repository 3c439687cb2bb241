package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarOuRetomarPontoRequest struct {
	Identificador string  `json:"identificador" validate:"required,min=1"`
	Nome          *string `json:"nome"`
}

type AtualizarStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=disponivel aberta ocupada em_atendimento"`
}

type AtualizarNomePontoRequest struct {
	Nome string `json:"nome"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PontoResponse struct {
	ID                string `json:"id"`
	EstabelecimentoID string `json:"estabelecimento_id"`
	Identificador     string `json:"identificador"`
	Nome              string `json:"nome"`
	Status            string `json:"status"`
	CriadoEm          string `json:"criado_em"`
	AtualizadoEm      string `json:"atualizado_em"`
}

// PontoListItem carries the display status (occupied overrides the stored
// status whenever money is owed) plus the open pedido's total, when any.
type PontoListItem struct {
	PontoResponse
	ValorTotal *decimal.Decimal `json:"valor_total,omitempty"`
}

type SincronizarResponse struct {
	Criados   int `json:"criados"`
	Removidos int `json:"removidos"`
	Total     int `json:"total"`
}
