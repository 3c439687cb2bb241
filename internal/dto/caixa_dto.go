package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	ValorAbertura decimal.Decimal `json:"valor_abertura" validate:"min=0"`
}

type FecharCaixaRequest struct {
	ValorFechamento decimal.Decimal `json:"valor_fechamento" validate:"min=0"`
}

type MovimentacaoRequest struct {
	Tipo      string          `json:"tipo"      validate:"required,oneof=entrada saida"`
	Descricao string          `json:"descricao" validate:"required,min=3"`
	Valor     decimal.Decimal `json:"valor"     validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaResponse struct {
	ID                string           `json:"id"`
	EstabelecimentoID string           `json:"estabelecimento_id"`
	ValorAbertura     decimal.Decimal  `json:"valor_abertura"`
	AbertoEm          string           `json:"aberto_em"`
	ValorFechamento   *decimal.Decimal `json:"valor_fechamento,omitempty"`
	FechadoEm         *string          `json:"fechado_em,omitempty"`
	Entradas          decimal.Decimal  `json:"entradas"`
	Saidas            decimal.Decimal  `json:"saidas"`
	TotalVendas       decimal.Decimal  `json:"total_vendas"`
	SaldoTotal        decimal.Decimal  `json:"saldo_total"`
	Diferenca         *decimal.Decimal `json:"diferenca,omitempty"`
	Aberto            bool             `json:"aberto"`
}

// StatusCaixaResponse reports the most recent caixa of the establishment
// with a derived tag: aberto | fechado | nenhum.
type StatusCaixaResponse struct {
	Situacao string         `json:"situacao"`
	Caixa    *CaixaResponse `json:"caixa,omitempty"`
}

type MovimentacaoResponse struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	CriadoEm  string          `json:"criado_em"`
}
