package dto

import "github.com/shopspring/decimal"

// FinalizarResponse reports the archived order and the freed attendance point.
type FinalizarResponse struct {
	PedidoHistoricoID string          `json:"pedido_historico_id"`
	Codigo            string          `json:"codigo"`
	ValorTotal        decimal.Decimal `json:"valor_total"`
	Itens             int             `json:"itens"`
	Pagamentos        int             `json:"pagamentos"`
	Ponto             PontoResponse   `json:"ponto"`
}
