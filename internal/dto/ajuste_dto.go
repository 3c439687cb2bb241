package dto

import "github.com/shopspring/decimal"

// AjusteRequest applies a discount or surcharge. Tipo decides how Valor is
// read: percentual of the reconstructed subtotal, or a flat amount.
type AjusteRequest struct {
	Valor decimal.Decimal `json:"valor" validate:"required,gt=0"`
	Tipo  string          `json:"tipo"  validate:"required,oneof=percentual valor"`
}

type AjusteResponse struct {
	ValorAplicado decimal.Decimal  `json:"valor_aplicado"`
	Input         *decimal.Decimal `json:"input,omitempty"`
	Tipo          *string          `json:"tipo,omitempty"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	Total         decimal.Decimal  `json:"total"`
}
