package service

import (
	"github.com/shopspring/decimal"

	"restopos/internal/model"
)

// recomputarTotais re-derives total and restante from the pedido's subtotal
// and stored adjustment amounts. The total is clamped at zero: adjustments can
// never drive a pedido negative. Troco is owned by the settlement operations
// and is left untouched here.
func recomputarTotais(p *model.Pedido) {
	total := p.Subtotal.Sub(p.DescontoValor).Add(p.AcrescimoValor)
	if total.IsNegative() {
		total = decimal.Zero
	}
	p.Total = total

	if p.ValorPago.GreaterThan(total) {
		p.ValorPago = total
	}
	restante := total.Sub(p.ValorPago)
	if restante.IsNegative() {
		restante = decimal.Zero
	}
	p.ValorRestante = restante
}
