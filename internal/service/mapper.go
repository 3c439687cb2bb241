package service

import (
	"time"

	"restopos/internal/dto"
	"restopos/internal/model"
)

// DTO mapping helpers shared by the services.

func pontoToResponse(p *model.PontoAtendimento) dto.PontoResponse {
	return dto.PontoResponse{
		ID:                p.ID.String(),
		EstabelecimentoID: p.EstabelecimentoID.String(),
		Identificador:     p.Identificador,
		Nome:              p.Nome,
		Status:            p.Status,
		CriadoEm:          p.CreatedAt.Format(time.RFC3339),
		AtualizadoEm:      p.UpdatedAt.Format(time.RFC3339),
	}
}

func itemToResponse(i *model.PedidoItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            i.ID.String(),
		ProdutoID:     i.ProdutoID.String(),
		Quantidade:    i.Quantidade,
		ValorUnitario: i.ValorUnitario,
		Status:        i.Status,
		Descricao:     i.Descricao,
	}
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	itens := make([]dto.ItemResponse, 0, len(p.Itens))
	for i := range p.Itens {
		itens = append(itens, itemToResponse(&p.Itens[i]))
	}
	return dto.PedidoResponse{
		ID:                 p.ID.String(),
		PontoAtendimentoID: p.PontoAtendimentoID.String(),
		CaixaID:            p.CaixaID.String(),
		Codigo:             p.Codigo,
		Canal:              p.Canal,
		Situacao:           p.Situacao,
		Subtotal:           p.Subtotal,
		DescontoValor:      p.DescontoValor,
		DescontoInput:      p.DescontoInput,
		DescontoTipo:       p.DescontoTipo,
		AcrescimoValor:     p.AcrescimoValor,
		AcrescimoInput:     p.AcrescimoInput,
		AcrescimoTipo:      p.AcrescimoTipo,
		Total:              p.Total,
		ValorPago:          p.ValorPago,
		ValorRestante:      p.ValorRestante,
		Troco:              p.Troco,
		Itens:              itens,
		CriadoEm:           p.CreatedAt.Format(time.RFC3339),
	}
}

func pagamentoToResponse(p *model.Pagamento) dto.PagamentoResponse {
	return dto.PagamentoResponse{
		ID:               p.ID.String(),
		FormaPagamentoID: p.FormaPagamentoID.String(),
		Valor:            p.Valor,
		CriadoEm:         p.CreatedAt.Format(time.RFC3339),
	}
}

func caixaToResponse(c *model.Caixa) dto.CaixaResponse {
	resp := dto.CaixaResponse{
		ID:                c.ID.String(),
		EstabelecimentoID: c.EstabelecimentoID.String(),
		ValorAbertura:     c.ValorAbertura,
		AbertoEm:          c.AbertoEm.Format(time.RFC3339),
		ValorFechamento:   c.ValorFechamento,
		Entradas:          c.Entradas,
		Saidas:            c.Saidas,
		TotalVendas:       c.TotalVendas,
		SaldoTotal:        c.SaldoTotal,
		Diferenca:         c.Diferenca,
		Aberto:            c.Aberto,
	}
	if c.FechadoEm != nil {
		t := c.FechadoEm.Format(time.RFC3339)
		resp.FechadoEm = &t
	}
	return resp
}

func movimentacaoToResponse(m *model.MovimentacaoCaixa) dto.MovimentacaoResponse {
	return dto.MovimentacaoResponse{
		ID:        m.ID.String(),
		Tipo:      m.Tipo,
		Descricao: m.Descricao,
		Valor:     m.Valor,
		CriadoEm:  m.CreatedAt.Format(time.RFC3339),
	}
}
