package service

import (
	"context"
	"errors"
	"testing"

	"restopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecalculador struct {
	enfileirados []uuid.UUID
}

func (s *stubRecalculador) EnqueueRecalculoVendas(_ context.Context, caixaID uuid.UUID) error {
	s.enfileirados = append(s.enfileirados, caixaID)
	return nil
}

type finalizacaoFixture struct {
	svc        FinalizacaoService
	pedidoRepo *stubPedidoRepo
	pagRepo    *stubPagamentoRepo
	histRepo   *stubHistoricoRepo
	pontoRepo  *stubPontoRepo
	recalc     *stubRecalculador
	pedido     *model.Pedido
	ponto      *model.PontoAtendimento
}

func novaFinalizacaoFixture(t *testing.T) *finalizacaoFixture {
	t.Helper()
	f := &finalizacaoFixture{
		pedidoRepo: newStubPedidoRepo(),
		pagRepo:    newStubPagamentoRepo(),
		histRepo:   newStubHistoricoRepo(),
		pontoRepo:  newStubPontoRepo(),
		recalc:     &stubRecalculador{},
	}
	f.svc = NewFinalizacaoService(f.pedidoRepo, f.pagRepo, f.histRepo, f.pontoRepo, f.recalc)

	f.ponto = &model.PontoAtendimento{
		EstabelecimentoID: uuid.New(),
		Identificador:     "MESA 2",
		Nome:              "Ana",
		Status:            model.StatusOcupada,
	}
	require.NoError(t, f.pontoRepo.Create(context.Background(), f.ponto))

	f.pedido = &model.Pedido{
		PontoAtendimentoID: f.ponto.ID,
		CaixaID:            uuid.New(),
		FuncionarioID:      uuid.New(),
		Codigo:             "03",
		Canal:              "salao",
		Situacao:           model.SituacaoPago,
		Subtotal:           decimal.NewFromFloat(40.00),
		Total:              decimal.NewFromFloat(40.00),
		ValorPago:          decimal.NewFromFloat(40.00),
	}
	require.NoError(t, f.pedidoRepo.Create(context.Background(), f.pedido))

	item := &model.PedidoItem{
		ID:            uuid.New(),
		PedidoID:      f.pedido.ID,
		ProdutoID:     uuid.New(),
		Quantidade:    2,
		ValorUnitario: decimal.NewFromFloat(20.00),
	}
	require.NoError(t, f.pedidoRepo.SaveItem(context.Background(), item))

	require.NoError(t, f.pagRepo.CreateTx(nil, &model.Pagamento{
		PedidoID:         f.pedido.ID,
		FormaPagamentoID: uuid.New(),
		Valor:            decimal.NewFromFloat(40.00),
		CaixaID:          f.pedido.CaixaID,
	}))
	return f
}

func TestFinalizarArquivaERemoveVivos(t *testing.T) {
	f := novaFinalizacaoFixture(t)

	resp, err := f.svc.Finalizar(context.Background(), f.pedido.ID)
	require.NoError(t, err)

	// Archive carries the snapshot.
	assert.Equal(t, "03", resp.Codigo)
	assert.True(t, resp.ValorTotal.Equal(decimal.NewFromFloat(40.00)))
	assert.Equal(t, 1, resp.Itens)
	assert.Equal(t, 1, resp.Pagamentos)

	hist, err := f.histRepo.FindPedido(context.Background(), uuid.MustParse(resp.PedidoHistoricoID))
	require.NoError(t, err)
	assert.Equal(t, model.SituacaoEncerrado, hist.Situacao)
	assert.Equal(t, "finalizado", hist.Status)
	assert.Equal(t, f.pedido.ID, hist.PedidoID)
	assert.Len(t, f.histRepo.itens, 1)
	assert.Len(t, f.histRepo.pagamentos, 1)

	// Live rows are gone.
	assert.Empty(t, f.pedidoRepo.pedidos)
	assert.Empty(t, f.pedidoRepo.itens)
	assert.Empty(t, f.pagRepo.pagamentos)
}

func TestFinalizarLiberaPonto(t *testing.T) {
	f := novaFinalizacaoFixture(t)

	resp, err := f.svc.Finalizar(context.Background(), f.pedido.ID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDisponivel, resp.Ponto.Status)
	assert.Empty(t, resp.Ponto.Nome)

	ponto := f.pontoRepo.pontos[f.ponto.ID]
	assert.Equal(t, model.StatusDisponivel, ponto.Status)
	assert.Empty(t, ponto.Nome)
}

func TestFinalizarEnfileiraRecalculoDeVendas(t *testing.T) {
	f := novaFinalizacaoFixture(t)

	_, err := f.svc.Finalizar(context.Background(), f.pedido.ID)
	require.NoError(t, err)

	require.Len(t, f.recalc.enfileirados, 1)
	assert.Equal(t, f.pedido.CaixaID, f.recalc.enfileirados[0])
}

func TestFinalizarFalhaNoArquivoDeItensPreservaVivos(t *testing.T) {
	f := novaFinalizacaoFixture(t)
	f.histRepo.falhaItens = errors.New("insert de itens recusado")

	_, err := f.svc.Finalizar(context.Background(), f.pedido.ID)
	require.Error(t, err)

	// Live rows survive untouched.
	assert.Contains(t, f.pedidoRepo.pedidos, f.pedido.ID)
	assert.Len(t, f.pedidoRepo.itens, 1)
	assert.Len(t, f.pagRepo.pagamentos, 1)

	// The point keeps its occupation and guest name.
	ponto := f.pontoRepo.pontos[f.ponto.ID]
	assert.Equal(t, model.StatusOcupada, ponto.Status)
	assert.Equal(t, "Ana", ponto.Nome)

	assert.Empty(t, f.recalc.enfileirados)
}

func TestFinalizarFalhaNoArquivoDePagamentosPreservaVivos(t *testing.T) {
	f := novaFinalizacaoFixture(t)
	f.histRepo.falhaPagamentos = errors.New("insert de pagamentos recusado")

	_, err := f.svc.Finalizar(context.Background(), f.pedido.ID)
	require.Error(t, err)

	assert.Contains(t, f.pedidoRepo.pedidos, f.pedido.ID)
	assert.Len(t, f.pagRepo.pagamentos, 1)
	assert.Equal(t, model.StatusOcupada, f.pontoRepo.pontos[f.ponto.ID].Status)
	assert.Empty(t, f.recalc.enfileirados)
}

func TestFinalizarPedidoInexistente(t *testing.T) {
	f := novaFinalizacaoFixture(t)

	_, err := f.svc.Finalizar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNaoEncontrado)
	assert.Empty(t, f.recalc.enfileirados)
}

func TestRecomputarTotaisClampaEmZero(t *testing.T) {
	p := &model.Pedido{
		Subtotal:      decimal.NewFromFloat(10.00),
		DescontoValor: decimal.NewFromFloat(25.00),
		ValorPago:     decimal.NewFromFloat(5.00),
	}
	recomputarTotais(p)

	assert.True(t, p.Total.IsZero())
	assert.True(t, p.ValorPago.IsZero())
	assert.True(t, p.ValorRestante.IsZero())
}
