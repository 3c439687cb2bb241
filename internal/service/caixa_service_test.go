package service

import (
	"context"
	"testing"

	"restopos/internal/dto"
	"restopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abrirCaixa(t *testing.T, svc CaixaService, estab uuid.UUID, valor float64) *dto.CaixaResponse {
	t.Helper()
	resp, err := svc.Abrir(context.Background(), estab, uuid.New(), dto.AbrirCaixaRequest{
		ValorAbertura: decimal.NewFromFloat(valor),
	})
	require.NoError(t, err)
	return resp
}

func TestAbrirCaixa(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	resp := abrirCaixa(t, svc, estab, 100.00)

	assert.True(t, resp.Aberto)
	assert.True(t, resp.SaldoTotal.Equal(decimal.NewFromFloat(100.00)))
}

func TestAbrirSegundoCaixaRecusado(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	abrirCaixa(t, svc, estab, 100.00)

	_, err := svc.Abrir(context.Background(), estab, uuid.New(), dto.AbrirCaixaRequest{
		ValorAbertura: decimal.NewFromFloat(50.00),
	})
	assert.ErrorIs(t, err, ErrConflito)
}

func TestAbrirCaixaValorNegativo(t *testing.T) {
	svc := NewCaixaService(newStubCaixaRepo())

	_, err := svc.Abrir(context.Background(), uuid.New(), uuid.New(), dto.AbrirCaixaRequest{
		ValorAbertura: decimal.NewFromFloat(-1.00),
	})
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestFecharCaixaCalculaDiferenca(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	aberto := abrirCaixa(t, svc, estab, 100.00)
	caixaID := uuid.MustParse(aberto.ID)
	repo.vendas[caixaID] = decimal.NewFromFloat(250.00)

	// Expected balance: 100 + 250 = 350; counted 340 → short by 10.
	resp, err := svc.Fechar(context.Background(), caixaID, uuid.New(), dto.FecharCaixaRequest{
		ValorFechamento: decimal.NewFromFloat(340.00),
	})
	require.NoError(t, err)

	assert.False(t, resp.Aberto)
	require.NotNil(t, resp.Diferenca)
	assert.True(t, resp.Diferenca.Equal(decimal.NewFromFloat(-10.00)), "diferenca %s", resp.Diferenca)
	require.NotNil(t, resp.ValorFechamento)
	assert.True(t, resp.ValorFechamento.Equal(decimal.NewFromFloat(340.00)))
}

func TestFecharCaixaJaFechado(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	aberto := abrirCaixa(t, svc, estab, 100.00)
	caixaID := uuid.MustParse(aberto.ID)
	_, err := svc.Fechar(context.Background(), caixaID, uuid.New(), dto.FecharCaixaRequest{
		ValorFechamento: decimal.NewFromFloat(100.00),
	})
	require.NoError(t, err)

	_, err = svc.Fechar(context.Background(), caixaID, uuid.New(), dto.FecharCaixaRequest{
		ValorFechamento: decimal.NewFromFloat(100.00),
	})
	assert.ErrorIs(t, err, ErrPreCondicao)
}

func TestStatusSemCaixa(t *testing.T) {
	svc := NewCaixaService(newStubCaixaRepo())

	resp, err := svc.Status(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "nenhum", resp.Situacao)
	assert.Nil(t, resp.Caixa)
}

func TestStatusCaixaAbertoRecalculaVendas(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	aberto := abrirCaixa(t, svc, estab, 50.00)
	repo.vendas[uuid.MustParse(aberto.ID)] = decimal.NewFromFloat(120.00)

	resp, err := svc.Status(context.Background(), estab)
	require.NoError(t, err)

	assert.Equal(t, "aberto", resp.Situacao)
	require.NotNil(t, resp.Caixa)
	assert.True(t, resp.Caixa.TotalVendas.Equal(decimal.NewFromFloat(120.00)))
	assert.True(t, resp.Caixa.SaldoTotal.Equal(decimal.NewFromFloat(170.00)))
}

func TestMovimentacaoEntradaESaida(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	aberto := abrirCaixa(t, svc, estab, 100.00)
	caixaID := uuid.MustParse(aberto.ID)

	_, err := svc.RegistrarMovimentacao(context.Background(), caixaID, uuid.New(), dto.MovimentacaoRequest{
		Tipo: model.MovimentacaoEntrada, Descricao: "troco inicial", Valor: decimal.NewFromFloat(30.00),
	})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimentacao(context.Background(), caixaID, uuid.New(), dto.MovimentacaoRequest{
		Tipo: model.MovimentacaoSaida, Descricao: "compra de gelo", Valor: decimal.NewFromFloat(12.00),
	})
	require.NoError(t, err)

	caixa := repo.caixas[caixaID]
	assert.True(t, caixa.Entradas.Equal(decimal.NewFromFloat(30.00)))
	assert.True(t, caixa.Saidas.Equal(decimal.NewFromFloat(12.00)))
	assert.True(t, caixa.SaldoTotal.Equal(decimal.NewFromFloat(118.00)), "saldo %s", caixa.SaldoTotal)

	movs, err := svc.ListarMovimentacoes(context.Background(), caixaID)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

func TestMovimentacaoEmCaixaFechado(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	aberto := abrirCaixa(t, svc, estab, 100.00)
	caixaID := uuid.MustParse(aberto.ID)
	_, err := svc.Fechar(context.Background(), caixaID, uuid.New(), dto.FecharCaixaRequest{
		ValorFechamento: decimal.NewFromFloat(100.00),
	})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimentacao(context.Background(), caixaID, uuid.New(), dto.MovimentacaoRequest{
		Tipo: model.MovimentacaoEntrada, Descricao: "sangria reversa", Valor: decimal.NewFromFloat(5.00),
	})
	assert.ErrorIs(t, err, ErrPreCondicao)
}

func TestRecalcularVendasAtualizaSaldo(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo)
	estab := uuid.New()

	aberto := abrirCaixa(t, svc, estab, 200.00)
	caixaID := uuid.MustParse(aberto.ID)
	_, err := svc.RegistrarMovimentacao(context.Background(), caixaID, uuid.New(), dto.MovimentacaoRequest{
		Tipo: model.MovimentacaoSaida, Descricao: "vale funcionário", Valor: decimal.NewFromFloat(50.00),
	})
	require.NoError(t, err)
	repo.vendas[caixaID] = decimal.NewFromFloat(300.00)

	resp, err := svc.RecalcularVendas(context.Background(), caixaID)
	require.NoError(t, err)

	// 200 − 50 + 300 = 450
	assert.True(t, resp.TotalVendas.Equal(decimal.NewFromFloat(300.00)))
	assert.True(t, resp.SaldoTotal.Equal(decimal.NewFromFloat(450.00)), "saldo %s", resp.SaldoTotal)
}
