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

func novoAjusteFixture(t *testing.T, subtotal float64) (AjusteService, *stubPedidoRepo, uuid.UUID) {
	t.Helper()
	repo := newStubPedidoRepo()
	pedido := &model.Pedido{
		PontoAtendimentoID: uuid.New(),
		CaixaID:            uuid.New(),
		FuncionarioID:      uuid.New(),
		Situacao:           model.SituacaoAberto,
		Subtotal:           decimal.NewFromFloat(subtotal),
		Total:              decimal.NewFromFloat(subtotal),
	}
	require.NoError(t, repo.Create(context.Background(), pedido))
	return NewAjusteService(repo), repo, pedido.ID
}

func TestAplicarDescontoPercentual(t *testing.T) {
	svc, _, pedidoID := novoAjusteFixture(t, 100.00)

	resp, err := svc.Aplicar(context.Background(), pedidoID, AlvoDesconto, dto.AjusteRequest{
		Valor: decimal.NewFromInt(10),
		Tipo:  model.AjusteTipoPercentual,
	})
	require.NoError(t, err)

	assert.True(t, resp.ValorAplicado.Equal(decimal.NewFromFloat(10.00)))
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(90.00)), "total %s", resp.Total)
}

func TestReaplicarDescontoNaoComposto(t *testing.T) {
	svc, _, pedidoID := novoAjusteFixture(t, 200.00)

	_, err := svc.Aplicar(context.Background(), pedidoID, AlvoDesconto, dto.AjusteRequest{
		Valor: decimal.NewFromInt(10),
		Tipo:  model.AjusteTipoPercentual,
	})
	require.NoError(t, err)

	// The second percentage applies over the untouched subtotal, never over
	// the already-discounted total.
	resp, err := svc.Aplicar(context.Background(), pedidoID, AlvoDesconto, dto.AjusteRequest{
		Valor: decimal.NewFromInt(5),
		Tipo:  model.AjusteTipoPercentual,
	})
	require.NoError(t, err)

	assert.True(t, resp.ValorAplicado.Equal(decimal.NewFromFloat(10.00)))
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(190.00)), "total %s", resp.Total)
}

func TestDescontoEAcrescimoConvivem(t *testing.T) {
	svc, _, pedidoID := novoAjusteFixture(t, 100.00)

	_, err := svc.Aplicar(context.Background(), pedidoID, AlvoDesconto, dto.AjusteRequest{
		Valor: decimal.NewFromInt(10),
		Tipo:  model.AjusteTipoPercentual,
	})
	require.NoError(t, err)

	resp, err := svc.Aplicar(context.Background(), pedidoID, AlvoAcrescimo, dto.AjusteRequest{
		Valor: decimal.NewFromFloat(5.00),
		Tipo:  model.AjusteTipoValor,
	})
	require.NoError(t, err)

	// 100 − 10% + 5 = 95
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(95.00)), "total %s", resp.Total)
}

func TestRemoverDescontoRestauraTotal(t *testing.T) {
	svc, repo, pedidoID := novoAjusteFixture(t, 80.00)

	_, err := svc.Aplicar(context.Background(), pedidoID, AlvoDesconto, dto.AjusteRequest{
		Valor: decimal.NewFromFloat(20.00),
		Tipo:  model.AjusteTipoValor,
	})
	require.NoError(t, err)

	resp, err := svc.Remover(context.Background(), pedidoID, AlvoDesconto)
	require.NoError(t, err)

	assert.True(t, resp.ValorAplicado.IsZero())
	assert.Nil(t, resp.Input)
	assert.Nil(t, resp.Tipo)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(80.00)))

	pedido, _ := repo.FindByID(context.Background(), pedidoID)
	assert.Nil(t, pedido.DescontoTipo)
}

func TestDescontoMaiorQueSubtotalTravaEmZero(t *testing.T) {
	svc, _, pedidoID := novoAjusteFixture(t, 30.00)

	resp, err := svc.Aplicar(context.Background(), pedidoID, AlvoDesconto, dto.AjusteRequest{
		Valor: decimal.NewFromFloat(50.00),
		Tipo:  model.AjusteTipoValor,
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.IsZero(), "total %s", resp.Total)
}

func TestAjusteGuardaInputETipo(t *testing.T) {
	svc, repo, pedidoID := novoAjusteFixture(t, 150.00)

	_, err := svc.Aplicar(context.Background(), pedidoID, AlvoAcrescimo, dto.AjusteRequest{
		Valor: decimal.NewFromInt(8),
		Tipo:  model.AjusteTipoPercentual,
	})
	require.NoError(t, err)

	pedido, _ := repo.FindByID(context.Background(), pedidoID)
	require.NotNil(t, pedido.AcrescimoInput)
	require.NotNil(t, pedido.AcrescimoTipo)
	assert.True(t, pedido.AcrescimoInput.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, model.AjusteTipoPercentual, *pedido.AcrescimoTipo)
	// 150 × 8% = 12
	assert.True(t, pedido.AcrescimoValor.Equal(decimal.NewFromFloat(12.00)))
}

func TestAjusteAlvoDesconhecido(t *testing.T) {
	svc, _, pedidoID := novoAjusteFixture(t, 10.00)

	_, err := svc.Aplicar(context.Background(), pedidoID, "gorjeta", dto.AjusteRequest{
		Valor: decimal.NewFromInt(5),
		Tipo:  model.AjusteTipoValor,
	})
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestAjustePedidoInexistente(t *testing.T) {
	svc := NewAjusteService(newStubPedidoRepo())

	_, err := svc.Aplicar(context.Background(), uuid.New(), AlvoDesconto, dto.AjusteRequest{
		Valor: decimal.NewFromInt(5),
		Tipo:  model.AjusteTipoValor,
	})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}
