package service

import (
	"context"
	"errors"
	"fmt"

	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PagamentoService is the settlement ledger: one or more payment-method
// allocations accumulate against a pedido until it is fully paid. Troco is
// always derived server-side from the raw tendered amounts; stored allocation
// rows never include the change portion, so after every call
// pago + restante == total holds with troco tracked separately.
type PagamentoService interface {
	Alocar(ctx context.Context, estabelecimentoID, pedidoID uuid.UUID, req dto.AlocarPagamentoRequest) (*dto.ResumoPagamentoResponse, error)
	AlocarLote(ctx context.Context, estabelecimentoID, pedidoID uuid.UUID, req dto.AlocarLoteRequest) (*dto.ResumoPagamentoResponse, error)
	Desalocar(ctx context.Context, pedidoID, pagamentoID uuid.UUID) (*dto.ResumoPagamentoResponse, error)
	Resumo(ctx context.Context, pedidoID uuid.UUID) (*dto.ResumoPagamentoResponse, error)
	Listar(ctx context.Context, pedidoID uuid.UUID) ([]dto.PagamentoResponse, error)
	ListarFormas(ctx context.Context, estabelecimentoID uuid.UUID) ([]dto.FormaPagamentoResponse, error)
}

type pagamentoService struct {
	pedidoRepo repository.PedidoRepository
	repo       repository.PagamentoRepository
	caixaRepo  repository.CaixaRepository
	catalogo   repository.CatalogoRepository
}

func NewPagamentoService(
	pedidoRepo repository.PedidoRepository,
	repo repository.PagamentoRepository,
	caixaRepo repository.CaixaRepository,
	catalogo repository.CatalogoRepository,
) PagamentoService {
	return &pagamentoService{
		pedidoRepo: pedidoRepo,
		repo:       repo,
		caixaRepo:  caixaRepo,
		catalogo:   catalogo,
	}
}

// ── Alocar ────────────────────────────────────────────────────────────────────
// Single allocation. Valor is the raw tendered amount; any excess over the
// remaining balance becomes troco and is subtracted from the stored row.

func (s *pagamentoService) Alocar(ctx context.Context, estabelecimentoID, pedidoID uuid.UUID, req dto.AlocarPagamentoRequest) (*dto.ResumoPagamentoResponse, error) {
	formaID, err := uuid.Parse(req.FormaPagamentoID)
	if err != nil {
		return nil, fmt.Errorf("forma_pagamento_id inválido: %w", ErrValidacao)
	}
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("valor do pagamento deve ser positivo: %w", ErrValidacao)
	}
	if _, err := s.catalogo.FindFormaPagamento(ctx, formaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("forma de pagamento: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	caixa, err := s.caixaAberto(ctx, estabelecimentoID)
	if err != nil {
		return nil, err
	}

	var resumo *dto.ResumoPagamentoResponse
	txErr := runTx(ctx, s.pedidoRepo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.pedidoRepo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pedido: %w", ErrNaoEncontrado)
			}
			return err
		}
		if !pedido.Total.IsPositive() {
			return fmt.Errorf("pedido sem valor a pagar: %w", ErrPreCondicao)
		}
		if pedido.ValorRestante.IsZero() {
			return fmt.Errorf("pedido já está quitado: %w", ErrConflito)
		}

		jaAlocado, err := s.repo.SumByPedidoTx(tx, pedidoID)
		if err != nil {
			return err
		}
		bruto := jaAlocado.Add(req.Valor)

		troco := decimal.Zero
		armazenado := req.Valor
		if bruto.GreaterThan(pedido.Total) {
			troco = bruto.Sub(pedido.Total)
			armazenado = req.Valor.Sub(troco)
		}

		if armazenado.IsPositive() {
			if err := s.repo.CreateTx(tx, &model.Pagamento{
				PedidoID:         pedidoID,
				FormaPagamentoID: formaID,
				Valor:            armazenado,
				CaixaID:          caixa.ID,
			}); err != nil {
				return err
			}
		}

		pago := bruto.Sub(troco)
		pedido.ValorPago = pago
		pedido.Troco = troco
		pedido.ValorRestante = pedido.Total.Sub(pago)
		if pedido.ValorRestante.IsNegative() {
			pedido.ValorRestante = decimal.Zero
		}
		if pedido.ValorRestante.IsZero() {
			pedido.Situacao = model.SituacaoPago
		}
		if err := s.pedidoRepo.SaveTx(tx, pedido); err != nil {
			return err
		}

		resumo, err = s.montarResumoTx(tx, pedido)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return resumo, nil
}

// ── AlocarLote ────────────────────────────────────────────────────────────────
// Multi-method settlement in one shot. Existing allocations are replaced; when
// the batch exceeds the total, every stored amount is scaled down
// proportionally so the ledger never records the change portion.

func (s *pagamentoService) AlocarLote(ctx context.Context, estabelecimentoID, pedidoID uuid.UUID, req dto.AlocarLoteRequest) (*dto.ResumoPagamentoResponse, error) {
	type alocacao struct {
		formaID uuid.UUID
		valor   decimal.Decimal
	}
	alocacoes := make([]alocacao, 0, len(req.Alocacoes))
	soma := decimal.Zero
	for _, a := range req.Alocacoes {
		formaID, err := uuid.Parse(a.FormaPagamentoID)
		if err != nil {
			return nil, fmt.Errorf("forma_pagamento_id inválido: %w", ErrValidacao)
		}
		if !a.Valor.IsPositive() {
			return nil, fmt.Errorf("valor do pagamento deve ser positivo: %w", ErrValidacao)
		}
		if _, err := s.catalogo.FindFormaPagamento(ctx, formaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("forma de pagamento: %w", ErrNaoEncontrado)
			}
			return nil, err
		}
		alocacoes = append(alocacoes, alocacao{formaID: formaID, valor: a.Valor})
		soma = soma.Add(a.Valor)
	}

	caixa, err := s.caixaAberto(ctx, estabelecimentoID)
	if err != nil {
		return nil, err
	}

	var resumo *dto.ResumoPagamentoResponse
	txErr := runTx(ctx, s.pedidoRepo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.pedidoRepo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pedido: %w", ErrNaoEncontrado)
			}
			return err
		}
		if !pedido.Total.IsPositive() {
			return fmt.Errorf("pedido sem valor a pagar: %w", ErrPreCondicao)
		}

		if err := s.repo.DeleteByPedidoTx(tx, pedidoID); err != nil {
			return err
		}

		troco := decimal.Zero
		if soma.GreaterThan(pedido.Total) {
			troco = soma.Sub(pedido.Total)
		}
		pago := soma.Sub(troco)

		// Scale stored amounts so their sum equals the effective paid value;
		// the last row absorbs the rounding residue. Each row is capped at
		// the budget still unassigned, otherwise rounding-up across many
		// small shares could push the cumulative sum past the paid value.
		armazenados := make([]decimal.Decimal, len(alocacoes))
		if troco.IsPositive() && soma.IsPositive() {
			acumulado := decimal.Zero
			for i, a := range alocacoes {
				if i == len(alocacoes)-1 {
					armazenados[i] = pago.Sub(acumulado)
					break
				}
				parcela := a.valor.Mul(pago).Div(soma).Round(2)
				if orcamento := pago.Sub(acumulado); parcela.GreaterThan(orcamento) {
					parcela = orcamento
				}
				armazenados[i] = parcela
				acumulado = acumulado.Add(parcela)
			}
		} else {
			for i, a := range alocacoes {
				armazenados[i] = a.valor
			}
		}

		for i, a := range alocacoes {
			if !armazenados[i].IsPositive() {
				continue
			}
			if err := s.repo.CreateTx(tx, &model.Pagamento{
				PedidoID:         pedidoID,
				FormaPagamentoID: a.formaID,
				Valor:            armazenados[i],
				CaixaID:          caixa.ID,
			}); err != nil {
				return err
			}
		}

		pedido.ValorPago = pago
		pedido.Troco = troco
		restante := pedido.Total.Sub(pago)
		if restante.IsNegative() {
			restante = decimal.Zero
		}
		pedido.ValorRestante = restante
		if restante.IsZero() {
			pedido.Situacao = model.SituacaoPago
		} else {
			pedido.Situacao = model.SituacaoAberto
		}
		if err := s.pedidoRepo.SaveTx(tx, pedido); err != nil {
			return err
		}

		resumo, err = s.montarResumoTx(tx, pedido)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return resumo, nil
}

// ── Desalocar ─────────────────────────────────────────────────────────────────

func (s *pagamentoService) Desalocar(ctx context.Context, pedidoID, pagamentoID uuid.UUID) (*dto.ResumoPagamentoResponse, error) {
	pagamento, err := s.repo.FindByID(ctx, pagamentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pagamento: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	if pagamento.PedidoID != pedidoID {
		return nil, fmt.Errorf("pagamento não pertence ao pedido: %w", ErrNaoEncontrado)
	}

	var resumo *dto.ResumoPagamentoResponse
	txErr := runTx(ctx, s.pedidoRepo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.pedidoRepo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pedido: %w", ErrNaoEncontrado)
			}
			return err
		}
		if err := s.repo.DeleteTx(tx, pagamentoID); err != nil {
			return err
		}

		restanteAlocado, err := s.repo.SumByPedidoTx(tx, pedidoID)
		if err != nil {
			return err
		}

		pago := restanteAlocado
		troco := decimal.Zero
		if pago.GreaterThan(pedido.Total) {
			troco = pago.Sub(pedido.Total)
			pago = pedido.Total
		}
		pedido.ValorPago = pago
		pedido.Troco = troco
		restante := pedido.Total.Sub(pago)
		if restante.IsNegative() {
			restante = decimal.Zero
		}
		pedido.ValorRestante = restante
		if restante.IsPositive() {
			pedido.Situacao = model.SituacaoAberto
		}
		if err := s.pedidoRepo.SaveTx(tx, pedido); err != nil {
			return err
		}

		resumo, err = s.montarResumoTx(tx, pedido)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return resumo, nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *pagamentoService) Resumo(ctx context.Context, pedidoID uuid.UUID) (*dto.ResumoPagamentoResponse, error) {
	pedido, err := s.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pedido: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	pagos, err := s.repo.ListByPedido(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	return montarResumo(pedido, pagos), nil
}

func (s *pagamentoService) Listar(ctx context.Context, pedidoID uuid.UUID) ([]dto.PagamentoResponse, error) {
	pagos, err := s.repo.ListByPedido(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagamentoResponse, 0, len(pagos))
	for i := range pagos {
		resp = append(resp, pagamentoToResponse(&pagos[i]))
	}
	return resp, nil
}

func (s *pagamentoService) ListarFormas(ctx context.Context, estabelecimentoID uuid.UUID) ([]dto.FormaPagamentoResponse, error) {
	formas, err := s.catalogo.ListFormasPagamento(ctx, estabelecimentoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FormaPagamentoResponse, 0, len(formas))
	for _, f := range formas {
		resp = append(resp, dto.FormaPagamentoResponse{ID: f.ID.String(), Nome: f.Nome})
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *pagamentoService) caixaAberto(ctx context.Context, estabelecimentoID uuid.UUID) (*model.Caixa, error) {
	caixa, err := s.caixaRepo.FindAberto(ctx, estabelecimentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("nenhum caixa aberto — abra um caixa antes de registrar pagamentos: %w", ErrPreCondicao)
		}
		return nil, err
	}
	return caixa, nil
}

func (s *pagamentoService) montarResumoTx(tx *gorm.DB, pedido *model.Pedido) (*dto.ResumoPagamentoResponse, error) {
	pagos, err := s.repo.ListByPedidoTx(tx, pedido.ID)
	if err != nil {
		return nil, err
	}
	return montarResumo(pedido, pagos), nil
}

func montarResumo(pedido *model.Pedido, pagos []model.Pagamento) *dto.ResumoPagamentoResponse {
	alocacoes := make([]dto.PagamentoResponse, 0, len(pagos))
	for i := range pagos {
		alocacoes = append(alocacoes, pagamentoToResponse(&pagos[i]))
	}
	return &dto.ResumoPagamentoResponse{
		PedidoID:  pedido.ID.String(),
		Situacao:  pedido.Situacao,
		Total:     pedido.Total,
		Pago:      pedido.ValorPago,
		Restante:  pedido.ValorRestante,
		Troco:     pedido.Troco,
		Alocacoes: alocacoes,
	}
}
