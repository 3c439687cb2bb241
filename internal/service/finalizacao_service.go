package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// VendasRecalculador is the post-commit hook of a finalization: the caixa
// sales recompute, dispatched asynchronously because its failure must never
// undo an archive.
type VendasRecalculador interface {
	EnqueueRecalculoVendas(ctx context.Context, caixaID uuid.UUID) error
}

// FinalizacaoService archives a settled pedido into the historical tables,
// clears the live rows and releases the attendance point — all or nothing.
type FinalizacaoService interface {
	Finalizar(ctx context.Context, pedidoID uuid.UUID) (*dto.FinalizarResponse, error)
}

type finalizacaoService struct {
	pedidoRepo    repository.PedidoRepository
	pagamentoRepo repository.PagamentoRepository
	historicoRepo repository.HistoricoRepository
	pontoRepo     repository.PontoRepository
	recalculador  VendasRecalculador
}

func NewFinalizacaoService(
	pedidoRepo repository.PedidoRepository,
	pagamentoRepo repository.PagamentoRepository,
	historicoRepo repository.HistoricoRepository,
	pontoRepo repository.PontoRepository,
	recalculador VendasRecalculador,
) FinalizacaoService {
	return &finalizacaoService{
		pedidoRepo:    pedidoRepo,
		pagamentoRepo: pagamentoRepo,
		historicoRepo: historicoRepo,
		pontoRepo:     pontoRepo,
		recalculador:  recalculador,
	}
}

func (s *finalizacaoService) Finalizar(ctx context.Context, pedidoID uuid.UUID) (*dto.FinalizarResponse, error) {
	var resp *dto.FinalizarResponse
	var caixaID uuid.UUID

	txErr := runTx(ctx, s.pedidoRepo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.pedidoRepo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pedido: %w", ErrNaoEncontrado)
			}
			return err
		}
		itens, err := s.pedidoRepo.ListItensTx(tx, pedidoID)
		if err != nil {
			return err
		}
		pagamentos, err := s.pagamentoRepo.ListByPedidoTx(tx, pedidoID)
		if err != nil {
			return err
		}

		hist := &model.PedidoHistorico{
			PedidoID:           pedido.ID,
			PontoAtendimentoID: pedido.PontoAtendimentoID,
			CaixaID:            pedido.CaixaID,
			FuncionarioID:      pedido.FuncionarioID,
			ClienteID:          pedido.ClienteID,
			FormaPagamentoID:   pedido.FormaPagamentoID,
			Canal:              pedido.Canal,
			Codigo:             pedido.Codigo,
			Situacao:           model.SituacaoEncerrado,
			Status:             "finalizado",
			Subtotal:           pedido.Subtotal,
			DescontoValor:      pedido.DescontoValor,
			AcrescimoValor:     pedido.AcrescimoValor,
			ValorTotal:         pedido.Total,
		}
		if err := s.historicoRepo.CreatePedidoTx(tx, hist); err != nil {
			return err
		}

		itensHist := make([]model.PedidoItemHistorico, 0, len(itens))
		for _, item := range itens {
			itensHist = append(itensHist, model.PedidoItemHistorico{
				PedidoHistoricoID: hist.ID,
				ProdutoID:         item.ProdutoID,
				Quantidade:        item.Quantidade,
				ValorUnitario:     item.ValorUnitario,
				Descricao:         item.Descricao,
			})
		}
		if err := s.historicoRepo.CreateItensTx(tx, itensHist); err != nil {
			return err
		}

		pagosHist := make([]model.PagamentoHistorico, 0, len(pagamentos))
		for _, pago := range pagamentos {
			pagosHist = append(pagosHist, model.PagamentoHistorico{
				PedidoHistoricoID: hist.ID,
				FormaPagamentoID:  pago.FormaPagamentoID,
				Valor:             pago.Valor,
				CaixaID:           pago.CaixaID,
			})
		}
		if err := s.historicoRepo.CreatePagamentosTx(tx, pagosHist); err != nil {
			return err
		}

		// Live rows leave in FK order: payments, items, then the pedido.
		if err := s.pagamentoRepo.DeleteByPedidoTx(tx, pedidoID); err != nil {
			return err
		}
		if err := s.pedidoRepo.DeleteItensTx(tx, pedidoID); err != nil {
			return err
		}
		if err := s.pedidoRepo.DeleteTx(tx, pedidoID); err != nil {
			return err
		}

		ponto, err := s.pontoRepo.FindByID(ctx, pedido.PontoAtendimentoID)
		if err != nil {
			return err
		}
		ponto.Nome = ""
		ponto.Status = model.StatusDisponivel
		ponto.CreatedAt = time.Now()
		if err := s.pontoRepo.SaveTx(tx, ponto); err != nil {
			return err
		}

		caixaID = pedido.CaixaID
		resp = &dto.FinalizarResponse{
			PedidoHistoricoID: hist.ID.String(),
			Codigo:            hist.Codigo,
			ValorTotal:        hist.ValorTotal,
			Itens:             len(itensHist),
			Pagamentos:        len(pagosHist),
			Ponto:             pontoToResponse(ponto),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best-effort: the archive already committed, a recompute failure only
	// delays the caixa sales figure.
	if s.recalculador != nil {
		if err := s.recalculador.EnqueueRecalculoVendas(ctx, caixaID); err != nil {
			log.Warn().Err(err).
				Str("caixa_id", caixaID.String()).
				Msg("falha ao enfileirar recálculo de vendas")
		}
	}

	return resp, nil
}
