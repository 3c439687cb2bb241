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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoService interface {
	// Garantir returns the open pedido of the attendance point, creating one
	// against the currently open caixa when none exists.
	Garantir(ctx context.Context, estabelecimentoID, funcionarioID uuid.UUID, req dto.GarantirPedidoRequest) (*dto.PedidoResponse, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	BuscarPorPonto(ctx context.Context, pontoID uuid.UUID) (*dto.PedidoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPedidoRequest) (*dto.PedidoResponse, error)
	// AplicarCarrinho replaces the pedido's item set with the full cart and
	// returns the composite result of the cross-aggregate write.
	AplicarCarrinho(ctx context.Context, pedidoID uuid.UUID, req dto.AplicarCarrinhoRequest) (*dto.AplicarCarrinhoResponse, error)
	ListarItens(ctx context.Context, pedidoID uuid.UUID) ([]dto.ItemResponse, error)
	AtualizarItem(ctx context.Context, itemID uuid.UUID, req dto.AtualizarItemRequest) (*dto.ItemResponse, error)
	ExcluirItem(ctx context.Context, itemID uuid.UUID) error
	LimparItens(ctx context.Context, pedidoID uuid.UUID) error
	// Excluir removes the pedido with cascade: items, pedido row and the
	// attendance-point reset happen in one transaction.
	Excluir(ctx context.Context, id uuid.UUID) error
}

type pedidoService struct {
	repo          repository.PedidoRepository
	pontoRepo     repository.PontoRepository
	caixaRepo     repository.CaixaRepository
	pagamentoRepo repository.PagamentoRepository
}

func NewPedidoService(
	repo repository.PedidoRepository,
	pontoRepo repository.PontoRepository,
	caixaRepo repository.CaixaRepository,
	pagamentoRepo repository.PagamentoRepository,
) PedidoService {
	return &pedidoService{
		repo:          repo,
		pontoRepo:     pontoRepo,
		caixaRepo:     caixaRepo,
		pagamentoRepo: pagamentoRepo,
	}
}

// ── Garantir ──────────────────────────────────────────────────────────────────

func (s *pedidoService) Garantir(ctx context.Context, estabelecimentoID, funcionarioID uuid.UUID, req dto.GarantirPedidoRequest) (*dto.PedidoResponse, error) {
	pontoID, err := uuid.Parse(req.PontoAtendimentoID)
	if err != nil {
		return nil, fmt.Errorf("ponto_atendimento_id inválido: %w", ErrValidacao)
	}
	if _, err := s.pontoRepo.FindByID(ctx, pontoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ponto de atendimento: %w", ErrNaoEncontrado)
		}
		return nil, err
	}

	if existente, err := s.repo.FindAbertoPorPonto(ctx, pontoID); err == nil {
		resp := pedidoToResponse(existente)
		return &resp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caixa, err := s.caixaRepo.FindAberto(ctx, estabelecimentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("nenhum caixa aberto — abra um caixa antes de criar pedidos: %w", ErrPreCondicao)
		}
		return nil, err
	}

	codigo, err := s.proximoCodigo(ctx, caixa.ID)
	if err != nil {
		return nil, err
	}

	pedido := &model.Pedido{
		PontoAtendimentoID: pontoID,
		CaixaID:            caixa.ID,
		FuncionarioID:      funcionarioID,
		Codigo:             codigo,
		Situacao:           model.SituacaoAberto,
	}
	if req.Canal != nil && *req.Canal != "" {
		pedido.Canal = *req.Canal
	} else {
		pedido.Canal = "salao"
	}
	if err := s.repo.Create(ctx, pedido); err != nil {
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) BuscarPorPonto(ctx context.Context, pontoID uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindAbertoPorPonto(ctx, pontoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("nenhum pedido aberto para o ponto: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ClienteID != nil {
		clienteID, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", ErrValidacao)
		}
		pedido.ClienteID = &clienteID
	}
	if req.FormaPagamentoID != nil {
		formaID, err := uuid.Parse(*req.FormaPagamentoID)
		if err != nil {
			return nil, fmt.Errorf("forma_pagamento_id inválido: %w", ErrValidacao)
		}
		pedido.FormaPagamentoID = &formaID
	}
	if req.Canal != nil {
		pedido.Canal = *req.Canal
	}
	if err := s.repo.Save(ctx, pedido); err != nil {
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

// ── AplicarCarrinho ───────────────────────────────────────────────────────────
// The caller always sends the full current cart; the stored set is replaced
// wholesale so repeated saves converge without client-side change tracking.
// Entries for the same produto are merged before insert (one row per product),
// the pedido subtotal is recomputed, and the attendance point is flipped to
// ocupada — all inside one transaction.

func (s *pedidoService) AplicarCarrinho(ctx context.Context, pedidoID uuid.UUID, req dto.AplicarCarrinhoRequest) (*dto.AplicarCarrinhoResponse, error) {
	mesclados, subtotal, err := mesclarCarrinho(req.Itens)
	if err != nil {
		return nil, err
	}

	var pedido *model.Pedido
	var ponto *model.PontoAtendimento
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		pedido, err = s.repo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pedido: %w", ErrNaoEncontrado)
			}
			return err
		}

		itens := make([]model.PedidoItem, 0, len(mesclados))
		for _, m := range mesclados {
			itens = append(itens, model.PedidoItem{
				PedidoID:      pedidoID,
				ProdutoID:     m.produtoID,
				Quantidade:    m.quantidade,
				ValorUnitario: m.valorUnitario,
				Status:        "pendente",
				Descricao:     m.descricao,
			})
		}
		if err := s.repo.ReplaceItensTx(tx, pedidoID, itens); err != nil {
			return err
		}

		pedido.Subtotal = subtotal
		recomputarTotais(pedido)
		if pedido.Codigo == "" {
			codigo, err := s.proximoCodigo(ctx, pedido.CaixaID)
			if err != nil {
				return err
			}
			pedido.Codigo = codigo
		}
		if err := s.repo.SaveTx(tx, pedido); err != nil {
			return err
		}
		pedido.Itens = itens

		ponto, err = s.pontoRepo.FindByID(ctx, pedido.PontoAtendimentoID)
		if err != nil {
			return err
		}
		if req.NomePonto != nil {
			ponto.Nome = *req.NomePonto
		}
		// Occupation follows the cart: an emptied cart must not mark the
		// point as occupied.
		if len(itens) > 0 {
			ponto.Status = model.StatusOcupada
		}
		return s.pontoRepo.SaveTx(tx, ponto)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.AplicarCarrinhoResponse{
		Pedido: pedidoToResponse(pedido),
		Ponto:  pontoToResponse(ponto),
	}, nil
}

func (s *pedidoService) ListarItens(ctx context.Context, pedidoID uuid.UUID) ([]dto.ItemResponse, error) {
	itens, err := s.repo.ListItens(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ItemResponse, 0, len(itens))
	for i := range itens {
		resp = append(resp, itemToResponse(&itens[i]))
	}
	return resp, nil
}

func (s *pedidoService) AtualizarItem(ctx context.Context, itemID uuid.UUID, req dto.AtualizarItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	item.Quantidade = req.Quantidade
	if req.Descricao != nil {
		item.Descricao = *req.Descricao
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.ressubtotalizar(ctx, item.PedidoID); err != nil {
		return nil, err
	}
	resp := itemToResponse(item)
	return &resp, nil
}

func (s *pedidoService) ExcluirItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item: %w", ErrNaoEncontrado)
		}
		return err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	return s.ressubtotalizar(ctx, item.PedidoID)
}

func (s *pedidoService) LimparItens(ctx context.Context, pedidoID uuid.UUID) error {
	if _, err := s.buscar(ctx, pedidoID); err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItensTx(tx, pedidoID); err != nil {
			return err
		}
		pedido, err := s.repo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			return err
		}
		pedido.Subtotal = decimal.Zero
		recomputarTotais(pedido)
		return s.repo.SaveTx(tx, pedido)
	})
}

// ── Excluir ───────────────────────────────────────────────────────────────────
// Items, payments, the pedido row and the point reset roll back together: the
// attendance point is never orphaned by a half-applied deletion.

func (s *pedidoService) Excluir(ctx context.Context, id uuid.UUID) error {
	pedido, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	ponto, err := s.pontoRepo.FindByID(ctx, pedido.PontoAtendimentoID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.pagamentoRepo.DeleteByPedidoTx(tx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteItensTx(tx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		if ponto != nil {
			ponto.Nome = ""
			ponto.Status = model.StatusDisponivel
			ponto.CreatedAt = time.Now()
			if err := s.pontoRepo.SaveTx(tx, ponto); err != nil {
				return err
			}
		}
		return nil
	})
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type itemMesclado struct {
	produtoID     uuid.UUID
	quantidade    int
	valorUnitario decimal.Decimal
	descricao     string
}

// mesclarCarrinho groups cart entries by produto, summing quantities, and
// returns the merged list in first-seen order plus the cart subtotal.
func mesclarCarrinho(itens []dto.CarrinhoItemRequest) ([]itemMesclado, decimal.Decimal, error) {
	ordem := make([]uuid.UUID, 0, len(itens))
	porProduto := make(map[uuid.UUID]*itemMesclado, len(itens))

	for _, item := range itens {
		produtoID, err := uuid.Parse(item.ProdutoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("produto_id inválido: %w", ErrValidacao)
		}
		if item.Quantidade < 1 {
			return nil, decimal.Zero, fmt.Errorf("quantidade deve ser positiva: %w", ErrValidacao)
		}
		if existente, ok := porProduto[produtoID]; ok {
			existente.quantidade += item.Quantidade
			continue
		}
		ordem = append(ordem, produtoID)
		porProduto[produtoID] = &itemMesclado{
			produtoID:     produtoID,
			quantidade:    item.Quantidade,
			valorUnitario: item.ValorUnitario,
			descricao:     item.Descricao,
		}
	}

	mesclados := make([]itemMesclado, 0, len(ordem))
	subtotal := decimal.Zero
	for _, id := range ordem {
		m := porProduto[id]
		subtotal = subtotal.Add(m.valorUnitario.Mul(decimal.NewFromInt(int64(m.quantidade))))
		mesclados = append(mesclados, *m)
	}
	return mesclados, subtotal, nil
}

// proximoCodigo allocates the next sequential display code on the caixa:
// max+1 across live and archived pedidos, zero-padded, starting at "01".
func (s *pedidoService) proximoCodigo(ctx context.Context, caixaID uuid.UUID) (string, error) {
	max, err := s.repo.MaxCodigo(ctx, caixaID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", max+1), nil
}

// ressubtotalizar re-derives the pedido subtotal after a single-item change.
func (s *pedidoService) ressubtotalizar(ctx context.Context, pedidoID uuid.UUID) error {
	itens, err := s.repo.ListItens(ctx, pedidoID)
	if err != nil {
		return err
	}
	subtotal := decimal.Zero
	for i := range itens {
		subtotal = subtotal.Add(itens[i].ValorUnitario.Mul(decimal.NewFromInt(int64(itens[i].Quantidade))))
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.repo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			return err
		}
		pedido.Subtotal = subtotal
		recomputarTotais(pedido)
		return s.repo.SaveTx(tx, pedido)
	})
}

func (s *pedidoService) buscar(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pedido: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	return pedido, nil
}
