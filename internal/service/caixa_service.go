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
	"gorm.io/gorm"
)

type CaixaService interface {
	Abrir(ctx context.Context, estabelecimentoID, funcionarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, caixaID, funcionarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error)
	Status(ctx context.Context, estabelecimentoID uuid.UUID) (*dto.StatusCaixaResponse, error)
	RegistrarMovimentacao(ctx context.Context, caixaID, funcionarioID uuid.UUID, req dto.MovimentacaoRequest) (*dto.MovimentacaoResponse, error)
	ListarMovimentacoes(ctx context.Context, caixaID uuid.UUID) ([]dto.MovimentacaoResponse, error)
	// RecalcularVendas re-derives the caixa sales total from archived pedidos.
	RecalcularVendas(ctx context.Context, caixaID uuid.UUID) (*dto.CaixaResponse, error)
}

type caixaService struct {
	repo repository.CaixaRepository
}

func NewCaixaService(repo repository.CaixaRepository) CaixaService {
	return &caixaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// At most one open caixa per establishment: opening while another is open is
// refused instead of silently stacking sessions.

func (s *caixaService) Abrir(ctx context.Context, estabelecimentoID, funcionarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	if req.ValorAbertura.IsNegative() {
		return nil, fmt.Errorf("valor de abertura não pode ser negativo: %w", ErrValidacao)
	}
	if _, err := s.repo.FindAberto(ctx, estabelecimentoID); err == nil {
		return nil, fmt.Errorf("já existe um caixa aberto neste estabelecimento: %w", ErrConflito)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caixa := &model.Caixa{
		EstabelecimentoID: estabelecimentoID,
		ValorAbertura:     req.ValorAbertura,
		AbertoEm:          time.Now(),
		SaldoTotal:        req.ValorAbertura,
		AbertoPor:         funcionarioID,
		Aberto:            true,
	}
	if err := s.repo.Create(ctx, caixa); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("já existe um caixa aberto neste estabelecimento: %w", ErrConflito)
		}
		return nil, err
	}
	resp := caixaToResponse(caixa)
	return &resp, nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────

func (s *caixaService) Fechar(ctx context.Context, caixaID, funcionarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error) {
	caixa, err := s.buscar(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	if !caixa.Aberto {
		return nil, fmt.Errorf("caixa já está fechado: %w", ErrPreCondicao)
	}

	// Bring the running balance up to date before computing the difference.
	if err := s.recalcular(ctx, caixa); err != nil {
		return nil, err
	}

	diferenca := req.ValorFechamento.Sub(caixa.SaldoTotal)
	agora := time.Now()
	fechamento := req.ValorFechamento
	caixa.ValorFechamento = &fechamento
	caixa.FechadoEm = &agora
	caixa.Diferenca = &diferenca
	caixa.FechadoPor = &funcionarioID
	caixa.Aberto = false

	if err := s.repo.Save(ctx, caixa); err != nil {
		return nil, err
	}
	resp := caixaToResponse(caixa)
	return &resp, nil
}

// ── Status ────────────────────────────────────────────────────────────────────
// Returns the most-recently-opened caixa with a derived aberto|fechado|nenhum
// tag; an open caixa has its sales recomputed live before returning.

func (s *caixaService) Status(ctx context.Context, estabelecimentoID uuid.UUID) (*dto.StatusCaixaResponse, error) {
	caixa, err := s.repo.FindMaisRecente(ctx, estabelecimentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.StatusCaixaResponse{Situacao: "nenhum"}, nil
		}
		return nil, err
	}

	situacao := "fechado"
	if caixa.Aberto {
		situacao = "aberto"
		if err := s.recalcular(ctx, caixa); err != nil {
			return nil, err
		}
	}
	resp := caixaToResponse(caixa)
	return &dto.StatusCaixaResponse{Situacao: situacao, Caixa: &resp}, nil
}

// ── RegistrarMovimentacao ─────────────────────────────────────────────────────
// The movement row and the caixa counter update commit or roll back together.

func (s *caixaService) RegistrarMovimentacao(ctx context.Context, caixaID, funcionarioID uuid.UUID, req dto.MovimentacaoRequest) (*dto.MovimentacaoResponse, error) {
	caixa, err := s.buscar(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	if !caixa.Aberto {
		return nil, fmt.Errorf("caixa está fechado: %w", ErrPreCondicao)
	}

	mov := &model.MovimentacaoCaixa{
		CaixaID:       caixaID,
		Tipo:          req.Tipo,
		Descricao:     req.Descricao,
		Valor:         req.Valor,
		FuncionarioID: funcionarioID,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovimentacaoTx(tx, mov); err != nil {
			return err
		}
		switch req.Tipo {
		case model.MovimentacaoEntrada:
			caixa.Entradas = caixa.Entradas.Add(req.Valor)
			caixa.SaldoTotal = caixa.SaldoTotal.Add(req.Valor)
		case model.MovimentacaoSaida:
			caixa.Saidas = caixa.Saidas.Add(req.Valor)
			caixa.SaldoTotal = caixa.SaldoTotal.Sub(req.Valor)
		default:
			return fmt.Errorf("tipo de movimentação %q desconhecido: %w", req.Tipo, ErrValidacao)
		}
		return s.repo.SaveTx(tx, caixa)
	})
	if err != nil {
		return nil, err
	}
	resp := movimentacaoToResponse(mov)
	return &resp, nil
}

func (s *caixaService) ListarMovimentacoes(ctx context.Context, caixaID uuid.UUID) ([]dto.MovimentacaoResponse, error) {
	if _, err := s.buscar(ctx, caixaID); err != nil {
		return nil, err
	}
	movs, err := s.repo.ListMovimentacoes(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimentacaoResponse, 0, len(movs))
	for i := range movs {
		resp = append(resp, movimentacaoToResponse(&movs[i]))
	}
	return resp, nil
}

// ── RecalcularVendas ──────────────────────────────────────────────────────────

func (s *caixaService) RecalcularVendas(ctx context.Context, caixaID uuid.UUID) (*dto.CaixaResponse, error) {
	caixa, err := s.buscar(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	if err := s.recalcular(ctx, caixa); err != nil {
		return nil, err
	}
	resp := caixaToResponse(caixa)
	return &resp, nil
}

func (s *caixaService) recalcular(ctx context.Context, caixa *model.Caixa) error {
	vendas, err := s.repo.SumVendasHistorico(ctx, caixa.ID)
	if err != nil {
		return err
	}
	caixa.TotalVendas = vendas
	caixa.SaldoTotal = caixa.ValorAbertura.
		Add(caixa.Entradas).
		Sub(caixa.Saidas).
		Add(vendas)
	return s.repo.Save(ctx, caixa)
}

func (s *caixaService) buscar(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("caixa: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	return caixa, nil
}
