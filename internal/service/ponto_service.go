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

type PontoService interface {
	CriarOuRetomar(ctx context.Context, estabelecimentoID uuid.UUID, req dto.CriarOuRetomarPontoRequest) (*dto.PontoResponse, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.PontoResponse, error)
	BuscarPorIdentificador(ctx context.Context, estabelecimentoID uuid.UUID, identificador string) (*dto.PontoResponse, error)
	AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*dto.PontoResponse, error)
	AtualizarNome(ctx context.Context, id uuid.UUID, nome string) (*dto.PontoResponse, error)
	Resetar(ctx context.Context, id uuid.UUID) (*dto.PontoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, estabelecimentoID uuid.UUID) ([]dto.PontoListItem, error)
	Sincronizar(ctx context.Context, estabelecimentoID uuid.UUID) (*dto.SincronizarResponse, error)
}

type pontoService struct {
	repo     repository.PontoRepository
	catalogo repository.CatalogoRepository
}

func NewPontoService(repo repository.PontoRepository, catalogo repository.CatalogoRepository) PontoService {
	return &pontoService{repo: repo, catalogo: catalogo}
}

// ── CriarOuRetomar ────────────────────────────────────────────────────────────
// Entry point of every order flow. An existing non-available point is moved to
// em_atendimento (soft lock); an available one is only touched so it is never
// locked by accident; a missing one is inserted already locked. A uniqueness
// violation racing past the existence check surfaces as a conflict.

func (s *pontoService) CriarOuRetomar(ctx context.Context, estabelecimentoID uuid.UUID, req dto.CriarOuRetomarPontoRequest) (*dto.PontoResponse, error) {
	existente, err := s.repo.FindByIdentificador(ctx, estabelecimentoID, req.Identificador)
	if err == nil {
		if existente.Status != model.StatusDisponivel {
			existente.Status = model.StatusEmAtendimento
		}
		if req.Nome != nil {
			existente.Nome = *req.Nome
		}
		if err := s.repo.Save(ctx, existente); err != nil {
			return nil, err
		}
		resp := pontoToResponse(existente)
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ponto := &model.PontoAtendimento{
		EstabelecimentoID: estabelecimentoID,
		Identificador:     req.Identificador,
		Status:            model.StatusEmAtendimento,
	}
	if req.Nome != nil {
		ponto.Nome = *req.Nome
	}
	if err := s.repo.Create(ctx, ponto); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("identificador %q já existe neste estabelecimento: %w", req.Identificador, ErrConflito)
		}
		return nil, err
	}
	resp := pontoToResponse(ponto)
	return &resp, nil
}

func (s *pontoService) BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.PontoResponse, error) {
	ponto, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := pontoToResponse(ponto)
	return &resp, nil
}

func (s *pontoService) BuscarPorIdentificador(ctx context.Context, estabelecimentoID uuid.UUID, identificador string) (*dto.PontoResponse, error) {
	ponto, err := s.repo.FindByIdentificador(ctx, estabelecimentoID, identificador)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ponto de atendimento %q: %w", identificador, ErrNaoEncontrado)
		}
		return nil, err
	}
	resp := pontoToResponse(ponto)
	return &resp, nil
}

// ── AtualizarStatus ───────────────────────────────────────────────────────────
// Transitions to aberta and disponivel restamp the activity clock so elapsed-
// time displays restart; other transitions only touch updated_at.

func (s *pontoService) AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*dto.PontoResponse, error) {
	if !model.StatusValido(status) {
		return nil, fmt.Errorf("status %q desconhecido: %w", status, ErrValidacao)
	}
	ponto, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	ponto.Status = status
	if status == model.StatusAberta || status == model.StatusDisponivel {
		ponto.CreatedAt = time.Now()
	}
	if err := s.repo.Save(ctx, ponto); err != nil {
		return nil, err
	}
	resp := pontoToResponse(ponto)
	return &resp, nil
}

func (s *pontoService) AtualizarNome(ctx context.Context, id uuid.UUID, nome string) (*dto.PontoResponse, error) {
	ponto, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	ponto.Nome = nome
	if err := s.repo.Save(ctx, ponto); err != nil {
		return nil, err
	}
	resp := pontoToResponse(ponto)
	return &resp, nil
}

// Resetar returns the point to the pool: blank name, disponivel, fresh clock.
func (s *pontoService) Resetar(ctx context.Context, id uuid.UUID) (*dto.PontoResponse, error) {
	ponto, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	ponto.Nome = ""
	ponto.Status = model.StatusDisponivel
	ponto.CreatedAt = time.Now()
	if err := s.repo.Save(ctx, ponto); err != nil {
		return nil, err
	}
	resp := pontoToResponse(ponto)
	return &resp, nil
}

func (s *pontoService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buscar(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ── Listar ────────────────────────────────────────────────────────────────────
// Presence of money owed takes precedence over the stored status: any point
// whose open pedido has a positive total is shown as ocupada.

func (s *pontoService) Listar(ctx context.Context, estabelecimentoID uuid.UUID) ([]dto.PontoListItem, error) {
	rows, err := s.repo.ListComTotais(ctx, estabelecimentoID)
	if err != nil {
		return nil, err
	}
	itens := make([]dto.PontoListItem, 0, len(rows))
	for i := range rows {
		item := dto.PontoListItem{
			PontoResponse: pontoToResponse(&rows[i].PontoAtendimento),
			ValorTotal:    rows[i].ValorTotal,
		}
		if rows[i].ValorTotal != nil && rows[i].ValorTotal.IsPositive() {
			item.Status = model.StatusOcupada
		}
		itens = append(itens, item)
	}
	return itens, nil
}

// ── Sincronizar ───────────────────────────────────────────────────────────────
// Reconciles the materialized points against the establishment configuration:
// missing identifiers are created disponivel, identifiers beyond the
// configured count or of a disabled kind are deleted. One transaction.

func (s *pontoService) Sincronizar(ctx context.Context, estabelecimentoID uuid.UUID) (*dto.SincronizarResponse, error) {
	cfg, err := s.catalogo.FindConfigAtendimento(ctx, estabelecimentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("configuração de atendimento não cadastrada: %w", ErrPreCondicao)
		}
		return nil, err
	}

	desejados := make(map[string]bool)
	adicionar := func(prefixo string, habilitado bool, qtd int) {
		if !habilitado {
			return
		}
		for n := 1; n <= qtd; n++ {
			desejados[fmt.Sprintf("%s %d", prefixo, n)] = true
		}
	}
	adicionar("MESA", cfg.MesasHabilitadas, cfg.QtdMesas)
	adicionar("BALCAO", cfg.BalcoesHabilitados, cfg.QtdBalcoes)
	adicionar("COMANDA", cfg.ComandasHabilitadas, cfg.QtdComandas)

	existentes, err := s.repo.ListByEstabelecimento(ctx, estabelecimentoID)
	if err != nil {
		return nil, err
	}
	porIdentificador := make(map[string]*model.PontoAtendimento, len(existentes))
	for i := range existentes {
		porIdentificador[existentes[i].Identificador] = &existentes[i]
	}

	resp := &dto.SincronizarResponse{}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for identificador := range desejados {
			if _, ok := porIdentificador[identificador]; ok {
				continue
			}
			novo := &model.PontoAtendimento{
				EstabelecimentoID: estabelecimentoID,
				Identificador:     identificador,
				Status:            model.StatusDisponivel,
			}
			if err := s.repo.CreateTx(tx, novo); err != nil {
				return err
			}
			resp.Criados++
		}
		for identificador, ponto := range porIdentificador {
			if desejados[identificador] || !identificadorGerenciado(identificador) {
				continue
			}
			if err := s.repo.DeleteTx(tx, ponto.ID); err != nil {
				return err
			}
			resp.Removidos++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Total = len(desejados)
	return resp, nil
}

// identificadorGerenciado reports whether the identifier belongs to one of
// the kinds the synchronization process owns. Ad hoc identifiers created by
// staff are never deleted by a sync.
func identificadorGerenciado(identificador string) bool {
	for _, prefixo := range []string{"MESA ", "BALCAO ", "COMANDA "} {
		if len(identificador) > len(prefixo) && identificador[:len(prefixo)] == prefixo {
			return true
		}
	}
	return false
}

func (s *pontoService) buscar(ctx context.Context, id uuid.UUID) (*model.PontoAtendimento, error) {
	ponto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ponto de atendimento: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	return ponto, nil
}
