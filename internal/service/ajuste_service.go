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

// Adjustment targets.
const (
	AlvoDesconto  = "desconto"
	AlvoAcrescimo = "acrescimo"
)

var cem = decimal.NewFromInt(100)

// AjusteService applies at most one discount and one surcharge per pedido.
// Replacing an adjustment always recomputes from the item subtotal, never on
// top of a previously adjusted total, so repeated applications don't compound.
type AjusteService interface {
	Aplicar(ctx context.Context, pedidoID uuid.UUID, alvo string, req dto.AjusteRequest) (*dto.AjusteResponse, error)
	Remover(ctx context.Context, pedidoID uuid.UUID, alvo string) (*dto.AjusteResponse, error)
	Obter(ctx context.Context, pedidoID uuid.UUID, alvo string) (*dto.AjusteResponse, error)
}

type ajusteService struct {
	repo repository.PedidoRepository
}

func NewAjusteService(repo repository.PedidoRepository) AjusteService {
	return &ajusteService{repo: repo}
}

func (s *ajusteService) Aplicar(ctx context.Context, pedidoID uuid.UUID, alvo string, req dto.AjusteRequest) (*dto.AjusteResponse, error) {
	if alvo != AlvoDesconto && alvo != AlvoAcrescimo {
		return nil, fmt.Errorf("alvo de ajuste %q desconhecido: %w", alvo, ErrValidacao)
	}
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("valor do ajuste deve ser positivo: %w", ErrValidacao)
	}

	var resp *dto.AjusteResponse
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.repo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pedido: %w", ErrNaoEncontrado)
			}
			return err
		}

		valor := req.Valor
		if req.Tipo == model.AjusteTipoPercentual {
			valor = pedido.Subtotal.Mul(req.Valor).Div(cem).Round(2)
		}
		input := req.Valor
		tipo := req.Tipo

		switch alvo {
		case AlvoDesconto:
			pedido.DescontoValor = valor
			pedido.DescontoInput = &input
			pedido.DescontoTipo = &tipo
		case AlvoAcrescimo:
			pedido.AcrescimoValor = valor
			pedido.AcrescimoInput = &input
			pedido.AcrescimoTipo = &tipo
		}
		recomputarTotais(pedido)

		if err := s.repo.SaveTx(tx, pedido); err != nil {
			return err
		}
		resp = ajusteToResponse(pedido, alvo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ajusteService) Remover(ctx context.Context, pedidoID uuid.UUID, alvo string) (*dto.AjusteResponse, error) {
	if alvo != AlvoDesconto && alvo != AlvoAcrescimo {
		return nil, fmt.Errorf("alvo de ajuste %q desconhecido: %w", alvo, ErrValidacao)
	}

	var resp *dto.AjusteResponse
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.repo.FindByIDForUpdate(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pedido: %w", ErrNaoEncontrado)
			}
			return err
		}

		switch alvo {
		case AlvoDesconto:
			pedido.DescontoValor = decimal.Zero
			pedido.DescontoInput = nil
			pedido.DescontoTipo = nil
		case AlvoAcrescimo:
			pedido.AcrescimoValor = decimal.Zero
			pedido.AcrescimoInput = nil
			pedido.AcrescimoTipo = nil
		}
		recomputarTotais(pedido)

		if err := s.repo.SaveTx(tx, pedido); err != nil {
			return err
		}
		resp = ajusteToResponse(pedido, alvo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ajusteService) Obter(ctx context.Context, pedidoID uuid.UUID, alvo string) (*dto.AjusteResponse, error) {
	if alvo != AlvoDesconto && alvo != AlvoAcrescimo {
		return nil, fmt.Errorf("alvo de ajuste %q desconhecido: %w", alvo, ErrValidacao)
	}
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pedido: %w", ErrNaoEncontrado)
		}
		return nil, err
	}
	return ajusteToResponse(pedido, alvo), nil
}

func ajusteToResponse(p *model.Pedido, alvo string) *dto.AjusteResponse {
	resp := &dto.AjusteResponse{
		Subtotal: p.Subtotal,
		Total:    p.Total,
	}
	if alvo == AlvoDesconto {
		resp.ValorAplicado = p.DescontoValor
		resp.Input = p.DescontoInput
		resp.Tipo = p.DescontoTipo
	} else {
		resp.ValorAplicado = p.AcrescimoValor
		resp.Input = p.AcrescimoInput
		resp.Tipo = p.AcrescimoTipo
	}
	return resp
}
