package repository

import (
	"context"

	"restopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoricoRepository writes only inside finalization transactions and is a
// read-only reporting source everywhere else.
type HistoricoRepository interface {
	CreatePedidoTx(tx *gorm.DB, h *model.PedidoHistorico) error
	CreateItensTx(tx *gorm.DB, itens []model.PedidoItemHistorico) error
	CreatePagamentosTx(tx *gorm.DB, pagos []model.PagamentoHistorico) error
	FindPedido(ctx context.Context, id uuid.UUID) (*model.PedidoHistorico, error)
	ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.PedidoHistorico, error)
}

type historicoRepo struct{ db *gorm.DB }

func NewHistoricoRepository(db *gorm.DB) HistoricoRepository { return &historicoRepo{db: db} }

func (r *historicoRepo) CreatePedidoTx(tx *gorm.DB, h *model.PedidoHistorico) error {
	return tx.Omit("Itens", "Pagamentos").Create(h).Error
}

func (r *historicoRepo) CreateItensTx(tx *gorm.DB, itens []model.PedidoItemHistorico) error {
	if len(itens) == 0 {
		return nil
	}
	return tx.Create(&itens).Error
}

func (r *historicoRepo) CreatePagamentosTx(tx *gorm.DB, pagos []model.PagamentoHistorico) error {
	if len(pagos) == 0 {
		return nil
	}
	return tx.Create(&pagos).Error
}

func (r *historicoRepo) FindPedido(ctx context.Context, id uuid.UUID) (*model.PedidoHistorico, error) {
	var h model.PedidoHistorico
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Pagamentos").
		First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *historicoRepo) ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.PedidoHistorico, error) {
	var hs []model.PedidoHistorico
	err := r.db.WithContext(ctx).
		Where("caixa_id = ?", caixaID).
		Order("created_at ASC").
		Find(&hs).Error
	return hs, err
}
