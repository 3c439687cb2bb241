package repository

import (
	"context"

	"restopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PagamentoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Pagamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pagamento, error)
	ListByPedido(ctx context.Context, pedidoID uuid.UUID) ([]model.Pagamento, error)
	ListByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.Pagamento, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DeleteByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) error
	SumByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB
}

type pagamentoRepo struct{ db *gorm.DB }

func NewPagamentoRepository(db *gorm.DB) PagamentoRepository { return &pagamentoRepo{db: db} }

func (r *pagamentoRepo) DB() *gorm.DB { return r.db }

func (r *pagamentoRepo) CreateTx(tx *gorm.DB, p *model.Pagamento) error {
	return tx.Create(p).Error
}

func (r *pagamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pagamento, error) {
	var p model.Pagamento
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pagamentoRepo) ListByPedido(ctx context.Context, pedidoID uuid.UUID) ([]model.Pagamento, error) {
	var pagos []model.Pagamento
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("created_at ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagamentoRepo) ListByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.Pagamento, error) {
	var pagos []model.Pagamento
	err := tx.Where("pedido_id = ?", pedidoID).Order("created_at ASC").Find(&pagos).Error
	return pagos, err
}

func (r *pagamentoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Pagamento{}, "id = ?", id).Error
}

func (r *pagamentoRepo) DeleteByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) error {
	return tx.Delete(&model.Pagamento{}, "pedido_id = ?", pedidoID).Error
}

func (r *pagamentoRepo) SumByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := tx.Model(&model.Pagamento{}).
		Select("SUM(valor)").
		Where("pedido_id = ?", pedidoID).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
