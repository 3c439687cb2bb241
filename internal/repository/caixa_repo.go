package repository

import (
	"context"

	"restopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	// FindAberto resolves the single open caixa of the establishment.
	FindAberto(ctx context.Context, estabelecimentoID uuid.UUID) (*model.Caixa, error)
	// FindMaisRecente returns the latest-opened caixa regardless of state.
	FindMaisRecente(ctx context.Context, estabelecimentoID uuid.UUID) (*model.Caixa, error)
	Save(ctx context.Context, c *model.Caixa) error
	SaveTx(tx *gorm.DB, c *model.Caixa) error
	CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoCaixa) error
	ListMovimentacoes(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentacaoCaixa, error)
	// SumVendasHistorico totals valor_total over archived pedidos of the caixa.
	SumVendasHistorico(ctx context.Context, caixaID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) DB() *gorm.DB { return r.db }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) FindAberto(ctx context.Context, estabelecimentoID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("estabelecimento_id = ? AND aberto", estabelecimentoID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) FindMaisRecente(ctx context.Context, estabelecimentoID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("estabelecimento_id = ?", estabelecimentoID).
		Order("aberto_em DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caixaRepo) Save(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Omit("Movimentacoes").Save(c).Error
}

func (r *caixaRepo) SaveTx(tx *gorm.DB, c *model.Caixa) error {
	return tx.Omit("Movimentacoes").Save(c).Error
}

func (r *caixaRepo) CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoCaixa) error {
	return tx.Create(m).Error
}

func (r *caixaRepo) ListMovimentacoes(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentacaoCaixa, error) {
	var movs []model.MovimentacaoCaixa
	err := r.db.WithContext(ctx).
		Where("caixa_id = ?", caixaID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) SumVendasHistorico(ctx context.Context, caixaID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.PedidoHistorico{}).
		Select("SUM(valor_total)").
		Where("caixa_id = ?", caixaID).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
